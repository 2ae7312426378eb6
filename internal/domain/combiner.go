package domain

// Combiner defines the interface for collapsing multiple individual risk
// scores into a single combined score. Implementations provide different
// combination strategies such as arithmetic mean, geometric mean, or the
// blend of both around a neutral point.
type Combiner interface {
	// Combine collapses the given scores into one value.
	// The result must be symmetric under any permutation of the input.
	//
	// Implementations must reject invalid input rather than propagate it:
	//   - an empty slice is an error
	//   - NaN or infinite values are errors
	//   - strategies built on the geometric mean reject non-positive values,
	//     since the geometric mean is not real-valued there
	//
	// Combine is a one-shot pure computation with no side effects and must
	// be safe for concurrent use.
	Combine(scores []float64) (float64, error)
}
