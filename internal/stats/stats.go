// Package stats provides the sample-statistics helpers used by the risk
// combination strategies: arithmetic and geometric means, dispersion, and
// normal-approximation confidence intervals.
package stats

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Errors returned by the statistics helpers.
var (
	// ErrEmptySample is returned when a computation receives no values.
	ErrEmptySample = errors.New("empty sample")

	// ErrInvalidValue is returned when a sample contains NaN or Inf.
	ErrInvalidValue = errors.New("sample contains NaN or infinite value")

	// ErrNonPositiveValue is returned when a geometric computation receives
	// a zero or negative value.
	ErrNonPositiveValue = errors.New("geometric mean requires strictly positive values")

	// ErrInsufficientSample is returned when a computation needs more
	// observations than were provided.
	ErrInsufficientSample = errors.New("sample too small")
)

// checkFinite rejects NaN and infinite values so they surface as errors
// instead of propagating silently through downstream arithmetic.
func checkFinite(values []float64) error {
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: index %d value %f", ErrInvalidValue, i, v)
		}
	}
	return nil
}

// Mean returns the arithmetic mean of the sample.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySample
	}
	if err := checkFinite(values); err != nil {
		return 0, err
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// GeometricMean returns the n-th root of the product of the sample.
// It is computed in the log domain so large samples do not overflow the
// intermediate product. Every value must be strictly positive; zero or
// negative values make the geometric mean undefined over the reals.
func GeometricMean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySample
	}
	if err := checkFinite(values); err != nil {
		return 0, err
	}

	var logSum float64
	for i, v := range values {
		if v <= 0 {
			return 0, fmt.Errorf("%w: index %d value %g", ErrNonPositiveValue, i, v)
		}
		logSum += math.Log(v)
	}
	return math.Exp(logSum / float64(len(values))), nil
}

// StdDev returns the sample standard deviation (Bessel-corrected, n-1).
// At least two observations are required.
func StdDev(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySample
	}
	if len(values) < 2 {
		return 0, fmt.Errorf("%w: standard deviation needs at least 2 observations, got %d",
			ErrInsufficientSample, len(values))
	}

	mean, err := Mean(values)
	if err != nil {
		return 0, err
	}

	var sq float64
	for _, v := range values {
		d := v - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(values)-1)), nil
}

// Median returns the middle value of the sample, averaging the two central
// values for even-length samples. The input slice is not modified.
func Median(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptySample
	}
	if err := checkFinite(values); err != nil {
		return 0, err
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid], nil
	}
	return (sorted[mid-1] + sorted[mid]) / 2, nil
}

// Interval is a two-sided confidence interval around a sample mean.
type Interval struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// ConfidenceInterval returns the normal-approximation confidence interval
// for the sample mean: mean ± z * sd / sqrt(n). The z parameter is the
// standard-normal quantile for the desired coverage (1.96 for 95%).
func ConfidenceInterval(values []float64, z float64) (Interval, error) {
	if z <= 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return Interval{}, fmt.Errorf("%w: z must be a positive finite quantile, got %g",
			ErrInvalidValue, z)
	}

	mean, err := Mean(values)
	if err != nil {
		return Interval{}, err
	}
	sd, err := StdDev(values)
	if err != nil {
		return Interval{}, err
	}

	margin := z * sd / math.Sqrt(float64(len(values)))
	return Interval{Low: mean - margin, High: mean + margin}, nil
}
