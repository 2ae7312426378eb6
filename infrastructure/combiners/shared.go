// Package combiners provides the risk combination strategies that implement
// the domain.Combiner interface for the riskblend engine.
package combiners

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// Common errors returned by combiner implementations.
// These errors provide consistent error handling across all strategies.
var (
	// ErrNoScores is returned when no scores are provided for combination.
	ErrNoScores = errors.New("no scores provided for combination")

	// ErrInvalidScore is returned when a score is NaN or infinite.
	ErrInvalidScore = errors.New("score is not a finite number")

	// ErrNonPositiveScore is returned when a strategy built on the geometric
	// mean receives a zero or negative score.
	ErrNonPositiveScore = errors.New("score must be strictly positive")

	// ErrBelowMinScore is returned when the combined score is below the
	// configured minimum threshold.
	ErrBelowMinScore = errors.New("combined score below minimum threshold")

	// ErrEmptyCombinerID is returned when attempting to create a combiner
	// with an empty identifier.
	ErrEmptyCombinerID = errors.New("combiner ID cannot be empty")
)

// Package-level validator instance for configuration validation.
// Uses go-playground/validator v10 for struct tag-based validation.
var validate = validator.New()

// validateScores performs the shared input checks for all strategies.
// Every strategy rejects empty input and non-finite values; strategies that
// take a geometric mean additionally require strictly positive values.
func validateScores(scores []float64, requirePositive bool) error {
	if len(scores) == 0 {
		return ErrNoScores
	}
	for i, score := range scores {
		if math.IsNaN(score) || math.IsInf(score, 0) {
			return fmt.Errorf("%w: index %d value %f", ErrInvalidScore, i, score)
		}
		if requirePositive && score <= 0 {
			return fmt.Errorf("%w: index %d value %g", ErrNonPositiveScore, i, score)
		}
	}
	return nil
}
