// Package domain contains pure, dependency-free domain models and types
// for the risk combination engine.
package domain

import (
	"fmt"
	"time"
)

// Factor represents a single assessed risk input.
// Each factor carries an identifier and its numeric risk score.
type Factor struct {
	// ID uniquely identifies this factor within an assessment.
	ID string `json:"id" yaml:"id"`

	// Score is the individual risk score assigned to this factor.
	// The motivating data uses positive scores roughly in the 1-20 range,
	// but no upper bound is enforced by the domain.
	Score float64 `json:"score" yaml:"score"`

	// Note optionally explains how the score was assessed.
	Note string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Level is an ordinal risk band derived from a combined score.
type Level string

// Risk bands in increasing order of severity.
const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Thresholds maps a combined score onto a Level. Each boundary is the
// inclusive lower bound of the next band: scores below Moderate are low,
// scores at or above Critical are critical.
type Thresholds struct {
	Moderate float64 `json:"moderate" yaml:"moderate"`
	High     float64 `json:"high" yaml:"high"`
	Critical float64 `json:"critical" yaml:"critical"`
}

// DefaultThresholds returns the banding used by the motivating examples,
// calibrated around a neutral point of 4.
func DefaultThresholds() Thresholds {
	return Thresholds{Moderate: 4, High: 8, Critical: 12}
}

// Validate checks that the boundaries are strictly increasing.
func (t Thresholds) Validate() error {
	if !(t.Moderate < t.High && t.High < t.Critical) {
		return fmt.Errorf("%w: thresholds must be strictly increasing (moderate=%g, high=%g, critical=%g)",
			ErrInvalidThresholds, t.Moderate, t.High, t.Critical)
	}
	return nil
}

// Classify maps a combined score onto its risk band.
func (t Thresholds) Classify(score float64) Level {
	switch {
	case score >= t.Critical:
		return LevelCritical
	case score >= t.High:
		return LevelHigh
	case score >= t.Moderate:
		return LevelModerate
	default:
		return LevelLow
	}
}

// Assessment represents the outcome of combining a set of risk factors.
// It records the combined score alongside the intermediate statistics so
// callers can explain how the result was reached.
type Assessment struct {
	// CombinerID identifies the combiner instance that produced this result.
	CombinerID string `json:"combiner_id"`

	// Combined is the final blended risk score.
	Combined float64 `json:"combined"`

	// ArithmeticMean is the plain average of the input scores.
	ArithmeticMean float64 `json:"arithmetic_mean"`

	// GeometricMean is the geometric mean of the input scores.
	GeometricMean float64 `json:"geometric_mean"`

	// Count is the number of factors that contributed to the result.
	Count int `json:"count"`

	// Level is the risk band the combined score falls into.
	Level Level `json:"level"`

	// Timestamp records when this assessment was produced.
	Timestamp time.Time `json:"timestamp"`
}
