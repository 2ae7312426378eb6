package domain

import (
	"errors"
	"fmt"
)

// Common domain errors that can occur during risk combination.
var (
	// ErrNoFactors indicates that an assessment was requested with no inputs.
	ErrNoFactors = errors.New("no risk factors provided")

	// ErrEmptyFactorID indicates a factor is missing its identifier.
	ErrEmptyFactorID = errors.New("factor ID cannot be empty")

	// ErrInvalidThresholds indicates risk-band boundaries are not increasing.
	ErrInvalidThresholds = errors.New("invalid risk thresholds")

	// ErrInvalidConfiguration indicates that configuration is invalid or incomplete.
	ErrInvalidConfiguration = errors.New("invalid configuration")
)

// ValidationError represents an error that occurred during validation.
// It can contain multiple validation failures.
type ValidationError struct {
	// Entity is the name of the entity that failed validation.
	Entity string

	// Errors contains the list of validation error messages.
	Errors []string
}

// Error implements the error interface for ValidationError.
func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation error for %s: %s", e.Entity, e.Errors[0])
	}
	return fmt.Sprintf("validation errors for %s: %v", e.Entity, e.Errors)
}

// AddError adds a new error message to the validation error.
func (e *ValidationError) AddError(msg string) { e.Errors = append(e.Errors, msg) }

// HasErrors returns true if there are any validation errors.
func (e *ValidationError) HasErrors() bool { return len(e.Errors) > 0 }

// NewValidationError creates a new ValidationError for the given entity.
func NewValidationError(entity string) *ValidationError {
	return &ValidationError{
		Entity: entity,
		Errors: make([]string, 0),
	}
}
