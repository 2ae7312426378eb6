package combiners

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-riskblend/internal/domain"
	"github.com/ahrav/go-riskblend/internal/stats"
)

var _ domain.Combiner = (*GeometricMeanCombiner)(nil)

// GeometricMeanCombiner combines risk scores using the geometric mean.
// Relative to the arithmetic mean it is pulled down by small scores, which
// makes it useful when one low assessment should temper the whole result.
// All scores must be strictly positive.
//
// Concurrency: stateless and safe for concurrent use after construction.
type GeometricMeanCombiner struct {
	// id is the unique identifier for this combiner instance.
	id string
	// config contains the validated configuration parameters.
	config GeometricMeanConfig
}

// GeometricMeanConfig controls the quality requirements for geometric
// mean combination.
type GeometricMeanConfig struct {
	// MinScore sets the minimum acceptable combined score. Combinations
	// below this value fail with ErrBelowMinScore. Use 0 to disable.
	MinScore float64 `yaml:"min_score" json:"min_score" validate:"min=0"`
}

// DefaultGeometricMeanConfig returns a config with the score floor disabled.
func DefaultGeometricMeanConfig() GeometricMeanConfig {
	return GeometricMeanConfig{MinScore: 0}
}

// NewGeometricMeanCombiner creates a GeometricMeanCombiner with validated
// configuration.
func NewGeometricMeanCombiner(id string, config GeometricMeanConfig) (*GeometricMeanCombiner, error) {
	if id == "" {
		return nil, ErrEmptyCombinerID
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &GeometricMeanCombiner{
		id:     id,
		config: config,
	}, nil
}

// ID returns the unique identifier for this combiner instance.
func (gc *GeometricMeanCombiner) ID() string { return gc.id }

// Combine implements domain.Combiner with geometric mean calculation.
// Zero and negative scores are rejected, since the geometric mean is not
// real-valued there.
func (gc *GeometricMeanCombiner) Combine(scores []float64) (float64, error) {
	if err := validateScores(scores, true); err != nil {
		return 0, err
	}

	mean, err := stats.GeometricMean(scores)
	if err != nil {
		return 0, err
	}

	if gc.config.MinScore > 0 && mean < gc.config.MinScore {
		return 0, fmt.Errorf("%w: mean=%.3f, minimum=%.3f",
			ErrBelowMinScore, mean, gc.config.MinScore)
	}

	return mean, nil
}

// Validate verifies the combiner is properly configured.
func (gc *GeometricMeanCombiner) Validate() error {
	if err := validate.Struct(gc.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration with validation.
// The combiner's configuration remains unchanged on error.
func (gc *GeometricMeanCombiner) UnmarshalParameters(params yaml.Node) error {
	var config GeometricMeanConfig

	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}

	gc.config = config
	return nil
}

// NewGeometricMeanFromConfig creates a GeometricMeanCombiner from a
// configuration map. This is the boundary adapter for YAML/JSON configuration.
func NewGeometricMeanFromConfig(id string, config map[string]any) (domain.Combiner, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultGeometricMeanConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewGeometricMeanCombiner(id, cfg)
}
