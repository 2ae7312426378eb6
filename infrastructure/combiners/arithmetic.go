package combiners

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-riskblend/internal/domain"
	"github.com/ahrav/go-riskblend/internal/stats"
)

var _ domain.Combiner = (*ArithmeticMeanCombiner)(nil)

// ArithmeticMeanCombiner combines risk scores using the plain arithmetic
// mean. It serves as the baseline strategy against which the blend's
// asymmetric amplification can be compared.
//
// Concurrency: stateless and safe for concurrent use after construction.
type ArithmeticMeanCombiner struct {
	// id is the unique identifier for this combiner instance.
	id string
	// config contains the validated configuration parameters.
	config ArithmeticMeanConfig
}

// ArithmeticMeanConfig controls the quality requirements for arithmetic
// mean combination. Configuration is immutable after creation.
type ArithmeticMeanConfig struct {
	// MinScore sets the minimum acceptable combined score. Combinations
	// below this value fail with ErrBelowMinScore for quality enforcement.
	// Use 0 to disable the floor.
	MinScore float64 `yaml:"min_score" json:"min_score" validate:"min=0"`
}

// DefaultArithmeticMeanConfig returns a config with the score floor disabled.
func DefaultArithmeticMeanConfig() ArithmeticMeanConfig {
	return ArithmeticMeanConfig{MinScore: 0}
}

// NewArithmeticMeanCombiner creates an ArithmeticMeanCombiner with
// validated configuration.
func NewArithmeticMeanCombiner(id string, config ArithmeticMeanConfig) (*ArithmeticMeanCombiner, error) {
	if id == "" {
		return nil, ErrEmptyCombinerID
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &ArithmeticMeanCombiner{
		id:     id,
		config: config,
	}, nil
}

// ID returns the unique identifier for this combiner instance.
func (ac *ArithmeticMeanCombiner) ID() string { return ac.id }

// Combine implements domain.Combiner with arithmetic mean calculation.
// Negative scores are permitted; NaN and infinite values are rejected.
func (ac *ArithmeticMeanCombiner) Combine(scores []float64) (float64, error) {
	if err := validateScores(scores, false); err != nil {
		return 0, err
	}

	mean, err := stats.Mean(scores)
	if err != nil {
		return 0, err
	}

	if ac.config.MinScore > 0 && mean < ac.config.MinScore {
		return 0, fmt.Errorf("%w: mean=%.3f, minimum=%.3f",
			ErrBelowMinScore, mean, ac.config.MinScore)
	}

	return mean, nil
}

// Validate verifies the combiner is properly configured.
func (ac *ArithmeticMeanCombiner) Validate() error {
	if err := validate.Struct(ac.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML configuration with validation.
// The combiner's configuration remains unchanged on error.
func (ac *ArithmeticMeanCombiner) UnmarshalParameters(params yaml.Node) error {
	var config ArithmeticMeanConfig

	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}

	ac.config = config
	return nil
}

// NewArithmeticMeanFromConfig creates an ArithmeticMeanCombiner from a
// configuration map. This is the boundary adapter for YAML/JSON configuration.
func NewArithmeticMeanFromConfig(id string, config map[string]any) (domain.Combiner, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultArithmeticMeanConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewArithmeticMeanCombiner(id, cfg)
}
