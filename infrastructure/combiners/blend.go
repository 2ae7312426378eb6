package combiners

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-riskblend/internal/domain"
	"github.com/ahrav/go-riskblend/internal/stats"
)

var _ domain.Combiner = (*BlendCombiner)(nil)

// BlendCombiner combines risk scores by blending the arithmetic mean with
// the geometric mean's deviation from a neutral point:
//
//	R = A + weight * (G - neutral_point)
//
// where A is the arithmetic mean and G the geometric mean of the scores.
// When every score equals the neutral point, both means equal it and the
// result is exactly the neutral point. Scores clustering above the neutral
// point are amplified beyond the plain average (for positive weight), and
// scores clustering below it are discounted. That asymmetric amplification
// is the entire purpose of the blend relative to a plain average.
//
// The combination is symmetric under any permutation of its input and
// continuous in each score and in the weight.
//
// Concurrency: stateless and safe for concurrent use after construction.
type BlendCombiner struct {
	// id is the unique identifier for this combiner instance.
	id string
	// config contains the validated calibration parameters.
	config BlendConfig
}

// BlendConfig holds the calibration parameters for the blend.
// Both values are domain-specific calibration inputs rather than universal
// constants; the motivating examples use weight 1 and neutral point 4.
type BlendConfig struct {
	// Weight scales how strongly the geometric mean's deviation from the
	// neutral point moves the result. It may be any real number: positive
	// weights amplify clustering above the neutral point, negative weights
	// invert the effect, and zero reduces the blend to the arithmetic mean.
	Weight float64 `yaml:"weight" json:"weight"`

	// NeutralPoint is the geometric-mean value at which the blend reduces
	// exactly to the arithmetic mean. It must be strictly positive, matching
	// the positivity requirement the geometric mean places on the scores.
	NeutralPoint float64 `yaml:"neutral_point" json:"neutral_point" validate:"required,gt=0"`
}

// DefaultBlendConfig returns the calibration used by the motivating examples:
// weight 1 and neutral point 4. Callers with their own score scale should
// supply their own calibration instead of relying on these values.
func DefaultBlendConfig() BlendConfig {
	return BlendConfig{Weight: 1, NeutralPoint: 4}
}

// NewBlendCombiner creates a BlendCombiner with validated calibration.
// Returns ErrEmptyCombinerID if id is empty, or a configuration validation
// error if the neutral point is not strictly positive.
func NewBlendCombiner(id string, config BlendConfig) (*BlendCombiner, error) {
	if id == "" {
		return nil, ErrEmptyCombinerID
	}

	if err := validate.Struct(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &BlendCombiner{
		id:     id,
		config: config,
	}, nil
}

// ID returns the unique identifier for this combiner instance.
func (bc *BlendCombiner) ID() string { return bc.id }

// Combine implements domain.Combiner.
//
// Algorithm:
//  1. Validates input: non-empty, every score finite and strictly positive
//  2. Arithmetic mean A = sum(scores) / count
//  3. Geometric mean G = (product(scores))^(1/count)
//  4. Result R = A + weight * (G - neutral_point)
//
// Invalid input is rejected with an error; the blend never silently
// produces NaN.
func (bc *BlendCombiner) Combine(scores []float64) (float64, error) {
	if err := validateScores(scores, true); err != nil {
		return 0, err
	}

	arith, err := stats.Mean(scores)
	if err != nil {
		return 0, err
	}
	geo, err := stats.GeometricMean(scores)
	if err != nil {
		return 0, err
	}

	return arith + bc.config.Weight*(geo-bc.config.NeutralPoint), nil
}

// Validate verifies the combiner's calibration is still consistent.
// Safe for concurrent use.
func (bc *BlendCombiner) Validate() error {
	if err := validate.Struct(bc.config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

// UnmarshalParameters deserializes YAML calibration into the combiner with
// validation. The combiner's configuration remains unchanged on error.
func (bc *BlendCombiner) UnmarshalParameters(params yaml.Node) error {
	var config BlendConfig

	if err := params.Decode(&config); err != nil {
		return fmt.Errorf("failed to decode parameters: %w", err)
	}

	if err := validate.Struct(config); err != nil {
		return fmt.Errorf("parameter validation failed: %w", err)
	}

	bc.config = config
	return nil
}

// NewBlendFromConfig creates a BlendCombiner from a configuration map.
// This is the boundary adapter for YAML/JSON configuration: defaults are
// applied first, then the user's values are overlaid.
func NewBlendFromConfig(id string, config map[string]any) (domain.Combiner, error) {
	data, err := yaml.Marshal(config)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	cfg := DefaultBlendConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return NewBlendCombiner(id, cfg)
}
