// Package application wires the domain and infrastructure layers together:
// it loads profile configuration, builds combiners through the registry,
// and runs assessments.
package application

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-riskblend/internal/domain"
)

// Package-level validator instance for configuration validation.
var validate = validator.New()

// Config is the root of a riskblend configuration document. It declares a
// set of named profiles, each binding a combination strategy to its
// calibration and risk-band thresholds.
type Config struct {
	// Version specifies the configuration schema version.
	Version string `yaml:"version" validate:"required"`

	// Metadata contains descriptive information about this configuration.
	Metadata Metadata `yaml:"metadata"`

	// Profiles defines the named combiner profiles. At least one profile
	// is required.
	Profiles []ProfileConfig `yaml:"profiles" validate:"required,min=1,dive"`
}

// Metadata provides descriptive information about a configuration document.
type Metadata struct {
	// Name is a human-readable identifier for this configuration.
	Name string `yaml:"name" validate:"max=255"`

	// Description explains the configuration's purpose and calibration.
	Description string `yaml:"description" validate:"max=1000"`
}

// ProfileConfig binds a combiner type to its calibration parameters and
// risk-band thresholds under a unique profile ID.
type ProfileConfig struct {
	// ID is the unique identifier for this profile within the document.
	ID string `yaml:"id" validate:"required,min=1,max=100"`

	// Combiner specifies the strategy to instantiate. Built-in types are
	// "blend", "arithmetic_mean", and "geometric_mean"; custom types can be
	// registered on the registry at runtime.
	Combiner string `yaml:"combiner" validate:"required,min=1,max=100"`

	// Parameters contains strategy-specific calibration as flexible YAML,
	// validated by the combiner implementation itself.
	Parameters yaml.Node `yaml:"parameters"`

	// Thresholds optionally overrides the default risk-band boundaries.
	Thresholds *ThresholdsConfig `yaml:"thresholds"`
}

// ThresholdsConfig declares risk-band boundaries in configuration form.
// Each value is the inclusive lower bound of its band.
type ThresholdsConfig struct {
	Moderate float64 `yaml:"moderate" validate:"required"`
	High     float64 `yaml:"high" validate:"required"`
	Critical float64 `yaml:"critical" validate:"required"`
}

// toDomain converts the configuration form into the validated domain type.
func (tc *ThresholdsConfig) toDomain() (domain.Thresholds, error) {
	th := domain.Thresholds{Moderate: tc.Moderate, High: tc.High, Critical: tc.Critical}
	if err := th.Validate(); err != nil {
		return domain.Thresholds{}, err
	}
	return th, nil
}

// ParseConfig decodes and validates a configuration document.
// Unknown fields are rejected to surface typos early, and profile IDs must
// be unique within the document.
func ParseConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidConfiguration, err)
	}

	seen := make(map[string]struct{}, len(cfg.Profiles))
	verr := domain.NewValidationError("config")
	for _, p := range cfg.Profiles {
		if _, dup := seen[p.ID]; dup {
			verr.AddError(fmt.Sprintf("duplicate profile ID %q", p.ID))
		}
		seen[p.ID] = struct{}{}

		if p.Thresholds != nil {
			if _, err := p.Thresholds.toDomain(); err != nil {
				verr.AddError(fmt.Sprintf("profile %q: %v", p.ID, err))
			}
		}
	}
	if verr.HasErrors() {
		return nil, verr
	}

	return &cfg, nil
}

// LoadConfigFile reads and parses a configuration document from disk.
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config %s: %w", path, err)
	}
	defer f.Close()

	cfg, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Profile returns the profile with the given ID.
func (c *Config) Profile(id string) (*ProfileConfig, error) {
	for i := range c.Profiles {
		if c.Profiles[i].ID == id {
			return &c.Profiles[i], nil
		}
	}
	return nil, fmt.Errorf("%w: profile %q not found", domain.ErrInvalidConfiguration, id)
}
