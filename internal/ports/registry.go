package ports

import "github.com/ahrav/go-riskblend/internal/domain"

// CombinerFactory creates a combiner instance from a configuration map.
// The id parameter becomes the combiner's unique identifier, and the config
// map contains strategy-specific parameters decoded from YAML or JSON.
type CombinerFactory func(id string, config map[string]any) (domain.Combiner, error)

// CombinerRegistry defines the interface for creating combiners by type.
// It acts as a factory registry, enabling configuration-driven combiner
// instantiation and runtime registration of custom strategies.
type CombinerRegistry interface {
	// CreateCombiner creates a new combiner of the given type.
	// Returns an error for unknown types, empty IDs, or invalid configuration.
	CreateCombiner(combinerType, id string, config map[string]any) (domain.Combiner, error)

	// RegisterFactory registers a factory for a custom combiner type.
	// Registering an existing type replaces its factory.
	RegisterFactory(combinerType string, factory CombinerFactory) error

	// ListTypes returns the registered combiner type names in sorted order.
	ListTypes() []string
}
