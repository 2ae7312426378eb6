package application

import (
	"fmt"
	"sort"
	"sync"

	"github.com/ahrav/go-riskblend/infrastructure/combiners"
	"github.com/ahrav/go-riskblend/internal/domain"
	"github.com/ahrav/go-riskblend/internal/ports"
)

// Verify interface compliance at compile time.
var _ ports.CombinerRegistry = (*DefaultCombinerRegistry)(nil)

// DefaultCombinerRegistry implements the CombinerRegistry interface,
// providing a factory for creating combiners based on type and
// configuration. It supports dynamic registration of custom strategies.
type DefaultCombinerRegistry struct {
	// factories maps combiner type strings to their factory functions.
	factories map[string]ports.CombinerFactory
	// mu protects concurrent access to the factories map.
	mu sync.RWMutex
}

// NewDefaultCombinerRegistry creates a registry with the standard strategies
// pre-registered: blend, arithmetic_mean, and geometric_mean.
func NewDefaultCombinerRegistry() *DefaultCombinerRegistry {
	registry := &DefaultCombinerRegistry{
		factories: make(map[string]ports.CombinerFactory),
	}

	registry.factories["blend"] = combiners.NewBlendFromConfig
	registry.factories["arithmetic_mean"] = combiners.NewArithmeticMeanFromConfig
	registry.factories["geometric_mean"] = combiners.NewGeometricMeanFromConfig

	return registry
}

// CreateCombiner creates a new combiner instance based on the provided
// type, identifier, and configuration. It looks up the appropriate factory
// function and delegates creation to it.
func (r *DefaultCombinerRegistry) CreateCombiner(
	combinerType string,
	id string,
	config map[string]any,
) (domain.Combiner, error) {
	r.mu.RLock()
	factory, exists := r.factories[combinerType]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("unsupported combiner type: %s", combinerType)
	}

	if id == "" {
		return nil, combiners.ErrEmptyCombinerID
	}

	if config == nil {
		config = make(map[string]any)
	}

	combiner, err := factory(id, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create combiner %s of type %s: %w", id, combinerType, err)
	}

	return combiner, nil
}

// RegisterFactory registers a new factory function for a combiner type,
// allowing the registry to be extended with custom strategies at runtime.
func (r *DefaultCombinerRegistry) RegisterFactory(
	combinerType string,
	factory ports.CombinerFactory,
) error {
	if combinerType == "" {
		return fmt.Errorf("combiner type cannot be empty")
	}

	if factory == nil {
		return fmt.Errorf("factory function cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[combinerType] = factory
	return nil
}

// ListTypes returns the registered combiner type names in sorted order.
func (r *DefaultCombinerRegistry) ListTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	types := make([]string, 0, len(r.factories))
	for t := range r.factories {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}
