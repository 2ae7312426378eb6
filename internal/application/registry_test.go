package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-riskblend/infrastructure/combiners"
	"github.com/ahrav/go-riskblend/internal/domain"
)

func TestDefaultCombinerRegistry_CreateCombiner(t *testing.T) {
	registry := NewDefaultCombinerRegistry()

	tests := []struct {
		name         string
		combinerType string
		config       map[string]any
		scores       []float64
		expected     float64
	}{
		{
			name:         "blend with explicit calibration",
			combinerType: "blend",
			config:       map[string]any{"weight": 1.0, "neutral_point": 4.0},
			scores:       []float64{5, 5},
			expected:     6,
		},
		{
			name:         "arithmetic mean with nil config",
			combinerType: "arithmetic_mean",
			scores:       []float64{3, 5},
			expected:     4,
		},
		{
			name:         "geometric mean",
			combinerType: "geometric_mean",
			config:       map[string]any{},
			scores:       []float64{1, 3, 9},
			expected:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := registry.CreateCombiner(tt.combinerType, "test", tt.config)
			require.NoError(t, err)

			got, err := c.Combine(tt.scores)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestDefaultCombinerRegistry_CreateCombiner_Errors(t *testing.T) {
	registry := NewDefaultCombinerRegistry()

	t.Run("unknown type", func(t *testing.T) {
		_, err := registry.CreateCombiner("harmonic_mean", "x", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported combiner type")
	})

	t.Run("empty ID", func(t *testing.T) {
		_, err := registry.CreateCombiner("blend", "", nil)
		require.ErrorIs(t, err, combiners.ErrEmptyCombinerID)
	})

	t.Run("invalid config surfaces factory error", func(t *testing.T) {
		_, err := registry.CreateCombiner("blend", "x", map[string]any{"neutral_point": -1.0})
		require.Error(t, err)
	})
}

// constantCombiner always returns the same score; used to exercise custom
// factory registration.
type constantCombiner struct{ value float64 }

func (c constantCombiner) Combine(scores []float64) (float64, error) {
	if len(scores) == 0 {
		return 0, combiners.ErrNoScores
	}
	return c.value, nil
}

func TestDefaultCombinerRegistry_RegisterFactory(t *testing.T) {
	registry := NewDefaultCombinerRegistry()

	err := registry.RegisterFactory("constant", func(id string, config map[string]any) (domain.Combiner, error) {
		return constantCombiner{value: 11}, nil
	})
	require.NoError(t, err)

	c, err := registry.CreateCombiner("constant", "const", nil)
	require.NoError(t, err)

	got, err := c.Combine([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.InDelta(t, 11.0, got, 1e-9)

	t.Run("empty type rejected", func(t *testing.T) {
		err := registry.RegisterFactory("", func(id string, config map[string]any) (domain.Combiner, error) {
			return nil, nil
		})
		require.Error(t, err)
	})

	t.Run("nil factory rejected", func(t *testing.T) {
		err := registry.RegisterFactory("nil", nil)
		require.Error(t, err)
	})
}

func TestDefaultCombinerRegistry_ListTypes(t *testing.T) {
	registry := NewDefaultCombinerRegistry()
	assert.Equal(t, []string{"arithmetic_mean", "blend", "geometric_mean"}, registry.ListTypes())
}
