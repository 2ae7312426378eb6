package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
		wantErr  error
	}{
		{name: "single value", values: []float64{7.5}, expected: 7.5},
		{name: "two values", values: []float64{3, 5}, expected: 4},
		{name: "negative values allowed", values: []float64{-2, 2}, expected: 0},
		{name: "empty sample rejected", values: nil, wantErr: ErrEmptySample},
		{name: "NaN rejected", values: []float64{1, math.NaN()}, wantErr: ErrInvalidValue},
		{name: "infinity rejected", values: []float64{1, math.Inf(1)}, wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Mean(tt.values)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestGeometricMean(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
		wantErr  error
	}{
		{name: "equal values return that value", values: []float64{4, 4, 4}, expected: 4},
		{name: "two values", values: []float64{3, 5}, expected: math.Sqrt(15)},
		{name: "three values", values: []float64{1, 3, 9}, expected: 3},
		{name: "large values do not overflow", values: []float64{1e150, 1e150, 1e150}, expected: 1e150},
		{name: "empty sample rejected", values: nil, wantErr: ErrEmptySample},
		{name: "zero rejected", values: []float64{2, 0}, wantErr: ErrNonPositiveValue},
		{name: "negative rejected", values: []float64{2, -3}, wantErr: ErrNonPositiveValue},
		{name: "NaN rejected", values: []float64{2, math.NaN()}, wantErr: ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GeometricMean(tt.values)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, tt.expected*1e-12)
		})
	}
}

// The geometric mean never exceeds the arithmetic mean, with equality only
// for constant samples.
func TestGeometricMean_AMGMInequality(t *testing.T) {
	samples := [][]float64{
		{3, 5},
		{9, 12},
		{4, 4, 5},
		{1, 2, 3, 4, 5},
		{0.5, 19.5, 7.2},
	}

	for _, sample := range samples {
		am, err := Mean(sample)
		require.NoError(t, err)
		gm, err := GeometricMean(sample)
		require.NoError(t, err)
		assert.LessOrEqual(t, gm, am+1e-12, "AM-GM violated for %v", sample)
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
		wantErr  error
	}{
		{name: "known sample", values: []float64{2, 4, 4, 4, 5, 5, 7, 9}, expected: math.Sqrt(32.0 / 7.0)},
		{name: "constant sample has zero deviation", values: []float64{3, 3, 3}, expected: 0},
		{name: "single observation rejected", values: []float64{3}, wantErr: ErrInsufficientSample},
		{name: "empty sample rejected", values: nil, wantErr: ErrEmptySample},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StdDev(tt.values)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{name: "odd length returns middle value", values: []float64{9, 1, 5}, expected: 5},
		{name: "even length averages central pair", values: []float64{1, 3, 7, 9}, expected: 5},
		{name: "single value", values: []float64{2.5}, expected: 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Median(tt.values)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 1e-9)
		})
	}

	t.Run("input slice is not reordered", func(t *testing.T) {
		values := []float64{9, 1, 5}
		_, err := Median(values)
		require.NoError(t, err)
		assert.Equal(t, []float64{9, 1, 5}, values)
	})

	t.Run("empty sample rejected", func(t *testing.T) {
		_, err := Median(nil)
		require.ErrorIs(t, err, ErrEmptySample)
	})
}

func TestConfidenceInterval(t *testing.T) {
	t.Run("95 percent interval around known sample", func(t *testing.T) {
		values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
		iv, err := ConfidenceInterval(values, 1.96)
		require.NoError(t, err)

		mean := 5.0
		sd := math.Sqrt(32.0 / 7.0)
		margin := 1.96 * sd / math.Sqrt(8)
		assert.InDelta(t, mean-margin, iv.Low, 1e-9)
		assert.InDelta(t, mean+margin, iv.High, 1e-9)
	})

	t.Run("interval is symmetric around the mean", func(t *testing.T) {
		values := []float64{3, 5, 8, 13}
		iv, err := ConfidenceInterval(values, 2.58)
		require.NoError(t, err)

		mean, err := Mean(values)
		require.NoError(t, err)
		assert.InDelta(t, mean-iv.Low, iv.High-mean, 1e-9)
	})

	t.Run("single observation rejected", func(t *testing.T) {
		_, err := ConfidenceInterval([]float64{4}, 1.96)
		require.ErrorIs(t, err, ErrInsufficientSample)
	})

	t.Run("non-positive quantile rejected", func(t *testing.T) {
		_, err := ConfidenceInterval([]float64{3, 5}, 0)
		require.ErrorIs(t, err, ErrInvalidValue)
	})
}
