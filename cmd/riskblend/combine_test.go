package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahrav/go-riskblend/internal/domain"
)

func TestParseScores(t *testing.T) {
	t.Run("valid scores become factors", func(t *testing.T) {
		factors, err := parseScores([]string{"3", "5.5"})
		require.NoError(t, err)
		require.Len(t, factors, 2)
		assert.Equal(t, "score_1", factors[0].ID)
		assert.InDelta(t, 3.0, factors[0].Score, 1e-9)
		assert.InDelta(t, 5.5, factors[1].Score, 1e-9)
	})

	t.Run("no arguments rejected", func(t *testing.T) {
		_, err := parseScores(nil)
		require.Error(t, err)
	})

	t.Run("non-numeric argument rejected", func(t *testing.T) {
		_, err := parseScores([]string{"3", "high"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"high"`)
	})
}

func TestCollectFactorSets(t *testing.T) {
	t.Run("positional scores form one set", func(t *testing.T) {
		sets, err := collectFactorSets([]string{"4", "4"}, "")
		require.NoError(t, err)
		require.Len(t, sets, 1)
		assert.Equal(t, "scores", sets[0].Name)
		assert.Len(t, sets[0].Factors, 2)
	})

	t.Run("input file provides named sets", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "input.yaml")
		content := `sets:
  - name: project-a
    factors:
      - id: schedule
        score: 9
      - id: budget
        score: 12
  - name: project-b
    factors:
      - id: schedule
        score: 3
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		sets, err := collectFactorSets(nil, path)
		require.NoError(t, err)
		require.Len(t, sets, 2)
		assert.Equal(t, "project-a", sets[0].Name)
		assert.Equal(t, "schedule", sets[0].Factors[0].ID)
		assert.InDelta(t, 12.0, sets[0].Factors[1].Score, 1e-9)
	})

	t.Run("both sources rejected", func(t *testing.T) {
		_, err := collectFactorSets([]string{"4"}, "input.yaml")
		require.Error(t, err)
	})

	t.Run("empty input document rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sets: []\n"), 0o644))

		_, err := collectFactorSets(nil, path)
		require.Error(t, err)
	})
}

func TestBuildEngine_DirectCalibration(t *testing.T) {
	f := &combineFlags{weight: 1, neutral: 4}
	engine, err := buildEngine(f)
	require.NoError(t, err)

	assessment, err := engine.Assess(context.Background(), []domain.Factor{
		{ID: "a", Score: 5}, {ID: "b", Score: 5},
	})
	require.NoError(t, err)
	assert.InDelta(t, 6.0, assessment.Combined, 1e-9)
}

func TestBuildEngine_FromProfile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: "1.0"
profiles:
  - id: strict
    combiner: blend
    parameters:
      weight: 2
      neutral_point: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	f := &combineFlags{configPath: path, profileID: "strict"}
	engine, err := buildEngine(f)
	require.NoError(t, err)

	assessment, err := engine.Assess(context.Background(), []domain.Factor{
		{ID: "a", Score: 5}, {ID: "b", Score: 5},
	})
	require.NoError(t, err)
	assert.InDelta(t, 7.0, assessment.Combined, 1e-9)

	t.Run("profile flag required with config", func(t *testing.T) {
		_, err := buildEngine(&combineFlags{configPath: path})
		require.Error(t, err)
	})
}

func TestParseLevel(t *testing.T) {
	for _, valid := range []string{"moderate", "high", "critical"} {
		level, err := parseLevel(valid)
		require.NoError(t, err)
		assert.Equal(t, domain.Level(valid), level)
	}

	_, err := parseLevel("severe")
	require.Error(t, err)
}

func TestLevelAtLeast(t *testing.T) {
	assert.True(t, levelAtLeast(domain.LevelCritical, domain.LevelHigh))
	assert.True(t, levelAtLeast(domain.LevelHigh, domain.LevelHigh))
	assert.False(t, levelAtLeast(domain.LevelModerate, domain.LevelHigh))
	assert.False(t, levelAtLeast(domain.LevelLow, domain.LevelModerate))
}
