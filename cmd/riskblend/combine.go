package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ahrav/go-riskblend/infrastructure/combiners"
	"github.com/ahrav/go-riskblend/internal/application"
	"github.com/ahrav/go-riskblend/internal/domain"
)

type combineFlags struct {
	configPath string
	profileID  string
	inputPath  string
	weight     float64
	neutral    float64
	format     string
	failOn     string
}

func newCombineCmd() *cobra.Command {
	f := &combineFlags{}

	cmd := &cobra.Command{
		Use:   "combine [scores...]",
		Short: "Combine risk scores into a single blended score",
		Long: `Combine risk scores into a single blended score.

Scores are given as positional arguments, or as named factor sets in a
YAML file via --input. The combination strategy comes from a profile
(--config plus --profile) or, without a config file, from the blend
calibration flags --weight and --neutral.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCombine(args, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.configPath, "config", "", "Profile configuration file")
	flags.StringVar(&f.profileID, "profile", "", "Profile ID from the configuration file")
	flags.StringVar(&f.inputPath, "input", "", "YAML file with named factor sets")
	flags.Float64Var(&f.weight, "weight", 1, "Blend weight k (ignored when --profile is set)")
	flags.Float64Var(&f.neutral, "neutral", 4, "Neutral point c (ignored when --profile is set)")
	flags.StringVar(&f.format, "format", "text", "Output format: text or json")
	flags.StringVar(&f.failOn, "fail-on", "", "Exit non-zero if any risk level meets this band (moderate, high, critical)")

	return cmd
}

// factorSet is one named collection of factors in an --input document.
type factorSet struct {
	Name    string          `yaml:"name"`
	Factors []domain.Factor `yaml:"factors"`
}

// inputDoc is the root of an --input YAML document.
type inputDoc struct {
	Sets []factorSet `yaml:"sets"`
}

func runCombine(args []string, f *combineFlags) error {
	engine, err := buildEngine(f)
	if err != nil {
		return err
	}

	sets, err := collectFactorSets(args, f.inputPath)
	if err != nil {
		return err
	}

	factorSets := make([][]domain.Factor, len(sets))
	for i := range sets {
		factorSets[i] = sets[i].Factors
	}

	results, err := engine.AssessAll(context.Background(), factorSets)
	if err != nil {
		return exitError(3, "combination failed: %v", err)
	}

	if err := printResults(os.Stdout, sets, results, f.format); err != nil {
		return err
	}

	if f.failOn != "" {
		threshold, err := parseLevel(f.failOn)
		if err != nil {
			return exitError(3, "%v", err)
		}
		for i, r := range results {
			if levelAtLeast(r.Level, threshold) {
				return exitError(2, "set %q risk level %s meets fail threshold %s",
					sets[i].Name, r.Level, threshold)
			}
		}
	}

	return nil
}

// buildEngine resolves the combination strategy: a named profile when a
// config file is supplied, otherwise a blend with the calibration flags.
func buildEngine(f *combineFlags) (*application.Engine, error) {
	if f.configPath != "" {
		if f.profileID == "" {
			return nil, exitError(3, "--profile is required when --config is set")
		}
		cfg, err := application.LoadConfigFile(f.configPath)
		if err != nil {
			return nil, exitError(3, "failed to load config: %v", err)
		}
		engine, err := application.NewEngineFromProfile(cfg, f.profileID, application.NewDefaultCombinerRegistry())
		if err != nil {
			return nil, exitError(3, "failed to build profile: %v", err)
		}
		return engine, nil
	}

	combiner, err := combiners.NewBlendCombiner("cli", combiners.BlendConfig{
		Weight:       f.weight,
		NeutralPoint: f.neutral,
	})
	if err != nil {
		return nil, exitError(3, "invalid calibration: %v", err)
	}

	engine, err := application.NewEngine("cli", combiner, domain.DefaultThresholds())
	if err != nil {
		return nil, exitError(3, "failed to build engine: %v", err)
	}
	return engine, nil
}

// collectFactorSets assembles factor sets from positional scores or an
// --input document. Exactly one source must be used.
func collectFactorSets(args []string, inputPath string) ([]factorSet, error) {
	if len(args) > 0 && inputPath != "" {
		return nil, exitError(3, "positional scores and --input are mutually exclusive")
	}

	if inputPath != "" {
		data, err := os.ReadFile(inputPath)
		if err != nil {
			return nil, exitError(3, "failed to read input: %v", err)
		}
		var doc inputDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, exitError(3, "failed to parse input: %v", err)
		}
		if len(doc.Sets) == 0 {
			return nil, exitError(3, "input file contains no factor sets")
		}
		return doc.Sets, nil
	}

	factors, err := parseScores(args)
	if err != nil {
		return nil, exitError(3, "%v", err)
	}
	return []factorSet{{Name: "scores", Factors: factors}}, nil
}

// parseScores converts positional arguments into anonymous factors.
func parseScores(args []string) ([]domain.Factor, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no scores given: pass scores as arguments or use --input")
	}

	factors := make([]domain.Factor, len(args))
	for i, arg := range args {
		score, err := strconv.ParseFloat(arg, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid score %q: %v", arg, err)
		}
		factors[i] = domain.Factor{
			ID:    fmt.Sprintf("score_%d", i+1),
			Score: score,
		}
	}
	return factors, nil
}

// combineResult pairs a set name with its assessment for JSON output.
type combineResult struct {
	Name       string            `json:"name"`
	Assessment domain.Assessment `json:"assessment"`
}

func printResults(w *os.File, sets []factorSet, results []domain.Assessment, format string) error {
	switch format {
	case "json":
		out := make([]combineResult, len(results))
		for i := range results {
			out[i] = combineResult{Name: sets[i].Name, Assessment: results[i]}
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		fmt.Fprintln(w, string(data))
	case "text":
		for i, r := range results {
			fmt.Fprintf(w, "%s: combined=%.6f mean=%.6f geo=%.6f n=%d level=%s\n",
				sets[i].Name, r.Combined, r.ArithmeticMean, r.GeometricMean, r.Count, r.Level)
		}
	default:
		return exitError(3, "unknown format: %s", format)
	}
	return nil
}

// parseLevel converts a --fail-on value into a risk band.
func parseLevel(s string) (domain.Level, error) {
	switch domain.Level(s) {
	case domain.LevelModerate, domain.LevelHigh, domain.LevelCritical:
		return domain.Level(s), nil
	default:
		return "", fmt.Errorf("unknown risk level %q (expected moderate, high, or critical)", s)
	}
}

// levelAtLeast reports whether level is at or above threshold.
func levelAtLeast(level, threshold domain.Level) bool {
	order := map[domain.Level]int{
		domain.LevelLow:      0,
		domain.LevelModerate: 1,
		domain.LevelHigh:     2,
		domain.LevelCritical: 3,
	}
	return order[level] >= order[threshold]
}
