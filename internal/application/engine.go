package application

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ahrav/go-riskblend/internal/domain"
	"github.com/ahrav/go-riskblend/internal/ports"
	"github.com/ahrav/go-riskblend/internal/stats"
)

// Verify interface compliance at compile time.
var _ ports.Assessor = (*Engine)(nil)

// Engine binds a combiner and a set of risk-band thresholds and turns
// collections of risk factors into assessments. It is stateless between
// calls and safe for concurrent use.
type Engine struct {
	// combinerID identifies the combiner instance in assessments.
	combinerID string
	// combiner is the combination strategy used for the final score.
	combiner domain.Combiner
	// thresholds maps combined scores onto risk bands.
	thresholds domain.Thresholds
}

// NewEngine creates an Engine from a ready combiner and validated
// thresholds.
func NewEngine(combinerID string, combiner domain.Combiner, thresholds domain.Thresholds) (*Engine, error) {
	if combinerID == "" {
		return nil, fmt.Errorf("combiner ID cannot be empty")
	}
	if combiner == nil {
		return nil, fmt.Errorf("combiner cannot be nil")
	}
	if err := thresholds.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		combinerID: combinerID,
		combiner:   combiner,
		thresholds: thresholds,
	}, nil
}

// NewEngineFromProfile builds an Engine for the named profile in the
// configuration, creating the combiner through the registry. Profiles
// without explicit thresholds use domain.DefaultThresholds.
func NewEngineFromProfile(cfg *Config, profileID string, registry ports.CombinerRegistry) (*Engine, error) {
	profile, err := cfg.Profile(profileID)
	if err != nil {
		return nil, err
	}

	params := make(map[string]any)
	if !profile.Parameters.IsZero() {
		if err := profile.Parameters.Decode(&params); err != nil {
			return nil, fmt.Errorf("profile %q: decode parameters: %w", profileID, err)
		}
	}

	combiner, err := registry.CreateCombiner(profile.Combiner, profile.ID, params)
	if err != nil {
		return nil, fmt.Errorf("profile %q: %w", profileID, err)
	}

	thresholds := domain.DefaultThresholds()
	if profile.Thresholds != nil {
		thresholds, err = profile.Thresholds.toDomain()
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", profileID, err)
		}
	}

	return NewEngine(profile.ID, combiner, thresholds)
}

// CombinerID returns the identifier of the engine's combiner instance.
func (e *Engine) CombinerID() string { return e.combinerID }

// Assess combines the given risk factors into a single assessment.
// Every factor must carry a non-empty ID; score validation is delegated to
// the combiner, so invalid input is rejected rather than propagated.
func (e *Engine) Assess(ctx context.Context, factors []domain.Factor) (domain.Assessment, error) {
	if err := ctx.Err(); err != nil {
		return domain.Assessment{}, err
	}

	if len(factors) == 0 {
		return domain.Assessment{}, domain.ErrNoFactors
	}

	scores := make([]float64, len(factors))
	for i, f := range factors {
		if f.ID == "" {
			return domain.Assessment{}, fmt.Errorf("%w: factor at index %d", domain.ErrEmptyFactorID, i)
		}
		scores[i] = f.Score
	}

	combined, err := e.combiner.Combine(scores)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("combination failed: %w", err)
	}

	arith, err := stats.Mean(scores)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("arithmetic mean: %w", err)
	}

	// The geometric mean is reported only where it is defined; strategies
	// that admit non-positive scores leave it at zero.
	geo, err := stats.GeometricMean(scores)
	if err != nil {
		geo = 0
	}

	return domain.Assessment{
		CombinerID:     e.combinerID,
		Combined:       combined,
		ArithmeticMean: arith,
		GeometricMean:  geo,
		Count:          len(factors),
		Level:          e.thresholds.Classify(combined),
		Timestamp:      time.Now().UTC(),
	}, nil
}

// AssessAll evaluates many factor sets concurrently, preserving input
// order in the results. The first failure cancels the remaining work and
// is returned with the index of the offending set.
func (e *Engine) AssessAll(ctx context.Context, sets [][]domain.Factor) ([]domain.Assessment, error) {
	results := make([]domain.Assessment, len(sets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, factors := range sets {
		i, factors := i, factors
		g.Go(func() error {
			assessment, err := e.Assess(ctx, factors)
			if err != nil {
				return fmt.Errorf("set %d: %w", i, err)
			}
			results[i] = assessment
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
