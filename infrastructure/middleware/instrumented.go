package middleware

import (
	"time"

	"github.com/ahrav/go-riskblend/internal/domain"
	"github.com/ahrav/go-riskblend/internal/ports"
)

var _ domain.Combiner = (*InstrumentedCombiner)(nil)

// InstrumentedCombiner decorates a domain.Combiner with operational
// metrics: latency, outcome counts, input sizes, and the distribution of
// combined scores. The wrapped combiner's semantics are unchanged.
type InstrumentedCombiner struct {
	// name labels all metrics emitted by this wrapper.
	name string
	// next is the decorated combiner.
	next domain.Combiner
	// metrics receives the recorded observations.
	metrics ports.MetricsCollector
}

// NewInstrumentedCombiner wraps the given combiner so every combination is
// observed through the metrics collector. The name appears as the
// "combiner" label on all emitted metrics.
func NewInstrumentedCombiner(name string, next domain.Combiner, metrics ports.MetricsCollector) *InstrumentedCombiner {
	return &InstrumentedCombiner{
		name:    name,
		next:    next,
		metrics: metrics,
	}
}

// Combine implements domain.Combiner, delegating to the wrapped combiner
// and recording the outcome.
func (ic *InstrumentedCombiner) Combine(scores []float64) (float64, error) {
	labels := map[string]string{"combiner": ic.name}

	start := time.Now()
	result, err := ic.next.Combine(scores)
	ic.metrics.RecordLatency("combine", time.Since(start), labels)

	ic.metrics.RecordHistogram("input_score_count", float64(len(scores)), labels)

	if err != nil {
		ic.metrics.RecordCounter("combine_operations", 1, map[string]string{
			"combiner": ic.name,
			"status":   "error",
		})
		return 0, err
	}

	ic.metrics.RecordCounter("combine_operations", 1, map[string]string{
		"combiner": ic.name,
		"status":   "success",
	})
	ic.metrics.RecordHistogram("combined_score", result, labels)

	return result, nil
}
