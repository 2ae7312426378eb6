package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ahrav/go-riskblend/internal/domain"
	"github.com/ahrav/go-riskblend/internal/ports"
)

// tracerName identifies this instrumentation scope to OpenTelemetry.
const tracerName = "riskblend"

var _ ports.Assessor = (*TracedAssessor)(nil)

// TracedAssessor decorates a ports.Assessor with OpenTelemetry tracing.
// Each assessment runs inside a span carrying the factor count and, on
// success, the combined score and risk level.
type TracedAssessor struct {
	// name labels the span with the assessor's identity.
	name string
	// next is the decorated assessor.
	next ports.Assessor
	// tracer creates spans for assessments.
	tracer trace.Tracer
}

// NewTracedAssessor wraps the given assessor so every assessment is traced.
func NewTracedAssessor(name string, next ports.Assessor) *TracedAssessor {
	return &TracedAssessor{
		name:   name,
		next:   next,
		tracer: otel.Tracer(tracerName),
	}
}

// Assess implements ports.Assessor, delegating to the wrapped assessor
// inside a span.
func (ta *TracedAssessor) Assess(ctx context.Context, factors []domain.Factor) (domain.Assessment, error) {
	ctx, span := ta.tracer.Start(ctx, "riskblend.assess",
		trace.WithAttributes(
			attribute.String("riskblend.assessor", ta.name),
			attribute.Int("riskblend.factor_count", len(factors)),
		),
	)
	defer span.End()

	assessment, err := ta.next.Assess(ctx, factors)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return domain.Assessment{}, err
	}

	span.SetAttributes(
		attribute.Float64("riskblend.combined_score", assessment.Combined),
		attribute.String("riskblend.level", string(assessment.Level)),
	)
	span.SetStatus(codes.Ok, "assessment completed")

	return assessment, nil
}
