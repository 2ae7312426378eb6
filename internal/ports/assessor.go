package ports

import (
	"context"

	"github.com/ahrav/go-riskblend/internal/domain"
)

// Assessor defines the interface for turning a set of risk factors into a
// combined assessment. The application engine is the primary
// implementation; middleware decorates it with observability.
type Assessor interface {
	// Assess combines the given risk factors into a single assessment.
	// Invalid input (empty set, missing factor IDs, scores the configured
	// strategy cannot combine) is rejected with an error.
	//
	// The context parameter allows for cancellation and deadline
	// propagation; implementations should return promptly once the
	// context is done.
	Assess(ctx context.Context, factors []domain.Factor) (domain.Assessment, error)
}
