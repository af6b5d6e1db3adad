package ports

import (
	"context"
	"fish-logistics-service/internal/domain"
)

// Contract for the optional assistant that answers free-text questions.
// The optimizer never depends on its output.
type TextGenerator interface {
	// Answer a question, optionally in the context of one scored route.
	Answer(ctx context.Context, question string, route *domain.RouteCandidate) (string, error)
}
