package dto

import "fish-logistics-service/internal/domain"

// ChatRequest asks the assistant a question, optionally about one returned route.
type ChatRequest struct {
	Question string                 `json:"question" validate:"required,max=2000"`
	Route    *domain.RouteCandidate `json:"route,omitempty"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}
