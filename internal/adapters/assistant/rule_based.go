package assistant

import (
	"context"
	"fish-logistics-service/internal/domain"
	"fmt"
	"strings"
)

// RuleBasedGenerator answers offline from a route's scored figures and
// advisories. It is used when no model endpoint is configured and as the
// ChatClient fallback.
type RuleBasedGenerator struct{}

func (RuleBasedGenerator) Answer(_ context.Context, question string, route *domain.RouteCandidate) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("rule based answer: question must not be empty: %w", domain.ErrInvalidInput)
	}

	if route == nil {
		return "Run an optimization first and ask about one of the returned routes. " +
			"In general: refrigerated trucks cut spoilage to about a third, and trips over 12 hours " +
			"benefit from a cold-storage stop.", nil
	}

	var b strings.Builder
	b.WriteString(summarizeRoute(route))

	q := strings.ToLower(question)
	switch {
	case strings.Contains(q, "spoil") || strings.Contains(q, "fresh") || strings.Contains(q, "ice"):
		fmt.Fprintf(&b, "\n\nAbout %.0f kg of %.0f kg should arrive fresh.", route.FreshWeightKg, route.VolumeKg)
		if route.TruckType != domain.TruckRefrigerated {
			b.WriteString(" A refrigerated truck would cut the loss substantially.")
		}
	case strings.Contains(q, "profit") || strings.Contains(q, "cost") || strings.Contains(q, "price"):
		fmt.Fprintf(&b, "\n\nTransport costs %.0f, spoiled fish %.0f and cold storage %.0f.",
			route.Costs.Transport, route.Costs.Spoilage, route.Costs.ColdStorage)
	case strings.Contains(q, "carbon") || strings.Contains(q, "sustain"):
		fmt.Fprintf(&b, "\n\nEstimated emissions are %.0f kg CO2; sustainability score %.0f/100.",
			route.CarbonKg, route.SustainabilityScore)
	}

	if len(route.Advisories) == 0 {
		b.WriteString("\n\nNo risks were flagged for this route.")
	}

	return b.String(), nil
}
