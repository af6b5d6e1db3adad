package services

import (
	"fish-logistics-service/internal/domain"
	"fmt"
)

// Advisory codes.
const (
	AdviceUseRefrigeration  = "use_refrigeration"
	AdviceConsiderColdStore = "consider_cold_storage"
	AdviceFastSpoiling      = "fast_spoiling"
	AdviceNegativeMargin    = "negative_margin"
	AdviceScaleUp           = "scale_up"
)

type AnnotatorOptions struct {
	HighSpoilagePct     float64
	LongTripHours       float64
	HighProfitThreshold float64
}

func DefaultAnnotatorOptions() AnnotatorOptions {
	return AnnotatorOptions{
		HighSpoilagePct:     15,
		LongTripHours:       12,
		HighProfitThreshold: DefaultHighProfitThreshold,
	}
}

type advisoryRule struct {
	code    string
	applies func(r *domain.RouteCandidate) bool
	message func(r *domain.RouteCandidate) string
}

// Annotator attaches advisory hints to scored routes.
// Rules are evaluated in a fixed order and never affect ranking.
type Annotator struct {
	rules []advisoryRule
}

func NewAnnotator(opts AnnotatorOptions) *Annotator {
	return &Annotator{rules: []advisoryRule{
		{
			code:    AdviceUseRefrigeration,
			applies: func(r *domain.RouteCandidate) bool { return r.SpoilagePct > opts.HighSpoilagePct },
			message: func(r *domain.RouteCandidate) string {
				return fmt.Sprintf("Expected spoilage is %.1f%%; use a refrigerated truck or pack with more ice.", r.SpoilagePct)
			},
		},
		{
			code:    AdviceConsiderColdStore,
			applies: func(r *domain.RouteCandidate) bool { return !r.UsesColdStorage() && r.TravelHours > opts.LongTripHours },
			message: func(r *domain.RouteCandidate) string {
				return fmt.Sprintf("Travel time is %.1fh; consider a cold-storage stop on the way.", r.TravelHours)
			},
		},
		{
			code:    AdviceFastSpoiling,
			applies: func(r *domain.RouteCandidate) bool { return r.FishType.FastSpoiling() },
			message: func(r *domain.RouteCandidate) string {
				return fmt.Sprintf("%s spoils quickly; prioritise the shortest dispatch.", r.FishType)
			},
		},
		{
			code:    AdviceNegativeMargin,
			applies: func(r *domain.RouteCandidate) bool { return r.NetProfit < 0 },
			message: func(r *domain.RouteCandidate) string {
				return fmt.Sprintf("This route loses %.0f; look for a closer market or a cheaper truck.", -r.NetProfit)
			},
		},
		{
			code:    AdviceScaleUp,
			applies: func(r *domain.RouteCandidate) bool { return r.NetProfit > opts.HighProfitThreshold },
			message: func(r *domain.RouteCandidate) string {
				return fmt.Sprintf("Net profit of %.0f is high; consider shipping more volume on this route.", r.NetProfit)
			},
		},
	}}
}

// Annotate returns the advisories that apply to a route, in rule order.
func (a *Annotator) Annotate(r *domain.RouteCandidate) []domain.Advisory {
	out := []domain.Advisory{}
	for _, rule := range a.rules {
		if rule.applies(r) {
			out = append(out, domain.Advisory{Code: rule.code, Message: rule.message(r)})
		}
	}
	return out
}
