package services

import (
	"cmp"
	"fish-logistics-service/internal/domain"
	"slices"
)

// Rank sorts routes in place by the objective and returns at most limit of them.
//
// profit sorts by net profit descending; spoilage sorts by spoilage ascending.
// Ties fall back to net profit descending and then to the route id, so the
// order is total and does not depend on the order routes were scored in.
func Rank(routes []domain.RouteCandidate, objective domain.Objective, limit int) []domain.RouteCandidate {
	slices.SortStableFunc(routes, func(a, b domain.RouteCandidate) int {
		if objective == domain.ObjectiveSpoilage {
			if c := cmp.Compare(a.SpoilagePct, b.SpoilagePct); c != 0 {
				return c
			}
		}
		if c := cmp.Compare(b.NetProfit, a.NetProfit); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})

	if limit > 0 && len(routes) > limit {
		routes = routes[:limit]
	}
	return routes
}
