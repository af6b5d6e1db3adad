package assistant

import (
	"fish-logistics-service/internal/domain"
	"fmt"
	"strings"
)

const basePrompt = "You are a fish logistics assistant for small fishing cooperatives. " +
	"Answer briefly and practically about transport, spoilage, ice and cold storage. " +
	"Never invent prices or distances that are not given to you."

func systemPrompt(route *domain.RouteCandidate) string {
	if route == nil {
		return basePrompt
	}
	return basePrompt + "\n\nThe user is looking at this route:\n" + summarizeRoute(route)
}

// summarizeRoute renders the scored figures of a route as plain text lines.
func summarizeRoute(r *domain.RouteCandidate) string {
	var b strings.Builder

	via := "direct"
	if r.UsesColdStorage() {
		via = "via cold storage " + r.ColdStorageID
	}
	fmt.Fprintf(&b, "- %s from %s to %s, %s, %s truck %s\n",
		r.FishType, nameOr(r.PortName, r.PortID), nameOr(r.MarketName, r.MarketID), via, r.TruckType, r.TruckID)
	fmt.Fprintf(&b, "- %.0f kg over %.1f km, %.1f h driving", r.VolumeKg, r.DistanceKm, r.TravelHours)
	if r.StorageHours > 0 {
		fmt.Fprintf(&b, " plus %.1f h in storage, %.1f h door to door", r.StorageHours, r.ElapsedHours())
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "- expected spoilage %.1f%%, net profit %.0f (revenue %.0f, costs %.0f)\n",
		r.SpoilagePct, r.NetProfit, r.Revenue, r.Costs.Total)

	for _, a := range r.Advisories {
		fmt.Fprintf(&b, "- advisory: %s\n", a.Message)
	}

	return strings.TrimRight(b.String(), "\n")
}

func nameOr(name, id string) string {
	if name != "" {
		return name
	}
	return id
}
