package domain

import "fmt"

type Objective string

const (
	ObjectiveProfit   Objective = "profit"
	ObjectiveSpoilage Objective = "spoilage"
)

func ParseObjective(s string) (Objective, error) {
	switch Objective(s) {
	case "", ObjectiveProfit:
		return ObjectiveProfit, nil
	case ObjectiveSpoilage:
		return ObjectiveSpoilage, nil
	}
	return "", fmt.Errorf("parse objective %q: %w", s, ErrInvalidInput)
}

// Represents one driven segment of a candidate route.
type RouteLeg struct {
	From         string  `json:"from"`
	To           string  `json:"to"`
	DistanceKm   float64 `json:"distance_km"`
	TravelHours  float64 `json:"travel_hours"`
	Refrigerated bool    `json:"refrigerated"`
	SpoilagePct  float64 `json:"spoilage_pct"`
}

type CostBreakdown struct {
	Transport   float64 `json:"transport"`
	Spoilage    float64 `json:"spoilage"`
	ColdStorage float64 `json:"cold_storage"`
	Total       float64 `json:"total"`
}

// Advisory is a non-authoritative hint attached to a scored route.
type Advisory struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Represents one scored shipping option: a port, a market, a truck and
// optionally a cold-storage stop in between.
// A RouteCandidate is built and scored once per optimization call and is
// not mutated afterwards; ranking only reorders candidates.
type RouteCandidate struct {
	ID            string    `json:"id"`
	PortID        string    `json:"port_id"`
	PortName      string    `json:"port_name"`
	MarketID      string    `json:"market_id"`
	MarketName    string    `json:"market_name"`
	ColdStorageID string    `json:"cold_storage_id,omitempty"`
	FishType      FishType  `json:"fish_type"`
	VolumeKg      float64   `json:"volume_kg"`
	TruckID       string    `json:"truck_id"`
	TruckType     TruckType `json:"truck_type"`

	Legs         []RouteLeg `json:"legs"`
	DistanceKm   float64    `json:"distance_km"`
	TravelHours  float64    `json:"travel_hours"`
	StorageHours float64    `json:"storage_hours"`

	SpoilagePct   float64       `json:"spoilage_pct"`
	FreshWeightKg float64       `json:"fresh_weight_kg"`
	Revenue       float64       `json:"revenue"`
	Costs         CostBreakdown `json:"costs"`
	NetProfit     float64       `json:"net_profit"`

	EfficiencyScore     float64 `json:"efficiency_score"`
	SustainabilityScore float64 `json:"sustainability_score"`
	CarbonKg            float64 `json:"carbon_kg"`

	Advisories []Advisory `json:"advisories"`
}

// ElapsedHours is driving time plus time spent in cold storage.
func (r RouteCandidate) ElapsedHours() float64 {
	return r.TravelHours + r.StorageHours
}

func (r RouteCandidate) UsesColdStorage() bool { return r.ColdStorageID != "" }

type ResultStatus string

const (
	StatusOK             ResultStatus = "ok"
	StatusNoViableRoutes ResultStatus = "no_viable_routes"
)

// Ranked output of one optimization call.
type RankedResult struct {
	Routes []RouteCandidate `json:"routes"`
	// Number of candidates produced by enumeration.
	Evaluated int `json:"evaluated"`
	// Number of candidates that scored successfully, before truncation.
	Feasible int          `json:"feasible"`
	Status   ResultStatus `json:"status"`
}

// Err returns ErrNoViableRoute for an empty result, nil otherwise.
func (r *RankedResult) Err() error {
	if r == nil || len(r.Routes) == 0 {
		return ErrNoViableRoute
	}
	return nil
}
