package services

import (
	"context"
	"errors"
	"fish-logistics-service/internal/domain"
	"fish-logistics-service/internal/platform/obs"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// OptimizeRequest describes one catch and the caller's constraints.
type OptimizeRequest struct {
	SourcePortIDs     []string
	FishTypes         []domain.FishType
	VolumeKg          float64
	MaxDistanceKm     float64
	UseColdStorage    bool
	WeatherAdjustment bool
	// Ambient temperature in °C; nil leaves the temperature factor at 1.
	TemperatureC *float64
	// Dwell time at a cold-storage stop; zero uses Options.DefaultStorageHours.
	StorageHours float64
	Objective    domain.Objective
	// Zero uses Options.DefaultResultLimit.
	ResultLimit int
}

func (r OptimizeRequest) normalize(opts Options) (OptimizeRequest, error) {
	if r.VolumeKg <= 0 || math.IsNaN(r.VolumeKg) {
		return r, fmt.Errorf("volume must be positive (volume=%v): %w", r.VolumeKg, domain.ErrInvalidInput)
	}
	if r.MaxDistanceKm <= 0 || math.IsNaN(r.MaxDistanceKm) {
		return r, fmt.Errorf("max distance must be positive (max_distance=%v): %w", r.MaxDistanceKm, domain.ErrInvalidInput)
	}
	if r.StorageHours < 0 {
		return r, fmt.Errorf("storage hours must not be negative: %w", domain.ErrInvalidInput)
	}
	if r.TemperatureC != nil && (math.IsNaN(*r.TemperatureC) || math.IsInf(*r.TemperatureC, 0)) {
		return r, fmt.Errorf("temperature must be finite: %w", domain.ErrInvalidInput)
	}
	if r.ResultLimit < 0 {
		return r, fmt.Errorf("result limit must not be negative: %w", domain.ErrInvalidInput)
	}

	portIDs := make([]string, 0, len(r.SourcePortIDs))
	seenPorts := make(map[string]struct{}, len(r.SourcePortIDs))
	for _, id := range r.SourcePortIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seenPorts[id]; ok {
			continue
		}
		seenPorts[id] = struct{}{}
		portIDs = append(portIDs, id)
	}
	if len(portIDs) == 0 {
		return r, fmt.Errorf("at least one source port is required: %w", domain.ErrInvalidInput)
	}

	fish := make([]domain.FishType, 0, len(r.FishTypes))
	seenFish := make(map[domain.FishType]struct{}, len(r.FishTypes))
	for _, ft := range r.FishTypes {
		if _, ok := seenFish[ft]; ok {
			continue
		}
		seenFish[ft] = struct{}{}
		fish = append(fish, ft)
	}
	if len(fish) == 0 {
		return r, fmt.Errorf("at least one fish type is required: %w", domain.ErrInvalidInput)
	}

	objective, err := domain.ParseObjective(string(r.Objective))
	if err != nil {
		return r, err
	}

	r.SourcePortIDs = portIDs
	r.FishTypes = fish
	r.Objective = objective
	if r.StorageHours == 0 {
		r.StorageHours = opts.DefaultStorageHours
	}
	if r.ResultLimit == 0 {
		r.ResultLimit = opts.DefaultResultLimit
	}
	return r, nil
}

// Optimize enumerates, scores, annotates and ranks shipping routes for one request.
//
// The call is stateless: it reads snap and never writes to it. Scoring runs on
// up to Options.Workers goroutines. An empty result is reported through
// RankedResult.Status, not as an error.
func Optimize(
	ctx context.Context,
	req OptimizeRequest,
	snap *domain.Snapshot,
	opts Options,
) (_ *domain.RankedResult, err error) {
	defer obs.Time(ctx, "optimizer.Optimize")(&err)
	start := time.Now()

	opts = opts.withDefaults()

	if snap == nil {
		return nil, fmt.Errorf("optimize: snapshot is nil: %w", domain.ErrCatalogUnavailable)
	}

	req, err = req.normalize(opts)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}

	model, err := NewSpoilageModel(slices.Concat(opts.Profiles, validProfiles(snap.Profiles, opts.Logger)), opts.Spoilage)
	if err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}
	for _, ft := range req.FishTypes {
		if !model.Knows(ft) {
			return nil, fmt.Errorf("optimize: fish type %q has no spoilage profile: %w", ft, domain.ErrUnknownFishType)
		}
	}

	if len(snap.Ports) == 0 {
		return nil, fmt.Errorf("optimize: snapshot has no ports: %w", domain.ErrNoDataAvailable)
	}
	known := 0
	for _, id := range req.SourcePortIDs {
		if _, ok := snap.Port(id); ok {
			known++
		}
	}
	if known == 0 {
		return nil, fmt.Errorf("optimize: none of the source ports %v exist: %w", req.SourcePortIDs, domain.ErrNoDataAvailable)
	}

	candidates := Enumerate(req, snap, opts)

	cond := Conditions{TemperatureC: req.TemperatureC, WeatherAdjustment: req.WeatherAdjustment}
	scored := make([]domain.RouteCandidate, len(candidates))
	ok := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, c := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			rc, err := ScoreCandidate(c, model, cond, opts.Annotator)
			if errors.Is(err, domain.ErrInvalidInput) {
				opts.Logger.Warn("optimize: skipping unscorable candidate", "route_id", c.ID(), "err", err)
				return nil
			}
			if err != nil {
				return fmt.Errorf("score %s: %w", c.ID(), err)
			}

			scored[i] = rc
			ok[i] = true
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("optimize: %w", err)
	}

	routes := make([]domain.RouteCandidate, 0, len(scored))
	for i := range scored {
		if ok[i] {
			routes = append(routes, scored[i])
		}
	}

	feasible := len(routes)
	routes = Rank(routes, req.Objective, req.ResultLimit)

	status := domain.StatusOK
	if len(routes) == 0 {
		status = domain.StatusNoViableRoutes
	}

	if opts.Metrics != nil {
		opts.Metrics.RecordOptimization(status, len(candidates), feasible, time.Since(start))
	}

	return &domain.RankedResult{
		Routes:    routes,
		Evaluated: len(candidates),
		Feasible:  feasible,
		Status:    status,
	}, nil
}

// ScoreCandidate runs the spoilage and financial models over one candidate.
func ScoreCandidate(
	c Candidate,
	model *SpoilageModel,
	cond Conditions,
	annotator *Annotator,
) (domain.RouteCandidate, error) {
	hours := make([]float64, len(c.Legs))
	for i, l := range c.Legs {
		hours[i] = l.TravelHours
	}

	spoilage, perLeg, err := model.RouteSpoilage(c.FishType, c.Truck.Refrigerated(), hours, cond)
	if err != nil {
		return domain.RouteCandidate{}, err
	}

	in := FinancialInput{
		VolumeKg:    c.VolumeKg,
		SpoilagePct: spoilage,
		PricePerKg:  c.Demand.PricePerKg,
		DistanceKm:  c.DistanceKm,
		CostPerKm:   c.Truck.CostPerKm,
	}
	storageID := ""
	if c.ColdStorage != nil {
		storageID = c.ColdStorage.ID
		in.StorageHours = c.StorageHours
		in.StorageCostPerHour = c.ColdStorage.CostPerHour
	}

	fin, err := ComputeFinancials(in)
	if err != nil {
		return domain.RouteCandidate{}, err
	}

	legs := make([]domain.RouteLeg, len(c.Legs))
	for i, l := range c.Legs {
		legs[i] = domain.RouteLeg{
			From:         l.From,
			To:           l.To,
			DistanceKm:   l.DistanceKm,
			TravelHours:  l.TravelHours,
			Refrigerated: c.Truck.Refrigerated() || i > 0,
			SpoilagePct:  perLeg[i],
		}
	}

	rc := domain.RouteCandidate{
		ID:            c.ID(),
		PortID:        c.Port.ID,
		PortName:      c.Port.Name,
		MarketID:      c.Market.ID,
		MarketName:    c.Market.Name,
		ColdStorageID: storageID,
		FishType:      c.FishType,
		VolumeKg:      c.VolumeKg,
		TruckID:       c.Truck.ID,
		TruckType:     c.Truck.Type,

		Legs:         legs,
		DistanceKm:   c.DistanceKm,
		TravelHours:  c.TravelHours,
		StorageHours: in.StorageHours,

		SpoilagePct:   spoilage,
		FreshWeightKg: fin.FreshWeightKg,
		Revenue:       fin.Revenue,
		Costs:         fin.Costs,
		NetProfit:     fin.NetProfit,

		EfficiencyScore:     EfficiencyScore(spoilage, fin.NetProfit, c.DistanceKm),
		SustainabilityScore: SustainabilityScore(spoilage, c.Truck.Refrigerated(), c.DistanceKm),
		CarbonKg:            CarbonKg(c.DistanceKm),
	}
	if annotator != nil {
		rc.Advisories = annotator.Annotate(&rc)
	} else {
		rc.Advisories = []domain.Advisory{}
	}

	return rc, nil
}
