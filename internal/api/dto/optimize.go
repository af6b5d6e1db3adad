package dto

import (
	"fish-logistics-service/internal/domain"
	"fish-logistics-service/internal/services"
	"strings"
)

type OptimizeRequest struct {
	SourcePortIDs     []string `json:"source_port_ids" validate:"required,min=1,dive,required"`
	FishTypes         []string `json:"fish_types" validate:"required,min=1,dive,required"`
	VolumeKg          float64  `json:"volume_kg" validate:"gt=0"`
	MaxDistanceKm     float64  `json:"max_distance_km" validate:"gt=0"`
	UseColdStorage    bool     `json:"use_cold_storage"`
	WeatherAdjustment bool     `json:"weather_adjustment"`
	TemperatureC      *float64 `json:"temperature_c" validate:"omitempty,gte=-30,lte=60"`
	StorageHours      float64  `json:"storage_hours" validate:"gte=0,lte=168"`
	Objective         string   `json:"objective" validate:"omitempty,oneof=profit spoilage"`
	Limit             int      `json:"limit" validate:"gte=0,lte=200"`
}

type OptimizeResponse struct {
	Status    domain.ResultStatus     `json:"status"`
	Evaluated int                     `json:"evaluated"`
	Feasible  int                     `json:"feasible"`
	Routes    []domain.RouteCandidate `json:"routes"`
}

// ToService maps the wire request onto the optimizer's request.
// Fish type names are case-insensitive.
func (r OptimizeRequest) ToService() services.OptimizeRequest {
	fish := make([]domain.FishType, 0, len(r.FishTypes))
	for _, f := range r.FishTypes {
		fish = append(fish, domain.FishType(strings.ToLower(strings.TrimSpace(f))))
	}

	return services.OptimizeRequest{
		SourcePortIDs:     r.SourcePortIDs,
		FishTypes:         fish,
		VolumeKg:          r.VolumeKg,
		MaxDistanceKm:     r.MaxDistanceKm,
		UseColdStorage:    r.UseColdStorage,
		WeatherAdjustment: r.WeatherAdjustment,
		TemperatureC:      r.TemperatureC,
		StorageHours:      r.StorageHours,
		Objective:         domain.Objective(r.Objective),
		ResultLimit:       r.Limit,
	}
}

func NewOptimizeResponse(res *domain.RankedResult) OptimizeResponse {
	return OptimizeResponse{
		Status:    res.Status,
		Evaluated: res.Evaluated,
		Feasible:  res.Feasible,
		Routes:    res.Routes,
	}
}
