package handlers

import (
	"fish-logistics-service/internal/api/dto"
	"fish-logistics-service/internal/ports"
	"fish-logistics-service/internal/services"
	"log/slog"
	"net/http"
)

type OptimizeHandler struct {
	Repo    ports.CatalogRepository
	Options services.Options
	Logger  *slog.Logger
}

// Optimize ranks shipping routes for one catch against the current catalog.
// An empty route list is a 200 with status "no_viable_routes".
func (h *OptimizeHandler) Optimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.OptimizeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, r, &req) {
		return
	}

	res, err := services.PlanShipments(r.Context(), req.ToService(), h.Repo, h.Options)
	if err != nil {
		writeServiceError(w, r, h.logger(), "optimize", err)
		return
	}

	writeJSON(w, r, http.StatusOK, dto.NewOptimizeResponse(res))
}

func (h *OptimizeHandler) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
