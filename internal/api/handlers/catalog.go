package handlers

import (
	"fish-logistics-service/internal/api/dto"
	"fish-logistics-service/internal/domain"
	"fish-logistics-service/internal/ports"
	"log/slog"
	"net/http"
)

// CatalogHandler exposes read-only catalog listings.
// Every listing is served from one snapshot load, so it shares the catalog cache.
type CatalogHandler struct {
	Repo   ports.CatalogRepository
	Logger *slog.Logger
}

func (h *CatalogHandler) Ports(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.load(w, r)
	if !ok {
		return
	}

	list := snap.Ports
	if r.URL.Query().Get("active") == "true" {
		list = make([]domain.Port, 0, len(snap.Ports))
		for _, p := range snap.Ports {
			if p.Active {
				list = append(list, p)
			}
		}
	}
	writeJSON(w, r, http.StatusOK, dto.ListPortsResponse{Ports: nonNil(list)})
}

func (h *CatalogHandler) Trucks(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.load(w, r)
	if !ok {
		return
	}

	trucks := snap.Trucks
	if r.URL.Query().Get("available") == "true" {
		trucks = make([]domain.Truck, 0, len(snap.Trucks))
		for _, t := range snap.Trucks {
			if t.Available {
				trucks = append(trucks, t)
			}
		}
	}
	writeJSON(w, r, http.StatusOK, dto.ListTrucksResponse{Trucks: nonNil(trucks)})
}

func (h *CatalogHandler) Markets(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.load(w, r)
	if !ok {
		return
	}

	markets := snap.Markets
	if f := r.URL.Query().Get("fish_type"); f != "" {
		ft := domain.FishType(f)
		markets = make([]domain.Market, 0, len(snap.Markets))
		for _, m := range snap.Markets {
			if _, ok := m.DemandFor(ft); ok {
				markets = append(markets, m)
			}
		}
	}
	writeJSON(w, r, http.StatusOK, dto.ListMarketsResponse{Markets: nonNil(markets)})
}

func (h *CatalogHandler) ColdStorages(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, dto.ListColdStoragesResponse{ColdStorages: nonNil(snap.ColdStorages)})
}

func (h *CatalogHandler) load(w http.ResponseWriter, r *http.Request) (*domain.Snapshot, bool) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return nil, false
	}

	snap, err := h.Repo.LoadSnapshot(r.Context())
	if err == nil && snap == nil {
		snap = &domain.Snapshot{}
	}
	if err != nil {
		log := h.Logger
		if log == nil {
			log = slog.Default()
		}
		log.ErrorContext(r.Context(), "load catalog failed", "path", r.URL.Path, "err", err)
		writeError(w, r, http.StatusServiceUnavailable, "catalog unavailable")
		return nil, false
	}
	return snap, true
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
