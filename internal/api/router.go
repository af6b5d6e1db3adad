package api

import (
	"fish-logistics-service/internal/api/handlers"
	"fish-logistics-service/internal/platform/obs"
	"fish-logistics-service/internal/ports"
	"fish-logistics-service/internal/services"
	"log/slog"
	"net/http"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Repo      ports.CatalogRepository
	Generator ports.TextGenerator
	Options   services.Options
	Metrics   *obs.Metrics
	Logger    *slog.Logger
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	catalog := &handlers.CatalogHandler{Repo: deps.Repo, Logger: logger}
	optimize := &handlers.OptimizeHandler{Repo: deps.Repo, Options: deps.Options, Logger: logger}
	chat := &handlers.ChatHandler{Generator: deps.Generator, Logger: logger}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/ports", catalog.Ports)
	mux.HandleFunc("/trucks", catalog.Trucks)
	mux.HandleFunc("/markets", catalog.Markets)
	mux.HandleFunc("/cold-storages", catalog.ColdStorages)
	mux.HandleFunc("/optimize", optimize.Optimize)
	mux.HandleFunc("/chat", chat.Chat)

	var recorder HTTPRecorder
	if deps.Metrics != nil {
		mux.Handle("/metrics", deps.Metrics.Handler())
		recorder = deps.Metrics
	}

	return requestIDMiddleware(loggingMiddleware(logger, recorder, mux))
}
