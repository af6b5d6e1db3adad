package handlers

import (
	"encoding/json"
	"errors"
	"fish-logistics-service/internal/api/dto"
	"fish-logistics-service/internal/domain"
	"fish-logistics-service/internal/platform/obs"
	"io"
	"log/slog"
	"net/http"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Default().ErrorContext(r.Context(), "encode failed",
			"req_id", obs.RequestID(r.Context()), "method", r.Method, "path", r.URL.Path, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, dto.ErrorResponse{Error: msg})
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

// decodeJSON reads exactly one JSON object with no unknown fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

// writeServiceError maps optimizer errors onto HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownFishType), errors.Is(err, domain.ErrInvalidInput):
		writeError(w, r, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNoDataAvailable):
		writeError(w, r, http.StatusUnprocessableEntity, "no catalog data for the requested source ports")
	case errors.Is(err, domain.ErrCatalogUnavailable):
		log.ErrorContext(r.Context(), op+" failed", "req_id", obs.RequestID(r.Context()), "err", err)
		writeError(w, r, http.StatusServiceUnavailable, "catalog unavailable")
	default:
		log.ErrorContext(r.Context(), op+" failed", "req_id", obs.RequestID(r.Context()), "err", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
	}
}
