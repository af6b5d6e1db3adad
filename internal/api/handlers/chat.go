package handlers

import (
	"errors"
	"fish-logistics-service/internal/api/dto"
	"fish-logistics-service/internal/domain"
	"fish-logistics-service/internal/platform/obs"
	"fish-logistics-service/internal/ports"
	"log/slog"
	"net/http"
)

// ChatHandler answers free-text logistics questions. It never affects scoring.
type ChatHandler struct {
	Generator ports.TextGenerator
	Logger    *slog.Logger
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}

	var req dto.ChatRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if !validateRequest(w, r, &req) {
		return
	}

	answer, err := h.Generator.Answer(r.Context(), req.Question, req.Route)
	if errors.Is(err, domain.ErrInvalidInput) {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		log := h.Logger
		if log == nil {
			log = slog.Default()
		}
		log.WarnContext(r.Context(), "chat failed", "req_id", obs.RequestID(r.Context()), "err", err)
		writeError(w, r, http.StatusBadGateway, "assistant unavailable")
		return
	}

	writeJSON(w, r, http.StatusOK, dto.ChatResponse{Answer: answer})
}
