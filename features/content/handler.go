package content

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"inkwell/internal/middleware"
)

type Handler struct {
	pipeline *Pipeline
}

func NewHandler(pipeline *Pipeline) *Handler {
	return &Handler{pipeline: pipeline}
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	if req.Topic == "" {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", "topic is required", http.StatusBadRequest)
		return
	}
	if req.Platform == "" {
		h.writeError(r.Context(), w, "VALIDATION_ERROR", "platform is required", http.StatusBadRequest)
		return
	}

	result, err := h.pipeline.Generate(r.Context(), req)
	if err != nil {
		var vErr *ValidationError
		switch {
		case errors.Is(err, ErrUnsupportedPlatform):
			h.writeError(r.Context(), w, "UNSUPPORTED_PLATFORM", err.Error(), http.StatusBadRequest)
		case errors.As(err, &vErr):
			h.writeError(r.Context(), w, "CONTENT_INVALID", vErr.Error(), http.StatusUnprocessableEntity)
		default:
			slog.ErrorContext(r.Context(), "generation failed", "topic", req.Topic, "error", err)
			h.writeError(r.Context(), w, "GENERATION_FAILED", "content generation failed", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": result}); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]interface{}{"data": Platforms()}); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(ctx),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
