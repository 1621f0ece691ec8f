package worker

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"inkwell/internal/config"
	"inkwell/internal/middleware"
)

type TaskPublisher interface {
	Publish(topic string, body []byte) error
}

// RefreshHandler accepts refresh requests over HTTP and hands them to
// the queue; the consumer does the actual work.
type RefreshHandler struct {
	publisher TaskPublisher
	domains   map[string]Refresher
}

func NewRefreshHandler(publisher TaskPublisher, domains map[string]Refresher) *RefreshHandler {
	return &RefreshHandler{publisher: publisher, domains: domains}
}

func (h *RefreshHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(r, w, "VALIDATION_ERROR", err.Error(), http.StatusBadRequest)
		return
	}

	if _, ok := h.domains[req.Domain]; !ok {
		h.writeError(r, w, "UNKNOWN_DOMAIN", "no knowledge domain named "+req.Domain, http.StatusBadRequest)
		return
	}

	req.CorrelationID = middleware.GetCorrelationID(r.Context())

	body, err := json.Marshal(req)
	if err != nil {
		h.writeError(r, w, "INTERNAL_ERROR", "failed to encode refresh task", http.StatusInternalServerError)
		return
	}

	if err := h.publisher.Publish(config.TopicKnowledgeRefresh, body); err != nil {
		slog.ErrorContext(r.Context(), "failed to publish refresh task", "domain", req.Domain, "error", err)
		h.writeError(r, w, "PUBLISH_FAILED", "failed to enqueue refresh", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(map[string]string{"status": "accepted", "domain": req.Domain}); err != nil {
		slog.ErrorContext(r.Context(), "failed to encode response", "error", err)
	}
}

func (h *RefreshHandler) writeError(r *http.Request, w http.ResponseWriter, code, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	resp := map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
		"correlationId": middleware.GetCorrelationID(r.Context()),
	}

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}
