package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/nsqio/go-nsq"

	"inkwell/internal/middleware"
)

// Refresher rebuilds one domain's knowledge snapshot end to end.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshConsumer handles knowledge.refresh messages, dispatching each
// to the engine registered for the message's domain.
type RefreshConsumer struct {
	domains map[string]Refresher
}

func NewRefreshConsumer(domains map[string]Refresher) *RefreshConsumer {
	return &RefreshConsumer{domains: domains}
}

func (h *RefreshConsumer) HandleMessage(m *nsq.Message) error {
	if len(m.Body) == 0 {
		return nil
	}

	var payload RefreshRequest
	if err := json.Unmarshal(m.Body, &payload); err != nil {
		// Poison Pill: Invalid JSON, don't retry
		slog.Error("poison pill: invalid json", "error", err)
		return nil
	}

	ctx := context.Background()
	if payload.CorrelationID != "" {
		ctx = middleware.WithCorrelationID(ctx, payload.CorrelationID)
	}

	engine, ok := h.domains[payload.Domain]
	if !ok {
		// Unknown domains never succeed on retry either.
		slog.ErrorContext(ctx, "poison pill: unknown knowledge domain", "domain", payload.Domain)
		return nil
	}

	refreshCtx, cancel := context.WithTimeout(ctx, 120*time.Second)
	defer cancel()

	if err := engine.Refresh(refreshCtx); err != nil {
		slog.ErrorContext(ctx, "knowledge refresh failed", "domain", payload.Domain, "error", err)
		return err // Retry
	}

	slog.InfoContext(ctx, "knowledge domain refreshed", "domain", payload.Domain)
	return nil
}
