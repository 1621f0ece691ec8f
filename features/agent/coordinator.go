package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

var (
	scientificKeywords = []string{"quantum", "physics", "science", "scientific"}
	financialKeywords  = []string{"market", "stock", "finance", "crypto", "bitcoin", "forex"}
)

// Coordinator classifies tasks and dispatches them to the matching agent.
// A failing agent gets one shot at redemption through the general agent;
// a second failure belongs to the caller.
type Coordinator struct {
	agents map[string]Agent
}

func NewCoordinator(scientific, financial, general Agent) *Coordinator {
	return &Coordinator{
		agents: map[string]Agent{
			TypeScientific: scientific,
			TypeFinancial:  financial,
			TypeGeneral:    general,
		},
	}
}

// Classify resolves a task to an agent type: the explicit Type field wins,
// then topic keywords, then general.
func (c *Coordinator) Classify(task Task) string {
	if _, ok := c.agents[task.Type]; ok && task.Type != "" {
		return task.Type
	}

	topic := strings.ToLower(task.Topic)
	if containsAny(topic, scientificKeywords) {
		return TypeScientific
	}
	if containsAny(topic, financialKeywords) {
		return TypeFinancial
	}
	return TypeGeneral
}

// RouteTask dispatches to the classified agent, falling back to the
// general agent exactly once if the first choice fails.
func (c *Coordinator) RouteTask(ctx context.Context, task Task) (*Result, error) {
	kind := c.Classify(task)

	result, err := c.agents[kind].Process(ctx, task)
	if err == nil {
		return result, nil
	}

	if kind == TypeGeneral {
		return nil, fmt.Errorf("routing task: %w", err)
	}

	slog.WarnContext(ctx, "agent failed, falling back to general",
		"agent", kind, "topic", task.Topic, "error", err)

	result, fallbackErr := c.agents[TypeGeneral].Process(ctx, task)
	if fallbackErr != nil {
		return nil, fmt.Errorf("routing task: %s agent failed (%v), general fallback failed: %w", kind, err, fallbackErr)
	}
	return result, nil
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
