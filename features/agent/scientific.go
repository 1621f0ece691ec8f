package agent

import (
	"context"
	"fmt"
	"log/slog"
)

// ScientificAgent writes research-grounded content backed by the
// scientific knowledge engine.
type ScientificAgent struct {
	engine  Retriever
	models  ModelSelector
	prompts map[string]string
}

func NewScientificAgent(engine Retriever, models ModelSelector) *ScientificAgent {
	return &ScientificAgent{
		engine:  engine,
		models:  models,
		prompts: scientificPrompts,
	}
}

func (a *ScientificAgent) Type() string { return TypeScientific }

func (a *ScientificAgent) Process(ctx context.Context, task Task) (*Result, error) {
	kbCtx := a.engine.Context(ctx, task.Topic)

	tpl := selectPrompt(a.prompts, task.Platform)
	prompt := fillPrompt(tpl, map[string]string{
		"topic":      task.Topic,
		"context":    kbCtx.Content,
		"audience":   task.Audience,
		"references": formatReferences(kbCtx.References),
	})

	text, err := a.models.For(TypeScientific).Generate(ctx, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "scientific generation failed", "topic", task.Topic, "error", err)
		return nil, fmt.Errorf("scientific agent: %w", err)
	}

	return &Result{
		Content: Content{
			Text:     text,
			Topic:    task.Topic,
			Platform: task.Platform,
			Sources:  kbCtx.References,
		},
		ContextUsed: kbCtx,
		AgentType:   TypeScientific,
	}, nil
}
