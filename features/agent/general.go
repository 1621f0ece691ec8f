package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"inkwell/internal/knowledge"
)

// GeneralAgent is the catch-all handler and the coordinator's fallback
// target. It borrows a domain engine when the topic clearly leans one way,
// and otherwise writes from the model's own knowledge.
type GeneralAgent struct {
	scientific Retriever
	financial  Retriever
	models     ModelSelector
	prompts    map[string]string
}

func NewGeneralAgent(scientific, financial Retriever, models ModelSelector) *GeneralAgent {
	return &GeneralAgent{
		scientific: scientific,
		financial:  financial,
		models:     models,
		prompts:    generalPrompts,
	}
}

func (a *GeneralAgent) Type() string { return TypeGeneral }

func (a *GeneralAgent) Process(ctx context.Context, task Task) (*Result, error) {
	kbCtx := a.retrieve(ctx, task.Topic)

	tpl := selectPrompt(a.prompts, task.Platform)
	prompt := fillPrompt(tpl, map[string]string{
		"topic":      task.Topic,
		"context":    kbCtx.Content,
		"audience":   task.Audience,
		"references": formatReferences(kbCtx.References),
	})

	text, err := a.models.For(TypeGeneral).Generate(ctx, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "general generation failed", "topic", task.Topic, "error", err)
		return nil, fmt.Errorf("general agent: %w", err)
	}

	return &Result{
		Content: Content{
			Text:     text,
			Topic:    task.Topic,
			Platform: task.Platform,
			Sources:  kbCtx.References,
		},
		ContextUsed: kbCtx,
		AgentType:   TypeGeneral,
	}, nil
}

func (a *GeneralAgent) retrieve(ctx context.Context, topic string) knowledge.Context {
	t := strings.ToLower(topic)
	switch {
	case a.scientific != nil && containsAny(t, scientificKeywords):
		return a.scientific.Context(ctx, topic)
	case a.financial != nil && containsAny(t, financialKeywords):
		return a.financial.Context(ctx, topic)
	default:
		return knowledge.Context{References: []knowledge.Reference{}}
	}
}
