package provider

import (
	"context"
	"fmt"

	"inkwell/internal/config"
)

// Selector hands each agent the provider suited to its task type. Today
// all task types share the configured provider; the task-type hook keeps
// per-domain model choices (a cheaper model for short-form, say) a config
// change rather than a code change.
type Selector struct {
	byTask   map[string]Provider
	fallback Provider
}

// NewSelector builds the configured provider. Provider names are already
// validated at config load; an unknown name here is a programming error.
func NewSelector(ctx context.Context, cfg *config.Config) (*Selector, error) {
	var (
		p   Provider
		err error
	)
	switch cfg.LLMProvider {
	case "openai":
		p, err = NewOpenAIProvider(cfg.OpenAIAPIKey, "")
	case "ollama":
		p, err = NewOllamaProvider(cfg.OllamaHost, "")
	case "gemini":
		p, err = NewGeminiProvider(ctx, cfg.GeminiAPIKey, "")
	default:
		return nil, fmt.Errorf("%w: %s", config.ErrUnsupportedProvider, cfg.LLMProvider)
	}
	if err != nil {
		return nil, err
	}

	return &Selector{byTask: map[string]Provider{}, fallback: p}, nil
}

// Register overrides the provider used for one task type.
func (s *Selector) Register(taskType string, p Provider) {
	s.byTask[taskType] = p
}

// For returns the provider for a task type, falling back to the default.
func (s *Selector) For(taskType string) Provider {
	if p, ok := s.byTask[taskType]; ok {
		return p
	}
	return s.fallback
}
