package agent

import (
	"context"

	"inkwell/internal/adapter/market"
	"inkwell/internal/knowledge"
	"inkwell/internal/provider"
)

// Agent type tags, also used as task classification results.
const (
	TypeScientific = "scientific"
	TypeFinancial  = "financial"
	TypeGeneral    = "general"
)

// Task is one content request, immutable once dispatched.
type Task struct {
	Topic    string `json:"topic"`
	Platform string `json:"platform"`
	Audience string `json:"audience"`
	Language string `json:"language"`
	// Type short-circuits keyword classification when set.
	Type string `json:"type,omitempty"`
}

// Content is the generated payload plus the material that shaped it.
type Content struct {
	Text       string                  `json:"text"`
	Topic      string                  `json:"topic"`
	Platform   string                  `json:"platform"`
	MarketData map[string]market.Quote `json:"market_data,omitempty"`
	Sources    []knowledge.Reference   `json:"sources"`
}

type Result struct {
	Content     Content           `json:"content"`
	ContextUsed knowledge.Context `json:"context_used"`
	AgentType   string            `json:"agent_type"`
}

// Agent turns a task into content. Retrieval problems degrade inside the
// agent's engine; generation problems come back as errors and are the
// coordinator's to handle.
type Agent interface {
	Type() string
	Process(ctx context.Context, task Task) (*Result, error)
}

// Retriever is the slice of the knowledge engine agents consume.
type Retriever interface {
	Context(ctx context.Context, query string) knowledge.Context
}

// ModelSelector hands an agent the language model for its task type.
type ModelSelector interface {
	For(taskType string) provider.Provider
}
