package provider

import "context"

// Provider is the single capability the agents need from a language model:
// text in, text out. Any failure is fatal for the request in progress;
// providers never degrade silently.
type Provider interface {
	// Generate produces text from a prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// Name returns the provider identifier ("openai", "ollama", "gemini").
	Name() string
}
