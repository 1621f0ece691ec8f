package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/knowledge"
	"inkwell/internal/provider"
)

type stubModel struct {
	output string
	err    error
	prompt string
}

func (m *stubModel) Generate(ctx context.Context, prompt string) (string, error) {
	m.prompt = prompt
	if m.err != nil {
		return "", m.err
	}
	return m.output, nil
}

func (m *stubModel) Name() string { return "stub" }

type stubSelector struct{ model *stubModel }

func (s *stubSelector) For(taskType string) provider.Provider { return s.model }

type stubRetriever struct {
	ctx knowledge.Context
}

func (s *stubRetriever) Context(ctx context.Context, query string) knowledge.Context {
	return s.ctx
}

func retrieverWith(content string, refs ...knowledge.Reference) *stubRetriever {
	return &stubRetriever{ctx: knowledge.Context{Content: content, References: refs}}
}

func TestScientificAgent_Process(t *testing.T) {
	model := &stubModel{output: "Entanglement, explained."}
	a := NewScientificAgent(
		retrieverWith("Based on recent quantum physics research:\n\nFrom 'Paper':\nsummary",
			knowledge.Reference{Title: "Paper", URL: "http://p"}),
		&stubSelector{model: model},
	)

	res, err := a.Process(context.Background(), Task{Topic: "quantum entanglement", Platform: "blog", Audience: "students"})
	require.NoError(t, err)

	assert.Equal(t, TypeScientific, res.AgentType)
	assert.Equal(t, "Entanglement, explained.", res.Content.Text)
	require.Len(t, res.Content.Sources, 1)
	assert.Equal(t, "http://p", res.Content.Sources[0].URL)

	// Blog platform selects the blog template and fills its placeholders.
	assert.Contains(t, model.prompt, "comprehensive blog post about quantum entanglement")
	assert.Contains(t, model.prompt, "students")
	assert.NotContains(t, model.prompt, "{topic}")
}

func TestScientificAgent_UnknownPlatformUsesDefaultTemplate(t *testing.T) {
	model := &stubModel{output: "ok"}
	a := NewScientificAgent(retrieverWith("ctx"), &stubSelector{model: model})

	_, err := a.Process(context.Background(), Task{Topic: "quantum dots", Platform: "newsletter"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(model.prompt, "Create content about quantum dots"))
}

func TestScientificAgent_GenerationFailurePropagates(t *testing.T) {
	model := &stubModel{err: errors.New("rate limited")}
	a := NewScientificAgent(retrieverWith("ctx"), &stubSelector{model: model})

	_, err := a.Process(context.Background(), Task{Topic: "quantum dots", Platform: "blog"})
	assert.ErrorContains(t, err, "rate limited")
}

func TestGeneralAgent_UsesDomainEngineForLeaningTopics(t *testing.T) {
	model := &stubModel{output: "ok"}
	sci := retrieverWith("science facts")
	fin := retrieverWith("finance facts")
	a := NewGeneralAgent(sci, fin, &stubSelector{model: model})

	_, err := a.Process(context.Background(), Task{Topic: "quantum art", Platform: "blog"})
	require.NoError(t, err)
	assert.Contains(t, model.prompt, "science facts")

	_, err = a.Process(context.Background(), Task{Topic: "stock photography pricing", Platform: "blog"})
	require.NoError(t, err)
	assert.Contains(t, model.prompt, "finance facts")
}

func TestGeneralAgent_PlainTopicGetsEmptyContext(t *testing.T) {
	model := &stubModel{output: "ok"}
	a := NewGeneralAgent(retrieverWith("science"), retrieverWith("finance"), &stubSelector{model: model})

	res, err := a.Process(context.Background(), Task{Topic: "gardening", Platform: "blog"})
	require.NoError(t, err)
	assert.Empty(t, res.ContextUsed.Content)
	assert.Empty(t, res.Content.Sources)
}
