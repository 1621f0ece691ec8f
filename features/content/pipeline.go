package content

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"inkwell/features/agent"
	"inkwell/internal/knowledge"
)

// Router dispatches a task to the agent fleet.
type Router interface {
	RouteTask(ctx context.Context, task agent.Task) (*agent.Result, error)
}

// Translator converts text from the configured source language.
type Translator interface {
	Translate(ctx context.Context, text, targetLang string) (string, error)
	SourceLanguage() string
}

// ImageGenerator produces an image URL for a prompt, or "" for absence.
type ImageGenerator interface {
	Generate(ctx context.Context, prompt, style string) (string, error)
}

// Request is one content-generation call.
type Request struct {
	Platform    string `json:"platform"`
	Topic       string `json:"topic"`
	Audience    string `json:"audience"`
	Language    string `json:"language"`
	CompanyInfo string `json:"company_info,omitempty"`
}

// Generated is the formatted output shape: text plus an optional image.
type Generated struct {
	Text  string `json:"text"`
	Image string `json:"image,omitempty"`
}

// Result is the pipeline's final product for one request.
type Result struct {
	Content   Generated             `json:"content"`
	Platform  string                `json:"platform"`
	Language  string                `json:"language"`
	Sources   []knowledge.Reference `json:"sources"`
	AgentType string                `json:"agent_type"`
	Report    Report                `json:"validation"`
}

// ValidationError is the terminal outcome of a generation whose output
// violated platform rules. It names every failed rule; the pipeline never
// retries or repairs.
type ValidationError struct {
	Failed []string
}

func (e *ValidationError) Error() string {
	return "content failed validation: " + strings.Join(e.Failed, ", ")
}

// Pipeline sequences template lookup, routing, translation, image
// generation and validation into one call.
type Pipeline struct {
	router     Router
	translator Translator
	images     ImageGenerator
}

func NewPipeline(router Router, translator Translator, images ImageGenerator) *Pipeline {
	return &Pipeline{router: router, translator: translator, images: images}
}

func (p *Pipeline) Generate(ctx context.Context, req Request) (*Result, error) {
	// Unknown platforms fail here, before any model spend.
	tpl, err := GetTemplate(req.Platform)
	if err != nil {
		return nil, err
	}

	audience := req.Audience
	if req.CompanyInfo != "" {
		audience = audience + ". Company context: " + req.CompanyInfo
	}

	task := agent.Task{
		Topic:    req.Topic,
		Platform: strings.ToLower(req.Platform),
		Audience: audience,
		Language: req.Language,
	}

	routed, err := p.router.RouteTask(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("generating content for %q: %w", req.Topic, err)
	}

	text := routed.Content.Text

	// Translation only when the request leaves the source language.
	// A translator failure degrades to untranslated output rather than
	// discarding an otherwise good generation.
	if req.Language != "" && req.Language != p.translator.SourceLanguage() {
		translated, err := p.translator.Translate(ctx, text, req.Language)
		if err != nil {
			slog.WarnContext(ctx, "translation failed, returning untranslated content",
				"target", req.Language, "error", err)
		} else {
			text = translated
		}
	}

	var imageURL string
	if tpl.RequiresImage {
		imageURL, err = p.images.Generate(ctx, req.Topic, tpl.ImageStyle)
		if err != nil {
			slog.WarnContext(ctx, "image generation failed, continuing without image", "error", err)
			imageURL = ""
		}
	}

	var imageMeta *ImageMeta
	if imageURL != "" {
		imageMeta = &ImageMeta{URL: imageURL}
	}

	report := Validate(text, tpl, imageMeta)
	if !report.OverallValid {
		return nil, &ValidationError{Failed: report.FailedRules()}
	}

	out := Generated{Text: text}
	if tpl.RequiresImage {
		out.Image = imageURL
	}

	return &Result{
		Content:   out,
		Platform:  tpl.Platform,
		Language:  req.Language,
		Sources:   routed.Content.Sources,
		AgentType: routed.AgentType,
		Report:    report,
	}, nil
}
