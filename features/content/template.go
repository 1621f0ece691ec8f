package content

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Template is a static per-platform descriptor, used both to shape the
// prompt and to validate the output.
type Template struct {
	Platform               string `json:"platform"`
	Tone                   string `json:"tone"`
	MaxLength              int    `json:"max_length"`
	Style                  string `json:"style"`
	RequiresImage          bool   `json:"requires_image"`
	ImageStyle             string `json:"image_style,omitempty"`
	AdditionalInstructions string `json:"additional_instructions,omitempty"`
}

var templates = map[string]Template{
	"instagram": {
		Platform:      "Instagram",
		Tone:          "casual and engaging",
		MaxLength:     2200,
		Style:         "visual and direct",
		RequiresImage: true,
		ImageStyle:    "modern and eye-catching",
		AdditionalInstructions: "Include relevant emoji. Use strategic hashtags (30 at most). " +
			"Structure the content in short paragraphs.",
	},
	"linkedin": {
		Platform:  "LinkedIn",
		Tone:      "professional and formal",
		MaxLength: 3000,
		Style:     "informative and strategic",
		AdditionalInstructions: "Focus on professional and business angles. Include relevant " +
			"statistics where possible. Use well-structured paragraphs.",
	},
	"twitter": {
		Platform:  "Twitter",
		Tone:      "concise and direct",
		MaxLength: 280,
		Style:     "conversational",
		AdditionalInstructions: "Be brief and direct. Use relevant hashtags (2-3 at most). " +
			"Drive engagement with questions or calls to action.",
	},
	"facebook": {
		Platform:      "Facebook",
		Tone:          "informal but informative",
		MaxLength:     63206,
		Style:         "balanced",
		RequiresImage: true,
		ImageStyle:    "appealing and on-topic",
		AdditionalInstructions: "Combine informative text with an approachable tone. Include " +
			"calls to action and invite interaction.",
	},
	"blog": {
		Platform:      "Blog",
		Tone:          "professional and educational",
		MaxLength:     5000,
		Style:         "informative article",
		RequiresImage: true,
		ImageStyle:    "professional image related to the topic",
		AdditionalInstructions: "Structure the content as introduction, body and conclusion. " +
			"Use subheadings for the main sections. Include practical examples where relevant " +
			"and close with a call to action or final reflection.",
	},
}

// GetTemplate looks a template up by platform name, case-insensitively.
// An unregistered platform is a configuration error, caught before any
// model call is spent on it.
func GetTemplate(platform string) (Template, error) {
	tpl, ok := templates[strings.ToLower(platform)]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrUnsupportedPlatform, platform)
	}
	return tpl, nil
}

// Platforms lists the registered platform names.
func Platforms() []string {
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Platform)
	}
	return names
}
