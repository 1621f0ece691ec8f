package agent

import (
	"strings"

	"inkwell/internal/knowledge"
)

// Prompt templates are keyed "{platform}_template"; every set carries a
// default_template fallback for platforms without a dedicated prompt.

var scientificPrompts = map[string]string{
	"default_template": `Create content about {topic} using the following scientific context:
{context}

Target audience: {audience}
Make the content engaging and accessible while maintaining scientific accuracy.
Include relevant references: {references}`,

	"blog_template": `Write a comprehensive blog post about {topic} based on the following research:
{context}

Target audience: {audience}

Structure the post with:
- An engaging introduction
- Clear explanations of key concepts
- Real-world applications
- A conclusion that ties everything together

References: {references}`,

	"twitter_template": `Create an engaging tweet thread about {topic} based on:
{context}

Make it accessible for {audience} while maintaining scientific accuracy.
Focus on the most fascinating aspects and practical implications.

Key sources: {references}
Limit each tweet to 280 characters.`,
}

var financialPrompts = map[string]string{
	"default_template": `Create content about {topic} using the following market data and news:
Market Data: {market_data}
Recent News: {news}

Target audience: {audience}
Focus on key trends and actionable insights.`,

	"blog_template": `Write a detailed market analysis blog post about {topic} based on:
Market Data: {market_data}
Recent News: {news}

Target audience: {audience}

Include:
- Current market situation
- Key trends and patterns
- Potential implications for investors
- Data-backed insights`,

	"twitter_template": `Create a concise market update thread about {topic} using:
Market Data: {market_data}
Key News: {news}

Make it accessible for {audience}
Focus on the most important metrics and trends.
Include relevant $cashtags where appropriate.
Limit each tweet to 280 characters.`,
}

var generalPrompts = map[string]string{
	"default_template": `Create content about {topic} using the following context:
{context}

Target audience: {audience}
Make the content clear, engaging and trustworthy.
Include relevant references: {references}`,

	"linkedin_template": `Write a professional LinkedIn post about {topic} drawing on:
{context}

Target audience: {audience}
Keep the tone professional, include concrete takeaways, and close with a
question that invites discussion.

References: {references}`,

	"twitter_template": `Create a short, punchy tweet thread about {topic} based on:
{context}

Target audience: {audience}
Limit each tweet to 280 characters.`,
}

// selectPrompt picks "{platform}_template", falling back to default_template.
func selectPrompt(prompts map[string]string, platform string) string {
	if tpl, ok := prompts[strings.ToLower(platform)+"_template"]; ok {
		return tpl
	}
	return prompts["default_template"]
}

// fillPrompt substitutes {placeholder} variables into a template.
func fillPrompt(tpl string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tpl)
}

// formatReferences renders references for prompt use.
func formatReferences(refs []knowledge.Reference) string {
	if len(refs) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		parts = append(parts, r.Title+" ("+r.URL+")")
	}
	return strings.Join(parts, "; ")
}
