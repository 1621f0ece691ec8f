package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// Client asks an image backend for an illustration matching a prompt.
// No configured host means no images: Generate reports absence, which is
// a valid outcome, not an error.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// Generate returns the URL or path of a generated image, or ("", nil)
// when the backend is unconfigured or declines the prompt.
func (c *Client) Generate(ctx context.Context, prompt, style string) (string, error) {
	if c.baseURL == "" {
		slog.DebugContext(ctx, "image backend not configured, skipping image")
		return "", nil
	}

	if style != "" {
		prompt = prompt + ", " + style
	}
	body, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/generate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling image backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("image backend returned status %d", resp.StatusCode)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding image response: %w", err)
	}
	return out.URL, nil
}
