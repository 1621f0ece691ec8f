package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrNotConfigured = errors.New("translation endpoint not configured")

// Client talks to a LibreTranslate-compatible endpoint. The source
// language is fixed by configuration; callers only choose the target.
type Client struct {
	baseURL    string
	sourceLang string
	client     *http.Client
}

func NewClient(baseURL, sourceLang string) *Client {
	return &Client{
		baseURL:    baseURL,
		sourceLang: sourceLang,
		client:     &http.Client{Timeout: 20 * time.Second},
	}
}

func (c *Client) SourceLanguage() string { return c.sourceLang }

func (c *Client) Translate(ctx context.Context, text, targetLang string) (string, error) {
	if c.baseURL == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(map[string]string{
		"q":      text,
		"source": c.sourceLang,
		"target": targetLang,
		"format": "text",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/translate", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling translator: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translator returned status %d", resp.StatusCode)
	}

	var out struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding translation: %w", err)
	}
	return out.TranslatedText, nil
}
