package newsapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"inkwell/internal/knowledge"
)

const defaultBaseURL = "https://newsapi.org/v2/everything"

var ErrMissingAPIKey = errors.New("news API key not configured")

// Client fetches articles from the NewsAPI "everything" endpoint.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type response struct {
	Status   string    `json:"status"`
	Articles []article `json:"articles"`
}

type article struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Content     string `json:"content"`
	Author      string `json:"author"`
	URL         string `json:"url"`
	PublishedAt string `json:"publishedAt"`
}

func (c *Client) Search(ctx context.Context, query string, max int) ([]knowledge.Item, error) {
	if c.apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("pageSize", strconv.Itoa(max))
	params.Set("apiKey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying news api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news api returned status %d", resp.StatusCode)
	}

	var r response
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("decoding news response: %w", err)
	}

	items := make([]knowledge.Item, 0, len(r.Articles))
	for _, a := range r.Articles {
		summary := a.Description
		if summary == "" {
			summary = a.Content
		}
		var authors []string
		if a.Author != "" {
			authors = []string{a.Author}
		}
		items = append(items, knowledge.Item{
			Title:     a.Title,
			Summary:   summary,
			Authors:   authors,
			URL:       a.URL,
			Published: a.PublishedAt,
		})
	}
	return items, nil
}
