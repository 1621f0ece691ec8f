package arxiv

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"inkwell/internal/knowledge"
)

const defaultBaseURL = "https://export.arxiv.org/api/query"

// Client fetches recent papers from the arXiv Atom API.
type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type feed struct {
	Entries []entry `xml:"entry"`
}

type entry struct {
	ID        string   `xml:"id"`
	Title     string   `xml:"title"`
	Summary   string   `xml:"summary"`
	Published string   `xml:"published"`
	Authors   []author `xml:"author"`
}

type author struct {
	Name string `xml:"name"`
}

// Search queries arXiv (e.g. "cat:quant-ph") for the most recently
// submitted papers, newest first.
func (c *Client) Search(ctx context.Context, query string, max int) ([]knowledge.Item, error) {
	params := url.Values{}
	params.Set("search_query", query)
	params.Set("max_results", strconv.Itoa(max))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", "descending")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("querying arxiv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arxiv returned status %d", resp.StatusCode)
	}

	var f feed
	if err := xml.NewDecoder(resp.Body).Decode(&f); err != nil {
		return nil, fmt.Errorf("decoding arxiv feed: %w", err)
	}

	items := make([]knowledge.Item, 0, len(f.Entries))
	for _, e := range f.Entries {
		authors := make([]string, 0, len(e.Authors))
		for _, a := range e.Authors {
			authors = append(authors, a.Name)
		}
		items = append(items, knowledge.Item{
			Title:     e.Title,
			Summary:   e.Summary,
			Authors:   authors,
			URL:       e.ID,
			Published: e.Published,
		})
	}
	return items, nil
}
