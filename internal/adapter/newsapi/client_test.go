package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_ParsesArticles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "finance OR economy OR stock market", r.URL.Query().Get("q"))
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		w.Write([]byte(`{
			"status": "ok",
			"articles": [
				{"title": "Markets rally", "description": "Stocks up.", "author": "R. Jones",
				 "url": "https://news.example/1", "publishedAt": "2025-03-01T09:00:00Z"},
				{"title": "No description", "description": "", "content": "Full content here.",
				 "author": "", "url": "https://news.example/2", "publishedAt": "2025-03-01T10:00:00Z"}
			]
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key")
	items, err := c.Search(context.Background(), "finance OR economy OR stock market", 10)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "Markets rally", items[0].Title)
	assert.Equal(t, []string{"R. Jones"}, items[0].Authors)
	// Description falls back to content, missing author yields no entry.
	assert.Equal(t, "Full content here.", items[1].Summary)
	assert.Empty(t, items[1].Authors)
}

func TestSearch_MissingAPIKey(t *testing.T) {
	c := NewClient("", "")
	_, err := c.Search(context.Background(), "finance", 10)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}
