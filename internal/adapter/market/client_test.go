package market

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuote_ParsesChartResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/BTC-USD", r.URL.Path)
		w.Write([]byte(`{
			"chart": {
				"result": [{
					"meta": {"symbol": "BTC-USD", "regularMarketPrice": 97250.5},
					"indicators": {"quote": [{
						"open": [96000.0], "close": [97250.5], "volume": [123456]
					}]}
				}]
			}
		}`))
	}))
	defer srv.Close()

	q, err := NewClient(srv.URL).Quote(context.Background(), "BTC-USD")
	require.NoError(t, err)
	assert.Equal(t, "BTC-USD", q.Symbol)
	assert.Equal(t, 97250.5, q.Price)
	assert.InDelta(t, 1250.5, q.Change, 1e-6)
	assert.Equal(t, int64(123456), q.Volume)
}

func TestQuote_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": [], "error": {"description": "No data found"}}}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Quote(context.Background(), "NOPE")
	assert.ErrorContains(t, err, "No data found")
}
