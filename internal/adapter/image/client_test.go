package image

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"url": "https://img.example/abc.png"}`))
	}))
	defer srv.Close()

	url, err := NewClient(srv.URL).Generate(context.Background(), "quantum art", "modern")
	require.NoError(t, err)
	assert.Equal(t, "https://img.example/abc.png", url)
}

func TestGenerate_UnconfiguredHostYieldsAbsence(t *testing.T) {
	url, err := NewClient("").Generate(context.Background(), "anything", "")
	assert.NoError(t, err)
	assert.Empty(t, url)
}
