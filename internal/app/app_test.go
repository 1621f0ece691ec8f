package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/config"
	"inkwell/internal/provider"
)

type stubEmbedder struct{}

func (stubEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return []float32{1, 0, 0}, nil
}

type stubModel struct{}

func (stubModel) Generate(ctx context.Context, prompt string) (string, error) {
	return "generated", nil
}

func (stubModel) Name() string { return "stub" }

type stubSelector struct{}

func (stubSelector) For(taskType string) provider.Provider { return stubModel{} }

type stubPublisher struct {
	topics []string
}

func (p *stubPublisher) Publish(topic string, body []byte) error {
	p.topics = append(p.topics, topic)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		CacheDir:       dir,
		FreshnessHours: 24,
		RetrievalTopK:  3,
		MaxPapers:      5,
		MaxArticles:    10,
		SourceLanguage: "en",
		ServerPort:     0,
		QueryLogPath:   filepath.Join(dir, "query.log"),
	}
}

func newTestApp(t *testing.T) (*App, *stubPublisher) {
	t.Helper()
	pub := &stubPublisher{}
	a, err := New(testConfig(t), stubEmbedder{}, stubSelector{}, pub)
	require.NoError(t, err)
	return a, pub
}

func TestNew_RegistersBothDomains(t *testing.T) {
	a, _ := newTestApp(t)
	assert.Contains(t, a.Engines, "scientific")
	assert.Contains(t, a.Engines, "financial")
	assert.NotNil(t, a.RefreshConsumer)
}

func TestHealthEndpoint(t *testing.T) {
	a, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestTemplatesEndpoint(t *testing.T) {
	a, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/templates", nil)
	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Twitter")
}

func TestGenerateEndpoint_ValidationError(t *testing.T) {
	a, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/generate", strings.NewReader(`{"platform": "twitter"}`))
	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "correlationId")
}

func TestRefreshEndpoint_Publishes(t *testing.T) {
	a, pub := newTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/knowledge/refresh", strings.NewReader(`{"domain": "scientific"}`))
	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, []string{config.TopicKnowledgeRefresh}, pub.topics)
}

func TestCORSPreflight(t *testing.T) {
	a, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/generate", nil)
	w := httptest.NewRecorder()
	a.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun_ShutsDownOnContextCancel(t *testing.T) {
	a, _ := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not shut down")
	}
}
