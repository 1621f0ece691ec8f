package worker

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/config"
)

type mockPublisher struct {
	topic string
	body  []byte
	err   error
}

func (m *mockPublisher) Publish(topic string, body []byte) error {
	m.topic = topic
	m.body = body
	return m.err
}

func TestRefreshHandler_PublishesTask(t *testing.T) {
	pub := &mockPublisher{}
	h := NewRefreshHandler(pub, map[string]Refresher{"financial": &mockRefresher{}})

	req := httptest.NewRequest(http.MethodPost, "/knowledge/refresh", strings.NewReader(`{"domain": "financial"}`))
	w := httptest.NewRecorder()
	h.Refresh(w, req)

	require.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, config.TopicKnowledgeRefresh, pub.topic)

	var published RefreshRequest
	require.NoError(t, json.Unmarshal(pub.body, &published))
	assert.Equal(t, "financial", published.Domain)
}

func TestRefreshHandler_UnknownDomain(t *testing.T) {
	pub := &mockPublisher{}
	h := NewRefreshHandler(pub, map[string]Refresher{"financial": &mockRefresher{}})

	req := httptest.NewRequest(http.MethodPost, "/knowledge/refresh", strings.NewReader(`{"domain": "astrology"}`))
	w := httptest.NewRecorder()
	h.Refresh(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, pub.topic)
}

func TestRefreshHandler_PublishFailure(t *testing.T) {
	pub := &mockPublisher{err: errors.New("nsqd down")}
	h := NewRefreshHandler(pub, map[string]Refresher{"financial": &mockRefresher{}})

	req := httptest.NewRequest(http.MethodPost, "/knowledge/refresh", strings.NewReader(`{"domain": "financial"}`))
	w := httptest.NewRecorder()
	h.Refresh(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "PUBLISH_FAILED")
}
