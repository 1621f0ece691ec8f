package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/nsqio/go-nsq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/middleware"
)

type mockRefresher struct {
	calls int
	err   error
	seen  string
}

func (m *mockRefresher) Refresh(ctx context.Context) error {
	m.calls++
	m.seen = middleware.GetCorrelationID(ctx)
	return m.err
}

func message(body string) *nsq.Message {
	return nsq.NewMessage(nsq.MessageID{}, []byte(body))
}

func TestHandleMessage_DispatchesToDomain(t *testing.T) {
	science := &mockRefresher{}
	finance := &mockRefresher{}
	c := NewRefreshConsumer(map[string]Refresher{"scientific": science, "financial": finance})

	err := c.HandleMessage(message(`{"domain": "scientific", "correlation_id": "abc-123"}`))

	require.NoError(t, err)
	assert.Equal(t, 1, science.calls)
	assert.Zero(t, finance.calls)
	assert.Equal(t, "abc-123", science.seen)
}

func TestHandleMessage_RefreshFailureRequeues(t *testing.T) {
	science := &mockRefresher{err: errors.New("arxiv unreachable")}
	c := NewRefreshConsumer(map[string]Refresher{"scientific": science})

	err := c.HandleMessage(message(`{"domain": "scientific"}`))
	assert.Error(t, err)
}

func TestHandleMessage_PoisonPills(t *testing.T) {
	science := &mockRefresher{}
	c := NewRefreshConsumer(map[string]Refresher{"scientific": science})

	// Invalid JSON, unknown domain and empty bodies are all dropped
	// without error so NSQ does not redeliver them forever.
	assert.NoError(t, c.HandleMessage(message(`{not json`)))
	assert.NoError(t, c.HandleMessage(message(`{"domain": "astrology"}`)))
	assert.NoError(t, c.HandleMessage(message("")))
	assert.Zero(t, science.calls)
}
