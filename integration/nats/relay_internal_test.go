package nats

import (
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	natsio "github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventbus/core/bus"
	"github.com/dmitrymomot/eventbus/core/queue"
)

// newLoopbackRelay builds a relay without a server connection; handle
// only touches the local bus, so message processing is testable by
// invoking it the way the NATS dispatcher would.
func newLoopbackRelay(t *testing.T) (*Relay[string], *queue.Receiver[string]) {
	t.Helper()

	r := &Relay[string]{
		subject: "events",
		source:  uuid.New().String(),
		local:   bus.New[string](),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	t.Cleanup(func() { _ = r.local.Close() })

	rx, err := r.local.AddSubscriber()
	require.NoError(t, err)
	return r, rx
}

func mustEnvelope(t *testing.T, source, payload string) []byte {
	t.Helper()

	data, err := json.Marshal(envelope[string]{
		ID:        uuid.New().String(),
		Source:    source,
		Payload:   payload,
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	return data
}

func TestHandle(t *testing.T) {
	t.Parallel()

	t.Run("delivers foreign envelopes to local subscribers", func(t *testing.T) {
		t.Parallel()

		r, rx := newLoopbackRelay(t)

		r.handle(&natsio.Msg{Subject: r.subject, Data: mustEnvelope(t, "another-instance", "remote")})

		v, err := rx.TryReceive()
		require.NoError(t, err)
		assert.Equal(t, "remote", v)
	})

	t.Run("drops self-published envelopes", func(t *testing.T) {
		t.Parallel()

		r, rx := newLoopbackRelay(t)

		r.handle(&natsio.Msg{Subject: r.subject, Data: mustEnvelope(t, r.source, "echo")})

		_, err := rx.TryReceive()
		require.ErrorIs(t, err, queue.ErrEmpty)
	})

	t.Run("skips malformed payloads and keeps processing", func(t *testing.T) {
		t.Parallel()

		r, rx := newLoopbackRelay(t)

		r.handle(&natsio.Msg{Subject: r.subject, Data: []byte("{not json")})

		_, err := rx.TryReceive()
		require.ErrorIs(t, err, queue.ErrEmpty)

		r.handle(&natsio.Msg{Subject: r.subject, Data: mustEnvelope(t, "another-instance", "after-garbage")})

		v, err := rx.TryReceive()
		require.NoError(t, err)
		assert.Equal(t, "after-garbage", v)
	})
}

func TestConfigWithDefaults(t *testing.T) {
	t.Parallel()

	t.Run("fills zero values", func(t *testing.T) {
		t.Parallel()

		cfg := Config{URL: "nats://localhost:4222"}.withDefaults()

		assert.Equal(t, "eventbus", cfg.ClientName)
		assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
		assert.Equal(t, 2*time.Second, cfg.ReconnectWait)
		assert.Equal(t, 60, cfg.MaxReconnects)
	})

	t.Run("keeps explicit settings", func(t *testing.T) {
		t.Parallel()

		cfg := Config{
			URL:            "nats://localhost:4222",
			ClientName:     "orders-service",
			ConnectTimeout: time.Second,
			ReconnectWait:  time.Second,
			MaxReconnects:  -1,
		}.withDefaults()

		assert.Equal(t, "orders-service", cfg.ClientName)
		assert.Equal(t, time.Second, cfg.ConnectTimeout)
		assert.Equal(t, time.Second, cfg.ReconnectWait)
		assert.Equal(t, -1, cfg.MaxReconnects, "indefinite reconnects preserved")
	})
}
