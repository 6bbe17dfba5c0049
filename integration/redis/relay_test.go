package redis_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventbus/integration/redis"
)

// wireEnvelope mirrors the relay's published JSON shape for driving
// messages through the channel from a pretend remote instance.
type wireEnvelope struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Payload   string    `json:"payload"`
	CreatedAt time.Time `json:"created_at"`
}

func newTestRelay(t *testing.T, ctx context.Context) (*redis.Relay[string], *miniredis.Miniredis) {
	t.Helper()

	srv := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	relay, err := redis.NewRelay[string](ctx, client, "events")
	require.NoError(t, err)
	t.Cleanup(func() { _ = relay.Close() })

	return relay, srv
}

func TestRelay(t *testing.T) {
	t.Parallel()

	t.Run("delivers foreign envelopes to local subscribers", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		relay, srv := newTestRelay(t, ctx)

		rx, err := relay.AddSubscriber()
		require.NoError(t, err)

		data, err := json.Marshal(wireEnvelope{
			ID:        "evt-1",
			Source:    "another-instance",
			Payload:   "remote",
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
		srv.Publish("events", string(data))

		v, err := rx.Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, "remote", v)
	})

	t.Run("drops its own publications coming back from the channel", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		relay, _ := newTestRelay(t, ctx)

		rx, err := relay.AddSubscriber()
		require.NoError(t, err)

		require.NoError(t, relay.Broadcast(ctx, "local"))

		// Delivered once at broadcast time...
		v, err := rx.Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, "local", v)

		// ...and the echoed envelope must not produce a duplicate.
		echoCtx, echoCancel := context.WithTimeout(ctx, 150*time.Millisecond)
		defer echoCancel()
		_, err = rx.Receive(echoCtx)
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("skips malformed envelopes and keeps the loop alive", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		relay, srv := newTestRelay(t, ctx)

		rx, err := relay.AddSubscriber()
		require.NoError(t, err)

		srv.Publish("events", "{not json")

		data, err := json.Marshal(wireEnvelope{
			ID:        "evt-2",
			Source:    "another-instance",
			Payload:   "after-garbage",
			CreatedAt: time.Now(),
		})
		require.NoError(t, err)
		srv.Publish("events", string(data))

		v, err := rx.Receive(ctx)
		require.NoError(t, err)
		assert.Equal(t, "after-garbage", v)
	})
}
