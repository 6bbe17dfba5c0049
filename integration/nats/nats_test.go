package nats_test

import (
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/eventbus/integration/nats"
)

func TestConfig(t *testing.T) {
	t.Run("parses defaults from environment", func(t *testing.T) {
		var cfg nats.Config
		require.NoError(t, env.Parse(&cfg))

		assert.Equal(t, "nats://localhost:4222", cfg.URL)
		assert.Equal(t, "eventbus", cfg.ClientName)
		assert.Equal(t, 5*time.Second, cfg.ConnectTimeout)
		assert.Equal(t, 2*time.Second, cfg.ReconnectWait)
		assert.Equal(t, 60, cfg.MaxReconnects)
	})

	t.Run("honors environment overrides", func(t *testing.T) {
		t.Setenv("NATS_URL", "nats://nats.internal:4223")
		t.Setenv("NATS_CLIENT_NAME", "orders-service")

		var cfg nats.Config
		require.NoError(t, env.Parse(&cfg))

		assert.Equal(t, "nats://nats.internal:4223", cfg.URL)
		assert.Equal(t, "orders-service", cfg.ClientName)
	})
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty URL", func(t *testing.T) {
		t.Parallel()

		_, err := nats.Connect(nats.Config{})
		require.ErrorIs(t, err, nats.ErrEmptyURL)
	})
}

func TestNewRelay(t *testing.T) {
	t.Parallel()

	t.Run("rejects empty subject", func(t *testing.T) {
		t.Parallel()

		_, err := nats.NewRelay[string](nil, "")
		require.ErrorIs(t, err, nats.ErrEmptySubject)
	})
}
