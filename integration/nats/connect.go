package nats

import (
	"time"

	"github.com/nats-io/nats.go"
)

// Connect establishes a connection to the NATS server described by cfg.
// Zero-value fields fall back to the documented defaults. Additional
// nats.Option values are appended after the ones derived from cfg, so
// callers can override any of them.
func Connect(cfg Config, opts ...nats.Option) (*nats.Conn, error) {
	if cfg.URL == "" {
		return nil, ErrEmptyURL
	}
	cfg = cfg.withDefaults()

	options := []nats.Option{
		nats.Name(cfg.ClientName),
		nats.Timeout(cfg.ConnectTimeout),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.MaxReconnects(cfg.MaxReconnects),
	}
	options = append(options, opts...)

	return nats.Connect(cfg.URL, options...)
}

// withDefaults fills zero-value fields with the same defaults the env
// tags declare, so hand-constructed configs behave like parsed ones.
// A negative MaxReconnects (reconnect indefinitely) is preserved.
func (c Config) withDefaults() Config {
	if c.ClientName == "" {
		c.ClientName = "eventbus"
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = 5 * time.Second
	}
	if c.ReconnectWait <= 0 {
		c.ReconnectWait = 2 * time.Second
	}
	if c.MaxReconnects == 0 {
		c.MaxReconnects = 60
	}
	return c
}
