package nats

import "time"

// Config holds NATS connection settings with environment variable
// mapping.
type Config struct {
	URL            string        `env:"NATS_URL,required" envDefault:"nats://localhost:4222"`
	ClientName     string        `env:"NATS_CLIENT_NAME" envDefault:"eventbus"`
	ConnectTimeout time.Duration `env:"NATS_CONNECT_TIMEOUT" envDefault:"5s"`
	ReconnectWait  time.Duration `env:"NATS_RECONNECT_WAIT" envDefault:"2s"`
	MaxReconnects  int           `env:"NATS_MAX_RECONNECTS" envDefault:"60"`
}
