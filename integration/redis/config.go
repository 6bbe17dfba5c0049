package redis

import "time"

// Config holds Redis connection settings with environment variable
// mapping. Zero-value fields fall back to the documented defaults when
// parsed with caarlos0/env; Connect applies the same fallbacks for
// configs constructed by hand.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}
