package redis

import "errors"

// Domain-specific errors for consistent handling across the application.
// Use errors.Is() to check error types for retry logic and user-facing
// messages.
var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrEmptyChannel                 = errors.New("empty redis pub/sub channel name")
	ErrRelayClosed                  = errors.New("redis relay is closed")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
)
