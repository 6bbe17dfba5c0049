package nats

import "errors"

// Domain-specific errors for consistent handling across the application.
// Use errors.Is() to check error types.
var (
	ErrEmptyURL     = errors.New("empty nats server URL")
	ErrEmptySubject = errors.New("empty nats subject")
	ErrRelayClosed  = errors.New("nats relay is closed")
)
