package queue

import "errors"

var (
	// ErrEmpty is returned by TryReceive when the queue is connected but
	// has nothing buffered. It is an expected condition, not a failure.
	ErrEmpty = errors.New("queue is empty")

	// ErrDisconnected is returned when the other half of the queue is
	// gone: by Send once the receiver is closed, and by Receive or
	// TryReceive once the sender is closed and the buffer is drained.
	ErrDisconnected = errors.New("queue is disconnected")

	// ErrClosed is returned when operating on an endpoint half that has
	// itself been closed.
	ErrClosed = errors.New("queue endpoint is closed")
)
