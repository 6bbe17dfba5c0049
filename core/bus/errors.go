package bus

import "errors"

var (
	// ErrBusClosed is returned when broadcasting or subscribing on a bus
	// that has been closed.
	ErrBusClosed = errors.New("bus is closed")

	// ErrNilCallback is returned when subscribing with a nil callback.
	ErrNilCallback = errors.New("callback must not be nil")
)
