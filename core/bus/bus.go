package bus

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"

	"github.com/dmitrymomot/eventbus/core/queue"
)

// Bus fans events out to a dynamic set of subscribers. A *Bus is a
// cheaply shareable handle: every copy of the pointer observes the same
// subscriber set and the same broadcasts. Safe for concurrent use.
type Bus[T any] struct {
	reg    *registry[T]
	logger *slog.Logger

	eventsBroadcast atomic.Int64
	sendFailures    atomic.Int64
	reaped          atomic.Int64
}

// Stats provides observability metrics for monitoring and debugging.
type Stats struct {
	Subscribers       int   // Current number of registered subscribers
	EventsBroadcast   int64 // Total successful Broadcast calls
	SendFailures      int64 // Total per-subscriber sends that found a dead endpoint
	SubscribersReaped int64 // Total subscribers removed after a failed send
}

// Option configures a Bus.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger configures structured logging for bus internals.
// Logging is disabled by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates an empty bus.
//
// Example:
//
//	b := bus.New[OrderEvent](bus.WithLogger(logger))
//	defer b.Close()
func New[T any](opts ...Option) *Bus[T] {
	o := &options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Bus[T]{
		reg:    newRegistry[T](),
		logger: o.logger,
	}
}

// AddSubscriber registers a new subscriber and returns the inbound half
// of its private queue. The caller owns the receiver and should close it
// when done consuming; the bus notices the departure on a later
// broadcast. Returns ErrBusClosed after Close.
func (b *Bus[T]) AddSubscriber() (*queue.Receiver[T], error) {
	id, rx, err := b.reg.register()
	if err != nil {
		return nil, err
	}
	b.logger.Debug("subscriber registered", slog.Uint64("subscriber_id", id))
	return rx, nil
}

// Broadcast delivers one copy of event to every live subscriber. It
// never blocks on a subscriber: enqueueing is unbounded, and a
// disconnected subscriber is recorded and removed afterwards instead of
// aborting delivery to the rest. The fan-out itself runs under shared
// registry access; exclusive access is taken only when disconnections
// were actually observed.
func (b *Bus[T]) Broadcast(event T) error {
	failed, err := b.reg.broadcastAll(event)
	if err != nil {
		return err
	}
	b.eventsBroadcast.Add(1)

	if len(failed) > 0 {
		removed := b.reg.remove(failed)
		b.sendFailures.Add(int64(len(failed)))
		if removed > 0 {
			b.reaped.Add(int64(removed))
			b.logger.Debug("removed disconnected subscribers",
				slog.Int("count", removed))
		}
	}
	return nil
}

// Subscribe registers a subscriber and invokes fn for every event, on
// the calling goroutine, until the bus is closed (end-of-stream) or ctx
// is cancelled. Returns nil on end-of-stream, the context error on
// cancellation, or ErrBusClosed if the bus was already closed.
func (b *Bus[T]) Subscribe(ctx context.Context, fn func(T)) error {
	if fn == nil {
		return ErrNilCallback
	}

	rx, err := b.AddSubscriber()
	if err != nil {
		return err
	}
	defer rx.Close()

	for {
		v, err := rx.Receive(ctx)
		switch {
		case errors.Is(err, queue.ErrDisconnected):
			return nil
		case err != nil:
			return err
		}
		fn(v)
	}
}

// Close shuts the bus down: every subscriber queue is disconnected so
// blocking consumers observe end-of-stream, async workers exit, and
// subsequent Broadcast, AddSubscriber, and Subscribe calls return
// ErrBusClosed. Returns ErrBusClosed if already closed.
func (b *Bus[T]) Close() error {
	if err := b.reg.close(); err != nil {
		return err
	}
	b.logger.Info("bus closed")
	return nil
}

// Stats returns a point-in-time snapshot of bus metrics.
func (b *Bus[T]) Stats() Stats {
	return Stats{
		Subscribers:       b.reg.count(),
		EventsBroadcast:   b.eventsBroadcast.Load(),
		SendFailures:      b.sendFailures.Load(),
		SubscribersReaped: b.reaped.Load(),
	}
}
