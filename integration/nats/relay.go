package nats

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/dmitrymomot/eventbus/core/bus"
	"github.com/dmitrymomot/eventbus/core/queue"
)

// envelope is the wire format published to the NATS subject.
type envelope[T any] struct {
	ID        string    `json:"id"`         // Unique identifier for the event
	Source    string    `json:"source"`     // Relay instance that published it
	Payload   T         `json:"payload"`    // Event data
	CreatedAt time.Time `json:"created_at"` // When the event was published
}

// Relay mirrors a local event bus across one NATS subject. Safe for
// concurrent use.
type Relay[T any] struct {
	conn    *nats.Conn
	subject string
	source  string
	local   *bus.Bus[T]
	logger  *slog.Logger

	sub    *nats.Subscription
	closed atomic.Bool
}

// RelayOption configures a Relay.
type RelayOption func(*relayOptions)

type relayOptions struct {
	logger *slog.Logger
}

// WithRelayLogger configures structured logging for the relay.
// Logging is disabled by default.
func WithRelayLogger(logger *slog.Logger) RelayOption {
	return func(o *relayOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewRelay subscribes to the given subject and starts feeding received
// envelopes into a local bus. Returns ErrEmptySubject if no subject is
// given.
func NewRelay[T any](conn *nats.Conn, subject string, opts ...RelayOption) (*Relay[T], error) {
	if subject == "" {
		return nil, ErrEmptySubject
	}

	o := &relayOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}

	r := &Relay[T]{
		conn:    conn,
		subject: subject,
		source:  uuid.New().String(),
		local:   bus.New[T](bus.WithLogger(o.logger)),
		logger:  o.logger,
	}

	sub, err := conn.Subscribe(subject, r.handle)
	if err != nil {
		_ = r.local.Close()
		return nil, err
	}
	r.sub = sub

	return r, nil
}

// handle runs on the NATS dispatcher goroutine, one message at a time.
func (r *Relay[T]) handle(msg *nats.Msg) {
	var env envelope[T]
	if err := json.Unmarshal(msg.Data, &env); err != nil {
		r.logger.Error("failed to decode relay envelope",
			slog.String("subject", r.subject),
			slog.String("error", err.Error()))
		return
	}

	if env.Source == r.source {
		return
	}

	if err := r.local.Broadcast(env.Payload); err != nil {
		r.logger.Error("failed to deliver relayed event",
			slog.String("subject", r.subject),
			slog.String("error", err.Error()))
	}
}

// Broadcast delivers the event to local subscribers and publishes it to
// the NATS subject for other relay instances. The local delivery happens
// even when the publish fails; the returned error reports the publish
// outcome.
func (r *Relay[T]) Broadcast(event T) error {
	if r.closed.Load() {
		return ErrRelayClosed
	}

	if err := r.local.Broadcast(event); err != nil {
		return ErrRelayClosed
	}

	data, err := json.Marshal(envelope[T]{
		ID:        uuid.New().String(),
		Source:    r.source,
		Payload:   event,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return err
	}

	return r.conn.Publish(r.subject, data)
}

// AddSubscriber registers a subscriber on the local bus.
func (r *Relay[T]) AddSubscriber() (*queue.Receiver[T], error) {
	return r.local.AddSubscriber()
}

// Subscribe consumes local and remote broadcasts on the calling
// goroutine until the relay closes or ctx is cancelled.
func (r *Relay[T]) Subscribe(ctx context.Context, fn func(T)) error {
	return r.local.Subscribe(ctx, fn)
}

// SubscribeAsync consumes local and remote broadcasts on a background
// worker.
func (r *Relay[T]) SubscribeAsync(fn func(T)) (*bus.Subscription, error) {
	return r.local.SubscribeAsync(fn)
}

// Stats returns the local bus metrics.
func (r *Relay[T]) Stats() bus.Stats {
	return r.local.Stats()
}

// Close drops the NATS subscription and closes the local bus. Returns
// ErrRelayClosed if already closed.
func (r *Relay[T]) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return ErrRelayClosed
	}

	err := r.sub.Unsubscribe()
	if cerr := r.local.Close(); err == nil {
		err = cerr
	}
	return err
}
