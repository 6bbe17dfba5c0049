package redis

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/eventbus/core/bus"
	"github.com/dmitrymomot/eventbus/core/queue"
)

// envelope is the wire format published to the Redis channel.
type envelope[T any] struct {
	ID        string    `json:"id"`         // Unique identifier for the event
	Source    string    `json:"source"`     // Relay instance that published it
	Payload   T         `json:"payload"`    // Event data
	CreatedAt time.Time `json:"created_at"` // When the event was published
}

// Relay mirrors a local event bus across one Redis pub/sub channel.
// Safe for concurrent use.
type Relay[T any] struct {
	client  *redis.Client
	channel string
	source  string
	local   *bus.Bus[T]
	logger  *slog.Logger

	pubsub *redis.PubSub
	done   chan struct{}
	closed atomic.Bool
}

// RelayOption configures a Relay.
type RelayOption func(*relayOptions)

type relayOptions struct {
	logger *slog.Logger
}

// WithRelayLogger configures structured logging for the relay loop.
// Logging is disabled by default.
func WithRelayLogger(logger *slog.Logger) RelayOption {
	return func(o *relayOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// NewRelay subscribes to the given Redis channel and starts the relay
// loop. The context bounds the subscription handshake; the loop itself
// runs until Close. Returns ErrEmptyChannel if no channel name is given.
func NewRelay[T any](ctx context.Context, client *redis.Client, channel string, opts ...RelayOption) (*Relay[T], error) {
	if channel == "" {
		return nil, ErrEmptyChannel
	}

	o := &relayOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(o)
	}

	pubsub := client.Subscribe(ctx, channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, err
	}

	r := &Relay[T]{
		client:  client,
		channel: channel,
		source:  uuid.New().String(),
		local:   bus.New[T](bus.WithLogger(o.logger)),
		logger:  o.logger,
		pubsub:  pubsub,
		done:    make(chan struct{}),
	}

	go r.run(ctx)

	return r, nil
}

// run feeds envelopes received from the Redis channel into the local
// bus, skipping the relay's own publications.
func (r *Relay[T]) run(ctx context.Context) {
	defer close(r.done)

	for msg := range r.pubsub.Channel() {
		var env envelope[T]
		if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
			r.logger.ErrorContext(ctx, "failed to decode relay envelope",
				slog.String("channel", r.channel),
				slog.String("error", err.Error()))
			continue
		}

		if env.Source == r.source {
			continue
		}

		if err := r.local.Broadcast(env.Payload); err != nil {
			// Local bus is closed; the relay is shutting down.
			return
		}
	}
}

// Broadcast delivers the event to local subscribers and publishes it to
// the Redis channel for other relay instances. The local delivery
// happens even when the publish fails; the returned error reports the
// publish outcome.
func (r *Relay[T]) Broadcast(ctx context.Context, event T) error {
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

	return r.client.Publish(ctx, r.channel, data).Err()
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

// Close tears down the Redis subscription, waits for the relay loop to
// exit, and closes the local bus. Returns ErrRelayClosed if already
// closed.
func (r *Relay[T]) Close() error {
	if !r.closed.CompareAndSwap(false, true) {
		return ErrRelayClosed
	}

	err := r.pubsub.Close()
	<-r.done
	if cerr := r.local.Close(); err == nil {
		err = cerr
	}
	return err
}
