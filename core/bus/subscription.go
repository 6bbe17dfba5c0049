package bus

import (
	"context"
	"errors"
	"sync"

	"github.com/dmitrymomot/eventbus/core/queue"
)

// Subscription governs the lifetime of one background delivery worker.
// Dropping a Subscription without calling Unsubscribe leaks the worker;
// hold on to it and defer Unsubscribe.
type Subscription struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Unsubscribe signals the worker to stop. The worker notices on its next
// poll, so events may still be delivered briefly after this returns; use
// Done to wait for the worker to exit. Unsubscribe is idempotent and
// safe to call after the worker has already stopped.
func (s *Subscription) Unsubscribe() {
	s.once.Do(s.cancel)
}

// Done returns a channel that is closed once the delivery worker has
// exited, whether through Unsubscribe or bus shutdown.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// SubscribeAsync registers a subscriber and starts a worker goroutine
// that invokes fn for every delivered event. Invocations are serial: fn
// never runs concurrently with itself for one subscription. The worker
// exits when the returned Subscription is unsubscribed or the bus is
// closed. Returns ErrBusClosed if the bus was already closed.
func (b *Bus[T]) SubscribeAsync(fn func(T)) (*Subscription, error) {
	if fn == nil {
		return nil, ErrNilCallback
	}

	rx, err := b.AddSubscriber()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub := &Subscription{
		cancel: cancel,
		done:   make(chan struct{}),
	}

	go deliver(ctx, rx, fn, sub.done)

	return sub, nil
}

// deliver is the worker loop: drain everything currently buffered, check
// for termination once per iteration even when no events are pending,
// then park until the next event, termination, or disconnect.
func deliver[T any](ctx context.Context, rx *queue.Receiver[T], fn func(T), done chan<- struct{}) {
	defer close(done)
	defer rx.Close()

	for {
		for {
			v, err := rx.TryReceive()
			if err != nil {
				if errors.Is(err, queue.ErrEmpty) {
					break
				}
				return
			}
			fn(v)
		}

		select {
		case <-ctx.Done():
			return
		default:
		}

		v, err := rx.Receive(ctx)
		if err != nil {
			return
		}
		fn(v)
	}
}
