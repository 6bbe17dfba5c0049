package queue

import (
	"context"
	"sync"
)

// state is the shared core of one queue pair. The buffer is a slice with
// a moving head index; popped slots are zeroed so released values do not
// outlive their delivery.
type state[T any] struct {
	mu         sync.Mutex
	buf        []T
	head       int
	sendClosed bool
	recvClosed bool

	// notify carries at most one pending wakeup for a blocked Receive.
	// A lost send means a token is already latched and the receiver will
	// re-check the buffer anyway.
	notify chan struct{}
}

// Sender is the producing half of a queue pair. It is safe for
// concurrent use by multiple goroutines.
type Sender[T any] struct {
	q *state[T]
}

// Receiver is the consuming half of a queue pair. It assumes a single
// consumer.
type Receiver[T any] struct {
	q *state[T]
}

// New creates an unbounded FIFO queue and returns its two halves.
func New[T any]() (*Sender[T], *Receiver[T]) {
	q := &state[T]{notify: make(chan struct{}, 1)}
	return &Sender[T]{q: q}, &Receiver[T]{q: q}
}

// Send enqueues a value. It never blocks. Returns ErrDisconnected if the
// receiver half has been closed, or ErrClosed if this sender has been
// closed.
func (s *Sender[T]) Send(v T) error {
	q := s.q
	q.mu.Lock()
	switch {
	case q.recvClosed:
		q.mu.Unlock()
		return ErrDisconnected
	case q.sendClosed:
		q.mu.Unlock()
		return ErrClosed
	}
	q.buf = append(q.buf, v)
	q.mu.Unlock()

	q.wake()
	return nil
}

// Close marks the producer side as finished. Values already buffered
// remain deliverable; once drained, the receiver observes
// ErrDisconnected. Close is idempotent and never fails.
func (s *Sender[T]) Close() error {
	q := s.q
	q.mu.Lock()
	if q.sendClosed {
		q.mu.Unlock()
		return nil
	}
	q.sendClosed = true
	q.mu.Unlock()

	q.wake()
	return nil
}

// TryReceive dequeues the next value without blocking. Returns ErrEmpty
// when the queue is connected but drained, ErrDisconnected when the
// sender is closed and nothing is buffered, and ErrClosed when this
// receiver has been closed.
func (r *Receiver[T]) TryReceive() (T, error) {
	var zero T
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()

	switch {
	case q.recvClosed:
		return zero, ErrClosed
	case q.head < len(q.buf):
		return q.pop(), nil
	case q.sendClosed:
		return zero, ErrDisconnected
	default:
		return zero, ErrEmpty
	}
}

// Receive dequeues the next value, blocking until one is available, the
// queue disconnects, or the context is cancelled. Returns
// ErrDisconnected once the sender is closed and the buffer is drained,
// ErrClosed if this receiver is closed, or the context error.
func (r *Receiver[T]) Receive(ctx context.Context) (T, error) {
	var zero T
	q := r.q
	for {
		q.mu.Lock()
		switch {
		case q.recvClosed:
			q.mu.Unlock()
			return zero, ErrClosed
		case q.head < len(q.buf):
			v := q.pop()
			q.mu.Unlock()
			return v, nil
		case q.sendClosed:
			q.mu.Unlock()
			return zero, ErrDisconnected
		}
		q.mu.Unlock()

		select {
		case <-q.notify:
		case <-ctx.Done():
			return zero, ctx.Err()
		}
	}
}

// Close disconnects the consumer side and discards anything still
// buffered. Subsequent Send calls on the paired Sender return
// ErrDisconnected. Close is idempotent and never fails.
func (r *Receiver[T]) Close() error {
	q := r.q
	q.mu.Lock()
	if q.recvClosed {
		q.mu.Unlock()
		return nil
	}
	q.recvClosed = true
	q.buf = nil
	q.head = 0
	q.mu.Unlock()

	q.wake()
	return nil
}

// Len reports how many values are currently buffered.
func (r *Receiver[T]) Len() int {
	q := r.q
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf) - q.head
}

// pop removes and returns the head value. Caller must hold q.mu and
// guarantee the buffer is non-empty.
func (q *state[T]) pop() T {
	var zero T
	v := q.buf[q.head]
	q.buf[q.head] = zero
	q.head++

	// Reclaim consumed capacity once the buffer empties out or the dead
	// prefix dominates it.
	if q.head == len(q.buf) {
		q.buf = q.buf[:0]
		q.head = 0
	} else if q.head > 1024 && q.head*2 > len(q.buf) {
		n := copy(q.buf, q.buf[q.head:])
		clear(q.buf[n:])
		q.buf = q.buf[:n]
		q.head = 0
	}
	return v
}

// wake latches a single wakeup for a blocked Receive.
func (q *state[T]) wake() {
	select {
	case q.notify <- struct{}{}:
	default:
	}
}
