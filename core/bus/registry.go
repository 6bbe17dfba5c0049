package bus

import (
	"slices"
	"sync"

	"github.com/dmitrymomot/eventbus/core/queue"
)

// registry owns the mapping from subscriber id to the outbound half of
// that subscriber's queue. Reads (broadcasts) share the lock; writes
// (register, remove, close) take it exclusively.
type registry[T any] struct {
	mu          sync.RWMutex
	subscribers map[uint64]*queue.Sender[T]
	nextID      uint64
	closed      bool
}

func newRegistry[T any]() *registry[T] {
	return &registry[T]{subscribers: make(map[uint64]*queue.Sender[T])}
}

// register allocates a new queue pair, stores the outbound half under a
// fresh id, and returns the id with the inbound half. Ids grow
// monotonically and are never reused, even after removal.
func (r *registry[T]) register() (uint64, *queue.Receiver[T], error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return 0, nil, ErrBusClosed
	}

	tx, rx := queue.New[T]()
	id := r.nextID
	r.nextID++
	r.subscribers[id] = tx
	return id, rx, nil
}

// broadcastAll sends the event to every subscriber in ascending id
// order, so one broadcast is observed in registration order rather than
// map-iteration order. A failed send marks that subscriber as
// disconnected and never affects delivery to the others. Returns the
// ids whose send failed.
func (r *registry[T]) broadcastAll(event T) ([]uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.closed {
		return nil, ErrBusClosed
	}
	if len(r.subscribers) == 0 {
		return nil, nil
	}

	ids := make([]uint64, 0, len(r.subscribers))
	for id := range r.subscribers {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	var failed []uint64
	for _, id := range ids {
		if err := r.subscribers[id].Send(event); err != nil {
			failed = append(failed, id)
		}
	}
	return failed, nil
}

// remove deletes the given entries and reports how many were actually
// present. Unknown or already-removed ids are no-ops, so two broadcasts
// racing to reap the same subscriber account for it only once.
func (r *registry[T]) remove(ids []uint64) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for _, id := range ids {
		if tx, ok := r.subscribers[id]; ok {
			_ = tx.Close()
			delete(r.subscribers, id)
			removed++
		}
	}
	return removed
}

// close disconnects every outbound half so consumers observe
// end-of-stream, and rejects further registration and broadcasting.
func (r *registry[T]) close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return ErrBusClosed
	}
	r.closed = true

	for _, tx := range r.subscribers {
		_ = tx.Close()
	}
	clear(r.subscribers)
	return nil
}

func (r *registry[T]) count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subscribers)
}
