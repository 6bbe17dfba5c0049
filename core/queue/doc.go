// Package queue provides an unbounded FIFO queue split into two
// exclusively-owned endpoint halves, with disconnect detection on both
// sides.
//
// A queue is created as a pair: the Sender half enqueues values without
// ever blocking, the Receiver half dequeues them in FIFO order either
// non-blocking (TryReceive) or blocking with context support (Receive).
// Closing either half is observable from the other, which is what allows
// a producer to lazily discover that a consumer has gone away, and a
// consumer to observe end-of-stream once the producer is gone and the
// buffer has been drained.
//
// # Usage
//
//	tx, rx := queue.New[string]()
//
//	// Producer side: never blocks.
//	if err := tx.Send("hello"); err != nil {
//	    // queue.ErrDisconnected: the receiver is gone
//	}
//
//	// Consumer side: blocking receive with cancellation.
//	v, err := rx.Receive(ctx)
//	switch {
//	case errors.Is(err, queue.ErrDisconnected):
//	    // producer closed and buffer drained: end of stream
//	case err != nil:
//	    // context cancelled
//	}
//
// # Semantics
//
// Values buffered before Sender.Close remain deliverable; ErrDisconnected
// is only reported once the buffer is drained. TryReceive distinguishes
// an empty-but-connected queue (ErrEmpty) from a drained, disconnected
// one (ErrDisconnected). Closing a half twice is a no-op.
//
// # Concurrency
//
// The Sender is safe for concurrent use. The Receiver assumes a single
// consumer: two goroutines calling Receive on the same Receiver will not
// corrupt state, but each value is delivered to exactly one of them.
// There is no capacity limit; memory growth is bounded only by how far
// the consumer falls behind the producer.
package queue
