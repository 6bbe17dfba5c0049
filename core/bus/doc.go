// Package bus provides a typed in-process broadcast bus: every event
// given to Broadcast is delivered, as an independent copy, to each
// currently registered subscriber through that subscriber's own
// unbounded queue.
//
// The bus favors never blocking a broadcaster over bounding memory: a
// slow subscriber accumulates a backlog in its private queue instead of
// stalling producers or other subscribers.
//
// # Usage
//
// Direct consumption through an endpoint:
//
//	b := bus.New[string]()
//	defer b.Close()
//
//	rx, err := b.AddSubscriber()
//	if err != nil {
//	    return err
//	}
//	defer rx.Close()
//
//	_ = b.Broadcast("hello")
//
//	msg, err := rx.Receive(ctx)
//
// Asynchronous consumption through a callback:
//
//	sub, err := b.SubscribeAsync(func(msg string) {
//	    fmt.Println("received:", msg)
//	})
//	if err != nil {
//	    return err
//	}
//	defer sub.Unsubscribe()
//
// Blocking consumption until the bus closes:
//
//	err := b.Subscribe(ctx, func(msg string) {
//	    fmt.Println("received:", msg)
//	})
//
// # Ordering
//
// Within one Broadcast call, subscribers receive the event in
// registration order. Sequential broadcasts from one goroutine are
// observed by each subscriber in that order. Broadcasts from different
// goroutines carry no relative ordering; the bus performs no
// producer-side serialization.
//
// # Subscriber lifecycle
//
// Subscriber ids are monotonically increasing and never reused. A
// subscriber leaves by closing its receiver (or unsubscribing); the bus
// discovers the departure lazily, on the first broadcast that fails to
// reach that queue, and removes the entry then. The common broadcast
// path therefore only takes shared access to the registry; exclusive
// access is needed only when membership actually changes.
//
// # Event copies
//
// Events are copied by value assignment when enqueued. A pointer-typed
// or pointer-bearing event shares its pointee across all subscribers;
// use value types or treat payloads as immutable.
//
// # Reentrancy
//
// Callbacks run on the subscriber's own goroutine, never under the
// registry lock, so a callback may call Broadcast on the same bus.
package bus
