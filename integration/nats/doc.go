// Package nats mirrors a local in-process event bus across a NATS
// subject, so that every process connected to the same subject observes
// the same broadcasts.
//
// The relay embeds a bus.Bus and keeps its full subscription surface:
// AddSubscriber, Subscribe, and SubscribeAsync behave exactly as on the
// local bus. Broadcast additionally publishes the event to the subject
// as a JSON envelope; a NATS subscription feeds envelopes received from
// other relay instances into the local bus. Envelopes published by the
// relay itself are recognized by their source id and skipped, so local
// subscribers see each event exactly once.
//
// # Usage
//
//	conn, err := nats.Connect(nats.Config{URL: "nats://localhost:4222"})
//	if err != nil {
//	    return err
//	}
//	defer conn.Close()
//
//	relay, err := nats.NewRelay[OrderEvent](conn, "orders")
//	if err != nil {
//	    return err
//	}
//	defer relay.Close()
//
//	sub, err := relay.SubscribeAsync(func(e OrderEvent) {
//	    // invoked for local and remote broadcasts alike
//	})
//	if err != nil {
//	    return err
//	}
//	defer sub.Unsubscribe()
//
//	_ = relay.Broadcast(OrderEvent{ID: "123"})
//
// # Delivery semantics
//
// Core NATS is at-most-once: events published while a relay is
// disconnected are not replayed. Within one process the local bus
// ordering guarantees still hold. The event type must round-trip through
// encoding/json.
//
// Malformed envelopes received from the subject are logged and skipped;
// they never stop the relay.
package nats
