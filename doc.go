// Package eventbus provides a typed in-process broadcast bus with
// optional backends that mirror it across process boundaries. The
// library implements modern Go patterns including generics for type
// safety, functional options for configuration, and small focused
// packages that compose.
//
// # Package Organization
//
//	github.com/dmitrymomot/eventbus/core/bus          - broadcast bus: registry, subscriptions, delivery workers
//	github.com/dmitrymomot/eventbus/core/queue        - unbounded FIFO endpoint pair with disconnect detection
//	github.com/dmitrymomot/eventbus/integration/redis - relay mirroring a bus across a Redis pub/sub channel
//	github.com/dmitrymomot/eventbus/integration/nats  - relay mirroring a bus across a NATS subject
//
// # Getting Started
//
// The in-process bus needs no configuration:
//
//	package main
//
//	import (
//		"fmt"
//
//		"github.com/dmitrymomot/eventbus/core/bus"
//	)
//
//	func main() {
//		b := bus.New[string]()
//		defer b.Close()
//
//		sub, err := b.SubscribeAsync(func(msg string) {
//			fmt.Println("received:", msg)
//		})
//		if err != nil {
//			panic(err)
//		}
//		defer sub.Unsubscribe()
//
//		_ = b.Broadcast("hello")
//	}
//
// Broadcasting never blocks: each subscriber consumes through its own
// unbounded queue, so a slow consumer accumulates backlog instead of
// stalling producers or other subscribers. See the core/bus package
// documentation for ordering and lifecycle guarantees.
//
// For cross-process fan-out, wrap the same bus surface in a relay from
// one of the integration packages.
package eventbus
