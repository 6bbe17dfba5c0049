// Package redis mirrors a local in-process event bus across a Redis
// pub/sub channel, so that every process connected to the same channel
// observes the same broadcasts.
//
// The relay embeds a bus.Bus and keeps its full subscription surface:
// AddSubscriber, Subscribe, and SubscribeAsync behave exactly as on the
// local bus. Broadcast additionally publishes the event to the Redis
// channel as a JSON envelope; a background loop feeds envelopes received
// from other relay instances into the local bus. Envelopes published by
// the relay itself are recognized by their source id and skipped, so
// local subscribers see each event exactly once.
//
// # Usage
//
//	cfg := redis.Config{ConnectionURL: "redis://localhost:6379/0"}
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	relay, err := redis.NewRelay[OrderEvent](ctx, client, "orders")
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
//	_ = relay.Broadcast(ctx, OrderEvent{ID: "123"})
//
// # Configuration
//
// Connection settings load from environment variables via the Config
// struct:
//
//	type Config struct {
//	    ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//	    RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//	    RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//	    ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//	}
//
// # Delivery semantics
//
// Redis pub/sub is fire-and-forget: events published while a relay is
// disconnected are not replayed, and cross-process ordering follows
// Redis channel semantics. Within one process the local bus ordering
// guarantees still hold. The event type must round-trip through
// encoding/json.
//
// # Error Handling
//
// The package defines domain-specific errors checked via errors.Is():
//
//   - ErrFailedToParseRedisConnString: malformed connection URL
//   - ErrRedisNotReady: Redis did not answer ping within the timeout
//   - ErrEmptyConnectionURL: no connection URL provided
//   - ErrEmptyChannel: no pub/sub channel name provided
//   - ErrRelayClosed: operation on a closed relay
//   - ErrHealthcheckFailed: health check ping failed
//
// Malformed envelopes received from the channel are logged and skipped;
// they never stop the relay loop.
package redis
