package revalidate

import (
	"context"
	"encoding/json"

	Logger "github.com/Luismorlan/logosarena/utils/log"
	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

// RedisChannel carries revalidation events between api server instances.
const RedisChannel = "arena:revalidate"

// RedisPublisher broadcasts events to every instance subscribed with Relay.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client, channel: RedisChannel}
}

func (p *RedisPublisher) Revalidate(ctx context.Context, paths ...string) {
	if len(paths) == 0 {
		return
	}
	payload, err := json.Marshal(Event{Paths: paths})
	if err != nil {
		Logger.Log.Error("cannot marshal revalidate event: ", err)
		return
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		Logger.Log.Error("cannot publish revalidate event: ", err)
	}
}

// Relay forwards every event published on the redis channel to sink until ctx
// is done.
func Relay(ctx context.Context, client *redis.Client, sink Signal) error {
	pubsub := client.Subscribe(ctx, RedisChannel)
	defer pubsub.Close()

	// Wait for the subscription to be confirmed before reporting readiness.
	if _, err := pubsub.Receive(ctx); err != nil {
		return errors.Wrap(err, "subscribe revalidate channel")
	}

	ch := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return errors.New("revalidate channel closed")
			}
			var event Event
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				Logger.Log.Warn("malformed revalidate event: ", msg.Payload)
				continue
			}
			sink.Revalidate(ctx, event.Paths...)
		}
	}
}
