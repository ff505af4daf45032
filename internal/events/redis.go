package events

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"kriya/internal/cart"
	applog "kriya/internal/log"
)

type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
	timeout time.Duration
}

func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel, timeout: 2 * time.Second}
}

// Publish is a cart listener.
func (p *RedisPublisher) Publish(e cart.Event) {
	session, payload, err := encode(e, time.Now())
	if err != nil {
		applog.Error(nil, "events.redis_encode_failed", err, map[string]any{"session": session})
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), p.timeout)
	defer cancel()
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		applog.Error(nil, "events.redis_publish_failed", err, map[string]any{"session": session, "channel": p.channel})
	}
}
