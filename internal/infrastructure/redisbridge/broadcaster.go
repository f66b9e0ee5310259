// Package redisbridge relays hub notifications across instances through a
// Redis pub/sub channel. Without it the feed is per-instance only.
package redisbridge

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/makhzan/school-warehouse-api/internal/domain/entity"
	"github.com/makhzan/school-warehouse-api/internal/notify"
	"github.com/makhzan/school-warehouse-api/pkg/config"
	"github.com/makhzan/school-warehouse-api/pkg/logger"
)

// envelope wraps a notification with the publishing instance id so each
// bridge can drop its own echoes.
type envelope struct {
	Origin       string              `json:"origin"`
	Notification entity.Notification `json:"notification"`
}

// Broadcaster bridges the local hub and a Redis channel in both directions.
type Broadcaster struct {
	client   *redis.Client
	hub      *notify.Hub
	channel  string
	instance string
	log      *logger.Logger
	cancel   context.CancelFunc

	// injected holds notification ids currently being republished into the
	// local hub, so relay does not send them back out.
	injected sync.Map
}

// New connects to Redis, subscribes the hub to the channel and starts the
// receive loop. Call Close on shutdown.
func New(ctx context.Context, cfg config.RedisConfig, channel string, hub *notify.Hub, log *logger.Logger) (*Broadcaster, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	loopCtx, cancel := context.WithCancel(context.Background())
	b := &Broadcaster{
		client:   client,
		hub:      hub,
		channel:  channel,
		instance: uuid.New().String(),
		log:      log,
		cancel:   cancel,
	}

	hub.Subscribe(b.relay)
	go b.receive(loopCtx)
	return b, nil
}

// relay forwards a locally published notification to the Redis channel.
func (b *Broadcaster) relay(n entity.Notification) {
	if _, ok := b.injected.Load(n.ID); ok {
		return
	}
	payload, err := json.Marshal(envelope{Origin: b.instance, Notification: n})
	if err != nil {
		return
	}
	if err := b.client.Publish(context.Background(), b.channel, payload).Err(); err != nil && b.log != nil {
		b.log.Warn().Err(err).Str("channel", b.channel).Msg("publish notification to redis failed")
	}
}

// receive republishes channel messages from other instances into the local
// hub. Messages carrying our own origin are dropped.
func (b *Broadcaster) receive(ctx context.Context) {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var env envelope
			if err := json.Unmarshal([]byte(msg.Payload), &env); err != nil {
				if b.log != nil {
					b.log.Warn().Err(err).Msg("malformed notification on redis channel")
				}
				continue
			}
			if env.Origin == b.instance {
				continue
			}
			b.injected.Store(env.Notification.ID, struct{}{})
			b.hub.Publish(env.Notification)
			b.injected.Delete(env.Notification.ID)
		}
	}
}

// Close stops the receive loop and closes the Redis connection.
func (b *Broadcaster) Close() error {
	b.cancel()
	return b.client.Close()
}
