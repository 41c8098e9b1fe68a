package hub

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"collab-hub/internal/app"
)

const announceChannel = "rooms:created"

// Bus carries room-created announcements between the room metadata
// API and every hub instance over redis pub/sub.
type Bus struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewBus connects to redis and verifies connectivity.
func NewBus(ctx context.Context, cfg app.Config, log *slog.Logger) (*Bus, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &Bus{rdb: rdb, log: log}, nil
}

// Publish sends an announcement to the shared channel.
func (b *Bus) Publish(ctx context.Context, a RoomAnnouncement) error {
	raw, _ := json.Marshal(a)
	return b.rdb.Publish(ctx, announceChannel, raw).Err()
}

// Subscribe invokes fn for each announcement until ctx is cancelled.
func (b *Bus) Subscribe(ctx context.Context, fn func(RoomAnnouncement)) {
	pubsub := b.rdb.Subscribe(ctx, announceChannel)
	ch := pubsub.Channel()

	for {
		select {
		case <-ctx.Done():
			_ = pubsub.Close()
			return
		case msg := <-ch:
			var a RoomAnnouncement
			if err := json.Unmarshal([]byte(msg.Payload), &a); err != nil {
				b.log.Debug("bus.malformed", "err", err)
				continue
			}
			if a.ID != "" {
				fn(a)
			}
		}
	}
}

// Close shuts down the redis connection.
func (b *Bus) Close() { _ = b.rdb.Close() }
