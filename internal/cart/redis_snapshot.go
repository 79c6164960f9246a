package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Ziad-Belal/strike-api/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// redisSnapshotter implements Snapshotter on Redis, one JSON value per
// device. Snapshots do not expire: the cart must survive reloads until the
// user clears it or checks out.
type redisSnapshotter struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRedisSnapshotter creates a Redis-backed snapshot store.
func NewRedisSnapshotter(client *redis.Client, logger zerolog.Logger) Snapshotter {
	return &redisSnapshotter{
		client: client,
		logger: logger.With().Str("component", "cart-snapshots-redis").Logger(),
	}
}

// Load returns the last persisted snapshot for a device.
func (r *redisSnapshotter) Load(ctx context.Context, deviceID string) ([]model.CartLineItem, error) {
	data, err := r.client.Get(ctx, snapshotKey(deviceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var items []model.CartLineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode cart snapshot: %w", err)
	}

	return items, nil
}

// Save persists the snapshot for a device, replacing any previous one.
func (r *redisSnapshotter) Save(ctx context.Context, deviceID string, items []model.CartLineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart snapshot: %w", err)
	}

	if err := r.client.Set(ctx, snapshotKey(deviceID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

// Delete removes the persisted snapshot for a device.
func (r *redisSnapshotter) Delete(ctx context.Context, deviceID string) error {
	if err := r.client.Del(ctx, snapshotKey(deviceID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func snapshotKey(deviceID string) string {
	return fmt.Sprintf("cart:%s", deviceID)
}
