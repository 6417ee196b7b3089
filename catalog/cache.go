package catalog

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"munchmarket/models"
)

// snapshotKey is the fixed key the serialized vendor list lives under.
const snapshotKey = "catalog:vendors"

// SnapshotCache persists the last-known-good vendor list so the catalog
// can degrade gracefully when the document store is unreachable.
type SnapshotCache interface {
	Save(ctx context.Context, vendors []models.Vendor) error
	// Load returns (nil, false, nil) when no snapshot exists.
	Load(ctx context.Context) ([]models.Vendor, bool, error)
}

// RedisSnapshotCache keeps the snapshot in Redis under snapshotKey.
type RedisSnapshotCache struct {
	client *redis.Client
}

func NewRedisSnapshotCache(client *redis.Client) *RedisSnapshotCache {
	return &RedisSnapshotCache{client: client}
}

func (c *RedisSnapshotCache) Save(ctx context.Context, vendors []models.Vendor) error {
	data, err := json.Marshal(vendors)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, snapshotKey, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", snapshotKey, err)
	}
	return nil
}

func (c *RedisSnapshotCache) Load(ctx context.Context) ([]models.Vendor, bool, error) {
	data, err := c.client.Get(ctx, snapshotKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get %s: %w", snapshotKey, err)
	}

	var vendors []models.Vendor
	if err := json.Unmarshal(data, &vendors); err != nil {
		return nil, false, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return vendors, true, nil
}
