package infra_redis_stats

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis"
	"github.com/humanbelnik/swipematch/core/internal/model"
)

// Driver caches room activity counters so the stall check does not hit
// Postgres on every sweep.
type Driver struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func New(
	client *redis.Client,
	key string,
	ttl time.Duration,
) *Driver {
	return &Driver{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

func (d *Driver) Get(ctx context.Context, roomID model.RoomID) (model.RoomStats, bool, error) {
	val, err := d.client.Get(d.getFullKey(roomID)).Result()
	if err == redis.Nil {
		return model.RoomStats{}, false, nil
	}
	if err != nil {
		return model.RoomStats{}, false, err
	}

	var stats model.RoomStats
	if err := json.Unmarshal([]byte(val), &stats); err != nil {
		return model.RoomStats{}, false, nil
	}

	return stats, true, nil
}

func (d *Driver) Set(ctx context.Context, roomID model.RoomID, stats model.RoomStats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return d.client.Set(d.getFullKey(roomID), string(payload), d.ttl).Err()
}

func (d *Driver) getFullKey(roomID model.RoomID) string {
	if d.key != "" {
		return d.key + ":" + string(roomID)
	}
	return string(roomID)
}
