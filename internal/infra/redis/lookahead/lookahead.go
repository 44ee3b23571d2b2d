package infra_redis_lookahead

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis"
	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
)

// Driver is a TTL cache of media details keyed by id. The vote path
// warms it for the next few queue items so swipe screens render
// without a database round trip.
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

func (d *Driver) Store(ctx context.Context, media []model.MediaMeta) error {
	for _, mm := range media {
		payload, err := json.Marshal(mm)
		if err != nil {
			return err
		}

		if err := d.client.Set(d.getFullKey(mm.ID), string(payload), d.ttl).Err(); err != nil {
			return err
		}
	}
	return nil
}

// Fetch returns cached entries plus the ids it had nothing for.
// Entries that fail to decode count as missing.
func (d *Driver) Fetch(ctx context.Context, ids []uuid.UUID) ([]model.MediaMeta, []uuid.UUID, error) {
	found := make([]model.MediaMeta, 0, len(ids))
	missing := make([]uuid.UUID, 0, len(ids))

	for _, id := range ids {
		val, err := d.client.Get(d.getFullKey(id)).Result()
		if err == redis.Nil {
			missing = append(missing, id)
			continue
		}
		if err != nil {
			return nil, nil, err
		}

		var mm model.MediaMeta
		if err := json.Unmarshal([]byte(val), &mm); err != nil {
			missing = append(missing, id)
			continue
		}
		found = append(found, mm)
	}

	return found, missing, nil
}

func (d *Driver) getFullKey(id uuid.UUID) string {
	if d.key != "" {
		return d.key + ":" + id.String()
	}
	return id.String()
}
