package shuffle

import (
	"encoding/binary"
	"math/rand"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
)

// Seed derives a stable per-member shuffle seed. The same (room, user)
// pair always yields the same seed, so queue generation is reproducible
// across retries and restarts.
func Seed(roomID model.RoomID, userID uuid.UUID) int64 {
	u := uuid.NewSHA1(uuid.NameSpaceURL, []byte(string(roomID)+":"+userID.String()))
	return int64(binary.BigEndian.Uint64(u[:8]))
}

// Permute returns a shuffled copy of ids with duplicates dropped.
// The order is fully decided by seed.
func Permute(ids []uuid.UUID, seed int64) []uuid.UUID {
	out := dedupe(ids)
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func dedupe(ids []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
