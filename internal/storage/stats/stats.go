package storage_stats

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
)

type StatsCache interface {
	Get(ctx context.Context, roomID model.RoomID) (model.RoomStats, bool, error)
	Set(ctx context.Context, roomID model.RoomID, stats model.RoomStats) error
}

type VoteCounter interface {
	TotalVotes(ctx context.Context, roomID uuid.UUID) (int, error)
}

type MatchCounter interface {
	RecentCount(ctx context.Context, roomID uuid.UUID, since time.Time) (int, error)
}

// Stats serves room activity counters from a short-TTL cache so the
// injector's stall checks stay off the ledger tables.
type Stats struct {
	Cache   StatsCache
	Votes   VoteCounter
	Matches MatchCounter

	logger *slog.Logger
}

type StatsOption func(*Stats)

func WithLogger(logger *slog.Logger) StatsOption {
	return func(s *Stats) {
		s.logger = logger
	}
}

func New(
	Cache StatsCache,
	Votes VoteCounter,
	Matches MatchCounter,
	opts ...StatsOption,
) *Stats {
	s := &Stats{
		Cache:   Cache,
		Votes:   Votes,
		Matches: Matches,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Stats) RoomStats(ctx context.Context, room model.Room, window time.Duration) (model.RoomStats, error) {
	roomID := model.RoomID(room.PublicCode)

	cached, ok, err := s.Cache.Get(ctx, roomID)
	if err != nil {
		s.logger.Warn("stats cache read failed, falling back to db",
			slog.String("room_id", string(roomID)),
			slog.String("error", err.Error()))
	}
	if ok {
		return cached, nil
	}

	total, err := s.Votes.TotalVotes(ctx, room.ID)
	if err != nil {
		return model.RoomStats{}, err
	}

	recent, err := s.Matches.RecentCount(ctx, room.ID, time.Now().Add(-window))
	if err != nil {
		return model.RoomStats{}, err
	}

	stats := model.RoomStats{
		TotalVotes:    total,
		RecentMatches: recent,
	}

	if err := s.Cache.Set(ctx, roomID, stats); err != nil {
		s.logger.Warn("stats cache write failed",
			slog.String("room_id", string(roomID)),
			slog.String("error", err.Error()))
	}

	return stats, nil
}
