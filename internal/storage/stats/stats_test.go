package storage_stats

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	cache_mocks "github.com/humanbelnik/swipematch/core/internal/storage/stats/mocks/stats/cache"
	matches_mocks "github.com/humanbelnik/swipematch/core/internal/storage/stats/mocks/stats/matches"
	votes_mocks "github.com/humanbelnik/swipematch/core/internal/storage/stats/mocks/stats/votes"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type StorageStatsUnitSuite struct {
	suite.Suite
}

type resources struct {
	cache   *cache_mocks.StatsCache
	votes   *votes_mocks.VoteCounter
	matches *matches_mocks.MatchCounter
	stats   *Stats
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	cache := cache_mocks.NewStatsCache(t)
	votes := votes_mocks.NewVoteCounter(t)
	matches := matches_mocks.NewMatchCounter(t)

	return &resources{
		cache:   cache,
		votes:   votes,
		matches: matches,
		stats:   New(cache, votes, matches),
		ctx:     context.Background(),
	}
}

func validRoom() model.Room {
	return model.Room{
		ID:         uuid.NewSHA1(uuid.NameSpaceOID, []byte("room")),
		PublicCode: "777777",
		Capacity:   4,
		Status:     model.StatusActive,
	}
}

func (suite *StorageStatsUnitSuite) TestRoomStats(t provider.T) {
	t.Parallel()

	const window = 7 * 24 * time.Hour

	room := validRoom()
	roomID := model.RoomID(room.PublicCode)
	counted := model.RoomStats{TotalVotes: 40, RecentMatches: 1}

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectedStats model.RoomStats
		wantError     bool
	}{
		{
			name: "Should serve cached counters without touching the ledger",
			setupMocks: func(r *resources) {
				r.cache.On("Get", r.ctx, roomID).
					Return(counted, true, nil)
			},
			expectedStats: counted,
		},
		{
			name: "Should count from the ledger and cache the result",
			setupMocks: func(r *resources) {
				r.cache.On("Get", r.ctx, roomID).
					Return(model.RoomStats{}, false, nil)
				r.votes.On("TotalVotes", r.ctx, room.ID).
					Return(counted.TotalVotes, nil)
				r.matches.On("RecentCount", r.ctx, room.ID, mock.Anything).
					Return(counted.RecentMatches, nil)
				r.cache.On("Set", r.ctx, roomID, counted).
					Return(nil)
			},
			expectedStats: counted,
		},
		{
			name: "Should degrade to the ledger when the cache read fails",
			setupMocks: func(r *resources) {
				r.cache.On("Get", r.ctx, roomID).
					Return(model.RoomStats{}, false, errors.New("cache down"))
				r.votes.On("TotalVotes", r.ctx, room.ID).
					Return(counted.TotalVotes, nil)
				r.matches.On("RecentCount", r.ctx, room.ID, mock.Anything).
					Return(counted.RecentMatches, nil)
				r.cache.On("Set", r.ctx, roomID, counted).
					Return(nil)
			},
			expectedStats: counted,
		},
		{
			name: "Should tolerate a failed cache write",
			setupMocks: func(r *resources) {
				r.cache.On("Get", r.ctx, roomID).
					Return(model.RoomStats{}, false, nil)
				r.votes.On("TotalVotes", r.ctx, room.ID).
					Return(counted.TotalVotes, nil)
				r.matches.On("RecentCount", r.ctx, room.ID, mock.Anything).
					Return(counted.RecentMatches, nil)
				r.cache.On("Set", r.ctx, roomID, counted).
					Return(errors.New("cache down"))
			},
			expectedStats: counted,
		},
		{
			name: "Should fail when the vote counter fails",
			setupMocks: func(r *resources) {
				r.cache.On("Get", r.ctx, roomID).
					Return(model.RoomStats{}, false, nil)
				r.votes.On("TotalVotes", r.ctx, room.ID).
					Return(0, errors.New("db down"))
			},
			wantError: true,
		},
		{
			name: "Should fail when the match counter fails",
			setupMocks: func(r *resources) {
				r.cache.On("Get", r.ctx, roomID).
					Return(model.RoomStats{}, false, nil)
				r.votes.On("TotalVotes", r.ctx, room.ID).
					Return(counted.TotalVotes, nil)
				r.matches.On("RecentCount", r.ctx, room.ID, mock.Anything).
					Return(0, errors.New("db down"))
			},
			wantError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			stats, err := r.stats.RoomStats(r.ctx, room, window)

			if tc.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedStats, stats)
			}
		})
	}
}

func (suite *StorageStatsUnitSuite) TestRoomStatsCountersStayOffOnCacheHit(t provider.T) {
	t.Parallel()

	r := initResources(t)
	room := validRoom()
	cached := model.RoomStats{TotalVotes: 5, RecentMatches: 0}

	r.cache.On("Get", r.ctx, model.RoomID(room.PublicCode)).
		Return(cached, true, nil)

	stats, err := r.stats.RoomStats(r.ctx, room, time.Hour)

	assert.NoError(t, err)
	assert.Equal(t, cached, stats)
	r.votes.AssertNotCalled(t, "TotalVotes", mock.Anything, mock.Anything)
	r.matches.AssertNotCalled(t, "RecentCount", mock.Anything, mock.Anything, mock.Anything)
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(StorageStatsUnitSuite))
}
