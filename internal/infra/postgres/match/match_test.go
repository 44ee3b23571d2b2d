package infra_postgres_match

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	usecase_match "github.com/humanbelnik/swipematch/core/internal/usecase/match"
	"github.com/jmoiron/sqlx"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type MatchInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db     *sqlx.DB
	mock   sqlmock.Sqlmock
	driver *Driver
	ctx    context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	return &resources{
		db:     sqlxDB,
		mock:   mock,
		driver: New(sqlxDB),
		ctx:    context.Background(),
	}
}

func validMatch() model.Match {
	return model.Match{
		RoomID:    uuid.NewSHA1(uuid.NameSpaceOID, []byte("room")),
		MediaID:   uuid.NewSHA1(uuid.NameSpaceOID, []byte("media")),
		Votes:     4,
		MatchedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (suite *MatchInfraUnitSuite) TestCreate(t provider.T) {
	t.Parallel()

	match := validMatch()

	testCases := []struct {
		name            string
		setupMocks      func(r *resources)
		expectedCreated bool
		wantError       bool
	}{
		{
			name: "Should win the insert race",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("INSERT INTO matches").
					WithArgs(match.RoomID, match.MediaID, match.Votes, match.MatchedAt).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedCreated: true,
		},
		{
			name: "Should report a lost race as not created",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("INSERT INTO matches").
					WithArgs(match.RoomID, match.MediaID, match.Votes, match.MatchedAt).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expectedCreated: false,
		},
		{
			name: "Should pass through a storage failure",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("INSERT INTO matches").
					WithArgs(match.RoomID, match.MediaID, match.Votes, match.MatchedAt).
					WillReturnError(errors.New("connection reset"))
			},
			wantError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			created, err := r.driver.Create(r.ctx, match)

			if tc.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedCreated, created)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (suite *MatchInfraUnitSuite) TestByRoom(t provider.T) {
	t.Parallel()

	match := validMatch()

	t.Run("Should load the room's match", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		rows := sqlmock.NewRows([]string{"room_id", "media_id", "votes", "matched_at"}).
			AddRow(match.RoomID.String(), match.MediaID.String(), match.Votes, match.MatchedAt)
		r.mock.ExpectQuery("SELECT").
			WithArgs(match.RoomID).
			WillReturnRows(rows)

		got, err := r.driver.ByRoom(r.ctx, match.RoomID)

		assert.NoError(t, err)
		assert.Equal(t, match, got)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should map an absent match", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		r.mock.ExpectQuery("SELECT").
			WithArgs(match.RoomID).
			WillReturnError(sql.ErrNoRows)

		_, err := r.driver.ByRoom(r.ctx, match.RoomID)

		assert.ErrorIs(t, err, usecase_match.ErrNoMatch)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (suite *MatchInfraUnitSuite) TestMarkRoomMatched(t provider.T) {
	t.Parallel()

	match := validMatch()

	testCases := []struct {
		name       string
		setupMocks func(r *resources)
		wantError  bool
	}{
		{
			name: "Should flip the room into its matched status",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("UPDATE rooms").
					WithArgs(model.StatusMatched, match.MediaID, match.RoomID).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "Should stay silent when the room already flipped",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("UPDATE rooms").
					WithArgs(model.StatusMatched, match.MediaID, match.RoomID).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
		},
		{
			name: "Should pass through a storage failure",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("UPDATE rooms").
					WithArgs(model.StatusMatched, match.MediaID, match.RoomID).
					WillReturnError(errors.New("connection reset"))
			},
			wantError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			err := r.driver.MarkRoomMatched(r.ctx, match.RoomID, match.MediaID)

			if tc.wantError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (suite *MatchInfraUnitSuite) TestRecentCount(t provider.T) {
	t.Parallel()

	r := initResources(t)
	roomID := uuid.NewSHA1(uuid.NameSpaceOID, []byte("room"))
	since := time.Date(2025, 5, 25, 0, 0, 0, 0, time.UTC)

	r.mock.ExpectQuery("SELECT COUNT").
		WithArgs(roomID, since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	count, err := r.driver.RecentCount(r.ctx, roomID, since)

	assert.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.NoError(t, r.mock.ExpectationsWereMet())
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(MatchInfraUnitSuite))
}
