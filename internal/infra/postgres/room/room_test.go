package infra_postgres_room

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	usecase_queue "github.com/humanbelnik/swipematch/core/internal/usecase/queue"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type RoomInfraUnitSuite struct {
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

func validRoomID() model.RoomID {
	return model.RoomID("123456")
}

func roomColumns() []string {
	return []string{"id", "code", "capacity", "status", "quorum_policy", "content_ids", "matched_media_id"}
}

func (suite *RoomInfraUnitSuite) TestByCode(t provider.T) {
	t.Parallel()

	roomUUID := uuid.NewSHA1(uuid.NameSpaceOID, []byte("room"))
	content := []uuid.UUID{uuid.New(), uuid.New()}

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		check         func(t provider.T, room model.Room)
		expectError   bool
		expectedError error
	}{
		{
			name: "Should load the room by its public code",
			setupMocks: func(r *resources) {
				rows := sqlmock.NewRows(roomColumns()).AddRow(
					roomUUID.String(), string(validRoomID()), 4, model.StatusActive,
					model.QuorumStatic, pq.StringArray{content[0].String(), content[1].String()}, nil,
				)
				r.mock.ExpectQuery("SELECT").
					WithArgs(string(validRoomID())).
					WillReturnRows(rows)
			},
			check: func(t provider.T, room model.Room) {
				assert.Equal(t, roomUUID, room.ID)
				assert.Equal(t, string(validRoomID()), room.PublicCode)
				assert.Equal(t, 4, room.Capacity)
				assert.Equal(t, model.QuorumStatic, room.Quorum)
				assert.Equal(t, content, room.ContentIDs)
				assert.Nil(t, room.MatchedMediaID)
			},
		},
		{
			name: "Should map a missing room",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("SELECT").
					WithArgs(string(validRoomID())).
					WillReturnError(sql.ErrNoRows)
			},
			expectError:   true,
			expectedError: usecase_queue.ErrRoomNotFound,
		},
		{
			name: "Should reject a malformed content id",
			setupMocks: func(r *resources) {
				rows := sqlmock.NewRows(roomColumns()).AddRow(
					roomUUID.String(), string(validRoomID()), 4, model.StatusActive,
					model.QuorumStatic, pq.StringArray{"not-a-uuid"}, nil,
				)
				r.mock.ExpectQuery("SELECT").
					WithArgs(string(validRoomID())).
					WillReturnRows(rows)
			},
			expectError: true,
		},
		{
			name: "Should return error when query fails",
			setupMocks: func(r *resources) {
				r.mock.ExpectQuery("SELECT").
					WithArgs(string(validRoomID())).
					WillReturnError(errors.New("query error"))
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			room, err := r.driver.ByCode(r.ctx, validRoomID())

			if tc.expectError {
				assert.Error(t, err)
				if tc.expectedError != nil {
					assert.ErrorIs(t, err, tc.expectedError)
				}
			} else {
				assert.NoError(t, err)
				if tc.check != nil {
					tc.check(t, room)
				}
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func (suite *RoomInfraUnitSuite) TestAppendContent(t provider.T) {
	t.Parallel()

	mediaID := uuid.NewSHA1(uuid.NameSpaceOID, []byte("media"))

	testCases := []struct {
		name        string
		setupMocks  func(r *resources)
		expected    bool
		expectError bool
	}{
		{
			name: "Should append a new item",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("UPDATE rooms").
					WithArgs(mediaID, string(validRoomID()), model.StatusMatched).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expected: true,
		},
		{
			name: "Should skip an item already listed",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("UPDATE rooms").
					WithArgs(mediaID, string(validRoomID()), model.StatusMatched).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			expected: false,
		},
		{
			name: "Should return error when update fails",
			setupMocks: func(r *resources) {
				r.mock.ExpectExec("UPDATE rooms").
					WithArgs(mediaID, string(validRoomID()), model.StatusMatched).
					WillReturnError(errors.New("update error"))
			},
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			appended, err := r.driver.AppendContent(r.ctx, validRoomID(), mediaID)

			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expected, appended)
			}
			assert.NoError(t, r.mock.ExpectationsWereMet())
		})
	}
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(RoomInfraUnitSuite))
}
