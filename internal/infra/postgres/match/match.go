package infra_postgres_match

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	usecase_match "github.com/humanbelnik/swipematch/core/internal/usecase/match"
	"github.com/jmoiron/sqlx"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type matchDTO struct {
	RoomID    uuid.UUID `db:"room_id"`
	MediaID   uuid.UUID `db:"media_id"`
	Votes     int       `db:"votes"`
	MatchedAt time.Time `db:"matched_at"`
}

// Create inserts the room's match row. The primary key on room_id
// makes the insert a first-crossing race arbiter: exactly one caller
// gets true.
func (d *Driver) Create(ctx context.Context, match model.Match) (bool, error) {
	query := `
		INSERT INTO matches (room_id, media_id, votes, matched_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (room_id)
		DO NOTHING
	`

	result, err := d.db.ExecContext(ctx, query,
		match.RoomID,
		match.MediaID,
		match.Votes,
		match.MatchedAt,
	)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func (d *Driver) ByRoom(ctx context.Context, roomID uuid.UUID) (model.Match, error) {
	var dto matchDTO

	query := `
		SELECT room_id, media_id, votes, matched_at
		FROM matches
		WHERE room_id = $1
	`

	err := d.db.GetContext(ctx, &dto, query, roomID)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Match{}, usecase_match.ErrNoMatch
		}
		return model.Match{}, err
	}

	return model.Match{
		RoomID:    dto.RoomID,
		MediaID:   dto.MediaID,
		Votes:     dto.Votes,
		MatchedAt: dto.MatchedAt,
	}, nil
}

// MarkRoomMatched flips the room into its terminal status. Rooms that
// already flipped are left alone, so the call is safe to repeat.
func (d *Driver) MarkRoomMatched(ctx context.Context, roomID uuid.UUID, mediaID uuid.UUID) error {
	query := `
		UPDATE rooms
		SET status = $1, matched_media_id = $2
		WHERE id = $3 AND status <> $1
	`

	_, err := d.db.ExecContext(ctx, query, model.StatusMatched, mediaID, roomID)
	if err != nil {
		return err
	}

	return nil
}

func (d *Driver) RecentCount(ctx context.Context, roomID uuid.UUID, since time.Time) (int, error) {
	var count int

	query := `
		SELECT COUNT(*)
		FROM matches
		WHERE room_id = $1 AND matched_at > $2
	`

	err := d.db.GetContext(ctx, &count, query, roomID, since)
	if err != nil {
		return 0, err
	}

	return count, nil
}
