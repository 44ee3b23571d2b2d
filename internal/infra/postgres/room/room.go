package infra_postgres_room

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	usecase_queue "github.com/humanbelnik/swipematch/core/internal/usecase/queue"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Driver struct {
	db *sqlx.DB
}

func New(
	db *sqlx.DB,
) *Driver {
	return &Driver{db: db}
}

type roomDTO struct {
	ID             uuid.UUID      `db:"id"`
	Code           string         `db:"code"`
	Capacity       int            `db:"capacity"`
	Status         string         `db:"status"`
	QuorumPolicy   string         `db:"quorum_policy"`
	ContentIDs     pq.StringArray `db:"content_ids"`
	MatchedMediaID *uuid.UUID     `db:"matched_media_id"`
}

func (d *Driver) ByCode(ctx context.Context, roomID model.RoomID) (model.Room, error) {
	var room roomDTO

	query := `
        SELECT id, code, capacity, status, quorum_policy, content_ids, matched_media_id
        FROM rooms
        WHERE code = $1
    `

	err := d.db.GetContext(ctx, &room, query, string(roomID))
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Room{}, usecase_queue.ErrRoomNotFound
		}
		return model.Room{}, err
	}

	contentIDs, err := parseUUIDs(room.ContentIDs)
	if err != nil {
		return model.Room{}, err
	}

	return model.Room{
		ID:             room.ID,
		PublicCode:     room.Code,
		Capacity:       room.Capacity,
		Status:         room.Status,
		Quorum:         room.QuorumPolicy,
		ContentIDs:     contentIDs,
		MatchedMediaID: room.MatchedMediaID,
	}, nil
}

// AppendContent adds the media id to the room's master list.
// The guard in the WHERE clause keeps the append idempotent and
// refuses rooms that already finished.
func (d *Driver) AppendContent(ctx context.Context, roomID model.RoomID, mediaID uuid.UUID) (bool, error) {
	query := `
        UPDATE rooms
        SET content_ids = array_append(content_ids, $1)
        WHERE code = $2 AND NOT ($1 = ANY(content_ids)) AND status <> $3
    `

	result, err := d.db.ExecContext(ctx, query, mediaID, string(roomID), model.StatusMatched)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected > 0, nil
}

func parseUUIDs(raw pq.StringArray) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
