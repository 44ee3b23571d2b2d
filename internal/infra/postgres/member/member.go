package infra_postgres_member

import (
	"context"
	"database/sql"
	"strings"
	"time"

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

type memberDTO struct {
	RoomID   uuid.UUID      `db:"room_id"`
	UserID   uuid.UUID      `db:"user_id"`
	Status   string         `db:"status"`
	Queue    pq.StringArray `db:"queue"`
	Cursor   int            `db:"cursor"`
	JoinedAt time.Time      `db:"joined_at"`
}

func (dto memberDTO) toModel() (model.Member, error) {
	queue, err := parseUUIDs(dto.Queue)
	if err != nil {
		return model.Member{}, err
	}

	return model.Member{
		RoomID:   dto.RoomID,
		UserID:   dto.UserID,
		Status:   dto.Status,
		Queue:    queue,
		Cursor:   dto.Cursor,
		JoinedAt: dto.JoinedAt,
	}, nil
}

func (d *Driver) Create(ctx context.Context, member model.Member) error {
	dto := memberDTO{
		RoomID:   member.RoomID,
		UserID:   member.UserID,
		Status:   member.Status,
		Queue:    uuidStrings(member.Queue),
		Cursor:   member.Cursor,
		JoinedAt: member.JoinedAt,
	}

	query := `
        INSERT INTO members (room_id, user_id, status, queue, cursor, joined_at)
        VALUES (:room_id, :user_id, :status, :queue, :cursor, :joined_at)
    `

	_, err := d.db.NamedExecContext(ctx, query, dto)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") ||
			strings.Contains(err.Error(), "duplicate key") {
			return usecase_queue.ErrAlreadyEnrolled
		}
		return err
	}
	return nil
}

func (d *Driver) ByID(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) (model.Member, error) {
	var dto memberDTO

	query := `
        SELECT room_id, user_id, status, queue, cursor, joined_at
        FROM members
        WHERE room_id = $1 AND user_id = $2
    `

	err := d.db.GetContext(ctx, &dto, query, roomID, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Member{}, usecase_queue.ErrNotAMember
		}
		return model.Member{}, err
	}

	return dto.toModel()
}

// ReplaceQueue swaps the whole queue array, guarded by the cursor the
// caller based its splice on. A moved cursor fails the swap.
func (d *Driver) ReplaceQueue(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, queue []uuid.UUID, expectedCursor int) error {
	query := `
        UPDATE members
        SET queue = $1
        WHERE room_id = $2 AND user_id = $3 AND cursor = $4
    `

	result, err := d.db.ExecContext(ctx, query, uuidStrings(queue), roomID, userID, expectedCursor)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return usecase_queue.ErrQueueConflict
	}

	return nil
}

func (d *Driver) ActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]model.Member, error) {
	var dtos []memberDTO

	query := `
        SELECT room_id, user_id, status, queue, cursor, joined_at
        FROM members
        WHERE room_id = $1 AND status = $2
        ORDER BY joined_at
    `

	err := d.db.SelectContext(ctx, &dtos, query, roomID, model.MemberActive)
	if err != nil {
		return nil, err
	}

	members := make([]model.Member, 0, len(dtos))
	for _, dto := range dtos {
		member, err := dto.toModel()
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return members, nil
}

func (d *Driver) ActiveCount(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int

	query := `
        SELECT COUNT(*)
        FROM members
        WHERE room_id = $1 AND status = $2
    `

	err := d.db.GetContext(ctx, &count, query, roomID, model.MemberActive)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func uuidStrings(ids []uuid.UUID) pq.StringArray {
	out := make(pq.StringArray, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
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
