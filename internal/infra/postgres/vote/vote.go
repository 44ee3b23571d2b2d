package infra_postgres_vote

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	usecase_vote "github.com/humanbelnik/swipematch/core/internal/usecase/vote"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type voteDTO struct {
	RoomID     uuid.UUID `db:"room_id"`
	UserID     uuid.UUID `db:"user_id"`
	MediaID    uuid.UUID `db:"media_id"`
	VoteType   string    `db:"vote_type"`
	SessionID  string    `db:"session_id"`
	DeviceInfo string    `db:"device_info"`
	CreatedAt  time.Time `db:"created_at"`
}

type mediaDTO struct {
	ID         uuid.UUID      `db:"id"`
	Title      string         `db:"title"`
	Genres     pq.StringArray `db:"genres"`
	Year       int            `db:"year"`
	Rating     float64        `db:"rating"`
	Popularity float64        `db:"popularity"`
	Overview   string         `db:"overview"`
	PosterLink string         `db:"poster_link"`
}

type resultDTO struct {
	MediaID    uuid.UUID      `db:"media_id"`
	Title      string         `db:"title"`
	Genres     pq.StringArray `db:"genres"`
	Year       int            `db:"year"`
	Rating     float64        `db:"rating"`
	Popularity float64        `db:"popularity"`
	Overview   string         `db:"overview"`
	PosterLink string         `db:"poster_link"`
	Likes      int            `db:"likes"`
}

// CommitVote persists the vote, bumps the room's consensus counter and
// advances the member's cursor in one transaction. A conflicting vote
// key aborts with ErrDuplicateVote, a moved cursor with
// ErrOutOfSequence; neither leaves partial state behind.
func (d *Driver) CommitVote(ctx context.Context, vote model.Vote, expectedCursor int) (int, error) {
	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	insertVoteQuery := `
		INSERT INTO votes (room_id, user_id, media_id, vote_type, session_id, device_info, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (room_id, user_id, media_id)
		DO NOTHING
	`

	result, err := tx.ExecContext(ctx, insertVoteQuery,
		vote.RoomID,
		vote.UserID,
		vote.MediaID,
		vote.Type,
		vote.SessionID,
		vote.DeviceInfo,
		vote.CreatedAt,
	)
	if err != nil {
		return 0, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rowsAffected == 0 {
		return 0, usecase_vote.ErrDuplicateVote
	}

	likeDelta := 0
	if vote.Type == model.VoteLike {
		likeDelta = 1
	}

	upsertConsensusQuery := `
		INSERT INTO consensus (room_id, media_id, likes, total)
		VALUES ($1, $2, $3, 1)
		ON CONFLICT (room_id, media_id)
		DO UPDATE SET likes = consensus.likes + EXCLUDED.likes, total = consensus.total + 1
		RETURNING likes
	`

	var likes int
	err = tx.GetContext(ctx, &likes, upsertConsensusQuery, vote.RoomID, vote.MediaID, likeDelta)
	if err != nil {
		return 0, err
	}

	advanceCursorQuery := `
		UPDATE members
		SET cursor = cursor + 1
		WHERE room_id = $1 AND user_id = $2 AND cursor = $3
	`

	result, err = tx.ExecContext(ctx, advanceCursorQuery, vote.RoomID, vote.UserID, expectedCursor)
	if err != nil {
		return 0, err
	}

	rowsAffected, err = result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if rowsAffected == 0 {
		return 0, usecase_vote.ErrOutOfSequence
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return likes, nil
}

func (d *Driver) ActiveVotesForMedia(ctx context.Context, roomID uuid.UUID, mediaID uuid.UUID) ([]model.Vote, error) {
	var votes []voteDTO

	query := `
		SELECT
			v.room_id,
			v.user_id,
			v.media_id,
			v.vote_type,
			COALESCE(v.session_id, '') as session_id,
			COALESCE(v.device_info, '') as device_info,
			v.created_at
		FROM votes v
		JOIN members m ON m.room_id = v.room_id AND m.user_id = v.user_id
		WHERE v.room_id = $1 AND v.media_id = $2 AND m.status = $3
	`

	err := d.db.SelectContext(ctx, &votes, query, roomID, mediaID, model.MemberActive)
	if err != nil {
		return nil, err
	}

	modelVotes := make([]model.Vote, 0, len(votes))
	for _, v := range votes {
		modelVotes = append(modelVotes, model.Vote{
			RoomID:     v.RoomID,
			UserID:     v.UserID,
			MediaID:    v.MediaID,
			Type:       v.VoteType,
			SessionID:  v.SessionID,
			DeviceInfo: v.DeviceInfo,
			CreatedAt:  v.CreatedAt,
		})
	}

	return modelVotes, nil
}

func (d *Driver) VotedMediaIDs(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	query := `
		SELECT media_id
		FROM votes
		WHERE room_id = $1 AND user_id = $2
	`

	err := d.db.SelectContext(ctx, &ids, query, roomID, userID)
	if err != nil {
		return nil, err
	}

	return ids, nil
}

func (d *Driver) TotalVotes(ctx context.Context, roomID uuid.UUID) (int, error) {
	var count int

	query := `
		SELECT COUNT(*)
		FROM votes
		WHERE room_id = $1
	`

	err := d.db.GetContext(ctx, &count, query, roomID)
	if err != nil {
		return 0, err
	}

	return count, nil
}

func (d *Driver) LikedMedia(ctx context.Context, roomID uuid.UUID) ([]model.MediaMeta, error) {
	var media []mediaDTO

	query := `
		SELECT DISTINCT m.id, m.title, m.genres, m.year, m.rating, m.popularity, m.overview, m.poster_link
		FROM media m
		JOIN votes v ON v.media_id = m.id
		WHERE v.room_id = $1 AND v.vote_type = $2
	`

	err := d.db.SelectContext(ctx, &media, query, roomID, model.VoteLike)
	if err != nil {
		return nil, err
	}

	result := make([]model.MediaMeta, 0, len(media))
	for _, mm := range media {
		result = append(result, model.MediaMeta{
			ID:         mm.ID,
			Title:      mm.Title,
			Genres:     []string(mm.Genres),
			Year:       mm.Year,
			Rating:     mm.Rating,
			Popularity: mm.Popularity,
			Overview:   mm.Overview,
			PosterLink: mm.PosterLink,
		})
	}

	return result, nil
}

func (d *Driver) Results(ctx context.Context, roomID uuid.UUID) ([]model.Result, error) {
	var results []resultDTO

	query := `
		SELECT
			m.id as media_id,
			m.title,
			m.genres,
			m.year,
			m.rating,
			m.popularity,
			m.overview,
			m.poster_link,
			c.likes
		FROM media m
		JOIN consensus c ON m.id = c.media_id AND c.room_id = $1
		WHERE c.likes > 0
		ORDER BY likes DESC
	`

	err := d.db.SelectContext(ctx, &results, query, roomID)
	if err != nil {
		return nil, err
	}

	modelResults := make([]model.Result, 0, len(results))
	for _, r := range results {
		modelResults = append(modelResults, model.Result{
			MM: model.MediaMeta{
				ID:         r.MediaID,
				Title:      r.Title,
				Genres:     []string(r.Genres),
				Year:       r.Year,
				Rating:     r.Rating,
				Popularity: r.Popularity,
				Overview:   r.Overview,
				PosterLink: r.PosterLink,
			},
			Likes: r.Likes,
		})
	}

	return modelResults, nil
}
