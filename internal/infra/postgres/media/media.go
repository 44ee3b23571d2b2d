package infra_postgres_media

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	usecase_injector "github.com/humanbelnik/swipematch/core/internal/usecase/injector"
	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) LoadByID(ctx context.Context, ID uuid.UUID) (model.MediaMeta, error) {
	query := `
		SELECT id, title, genres, year, rating, popularity, overview, poster_link
		FROM media
		WHERE id = $1
	`

	var mediaDB MediaDB
	err := r.db.GetContext(ctx, &mediaDB, query, ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.MediaMeta{}, usecase_injector.ErrMediaNotFound
		}
		return model.MediaMeta{}, fmt.Errorf("failed to load media by id: %w", err)
	}

	return mediaDB.ToDomain(), nil
}

func (r *Repository) LoadByIDs(ctx context.Context, IDs []uuid.UUID) ([]model.MediaMeta, error) {
	if len(IDs) == 0 {
		return []model.MediaMeta{}, nil
	}

	query, args, err := sqlx.In(`
		SELECT id, title, genres, year, rating, popularity, overview, poster_link
		FROM media
		WHERE id IN (?)
	`, IDs)
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	query = r.db.Rebind(query)
	var mediaDB []MediaDB
	err = r.db.SelectContext(ctx, &mediaDB, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query media by ids: %w", err)
	}

	media := make([]model.MediaMeta, len(mediaDB))
	for i, m := range mediaDB {
		media[i] = m.ToDomain()
	}

	return media, nil
}

// Candidates loads the scoring pool, best-rated first so a capped pool
// still holds the likeliest bridge items.
func (r *Repository) Candidates(ctx context.Context, limit int) ([]model.MediaMeta, error) {
	query := `
		SELECT id, title, genres, year, rating, popularity, overview, poster_link
		FROM media
		ORDER BY rating DESC, popularity DESC
		LIMIT $1
	`

	var mediaDB []MediaDB
	err := r.db.SelectContext(ctx, &mediaDB, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}

	media := make([]model.MediaMeta, len(mediaDB))
	for i, m := range mediaDB {
		media[i] = m.ToDomain()
	}

	return media, nil
}

func (r *Repository) RecordInjection(ctx context.Context, injection model.Injection) error {
	injectionDB := FromDomainInjection(injection)

	query := `
		INSERT INTO injections (id, room_id, media_id, source, score)
		VALUES (:id, :room_id, :media_id, :source, :score)
	`

	_, err := r.db.NamedExecContext(ctx, query, injectionDB)
	if err != nil {
		return fmt.Errorf("failed to record injection: %w", err)
	}

	return nil
}
