package storage_catalog

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
)

type LookaheadCache interface {
	Store(ctx context.Context, media []model.MediaMeta) error
	Fetch(ctx context.Context, ids []uuid.UUID) ([]model.MediaMeta, []uuid.UUID, error)
}

type MediaRepository interface {
	LoadByID(ctx context.Context, ID uuid.UUID) (model.MediaMeta, error)
	LoadByIDs(ctx context.Context, IDs []uuid.UUID) ([]model.MediaMeta, error)
	Candidates(ctx context.Context, limit int) ([]model.MediaMeta, error)
}

// Catalog reads media through the lookahead cache, falling back to
// Postgres and warming the cache on the way out. Cache trouble
// degrades to plain database reads.
type Catalog struct {
	Cache LookaheadCache
	Media MediaRepository

	logger *slog.Logger
}

type CatalogOption func(*Catalog)

func WithLogger(logger *slog.Logger) CatalogOption {
	return func(c *Catalog) {
		c.logger = logger
	}
}

func New(
	Cache LookaheadCache,
	Media MediaRepository,
	opts ...CatalogOption,
) *Catalog {
	c := &Catalog{
		Cache:  Cache,
		Media:  Media,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Catalog) Details(ctx context.Context, id uuid.UUID) (model.MediaMeta, error) {
	found, _, err := c.Cache.Fetch(ctx, []uuid.UUID{id})
	if err != nil {
		c.logger.Warn("lookahead fetch failed, falling back to db",
			slog.String("media_id", id.String()),
			slog.String("error", err.Error()))
	}
	if len(found) == 1 {
		return found[0], nil
	}

	mm, err := c.Media.LoadByID(ctx, id)
	if err != nil {
		return model.MediaMeta{}, err
	}

	if err := c.Cache.Store(ctx, []model.MediaMeta{mm}); err != nil {
		c.logger.Warn("lookahead store failed",
			slog.String("media_id", id.String()),
			slog.String("error", err.Error()))
	}

	return mm, nil
}

// DetailsBatch resolves many ids at once. Ids unknown to both layers
// are silently absent from the result.
func (c *Catalog) DetailsBatch(ctx context.Context, ids []uuid.UUID) ([]model.MediaMeta, error) {
	if len(ids) == 0 {
		return []model.MediaMeta{}, nil
	}

	found, missing, err := c.Cache.Fetch(ctx, ids)
	if err != nil {
		c.logger.Warn("lookahead fetch failed, falling back to db",
			slog.String("error", err.Error()))
		found, missing = nil, ids
	}

	if len(missing) > 0 {
		loaded, err := c.Media.LoadByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}

		if len(loaded) > 0 {
			if err := c.Cache.Store(ctx, loaded); err != nil {
				c.logger.Warn("lookahead store failed",
					slog.String("error", err.Error()))
			}
		}
		found = append(found, loaded...)
	}

	byID := make(map[uuid.UUID]model.MediaMeta, len(found))
	for _, mm := range found {
		byID[mm.ID] = mm
	}

	ordered := make([]model.MediaMeta, 0, len(ids))
	for _, id := range ids {
		if mm, ok := byID[id]; ok {
			ordered = append(ordered, mm)
		}
	}

	return ordered, nil
}

func (c *Catalog) Candidates(ctx context.Context, limit int) ([]model.MediaMeta, error) {
	return c.Media.Candidates(ctx, limit)
}

// Prefetch warms the cache for ids a member is about to see.
func (c *Catalog) Prefetch(ctx context.Context, ids []uuid.UUID) error {
	_, err := c.DetailsBatch(ctx, ids)
	return err
}
