package infra_postgres_media

import (
	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	"github.com/lib/pq"
)

type MediaDB struct {
	ID         uuid.UUID      `db:"id"`
	PosterLink string         `db:"poster_link"`
	Title      string         `db:"title"`
	Genres     pq.StringArray `db:"genres"`
	Year       int            `db:"year"`
	Rating     float64        `db:"rating"`
	Popularity float64        `db:"popularity"`
	Overview   string         `db:"overview"`
}

func (m *MediaDB) ToDomain() model.MediaMeta {
	return model.MediaMeta{
		ID:         m.ID,
		PosterLink: m.PosterLink,
		Title:      m.Title,
		Genres:     []string(m.Genres),
		Year:       m.Year,
		Rating:     m.Rating,
		Popularity: m.Popularity,
		Overview:   m.Overview,
	}
}

type InjectionDB struct {
	ID      uuid.UUID `db:"id"`
	RoomID  uuid.UUID `db:"room_id"`
	MediaID uuid.UUID `db:"media_id"`
	Source  string    `db:"source"`
	Score   float64   `db:"score"`
}

func FromDomainInjection(injection model.Injection) InjectionDB {
	return InjectionDB{
		ID:      injection.ID,
		RoomID:  injection.RoomID,
		MediaID: injection.MediaID,
		Source:  injection.Source,
		Score:   injection.Score,
	}
}
