package infra_postgres_media

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	usecase_injector "github.com/humanbelnik/swipematch/core/internal/usecase/injector"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
)

type MediaInfraUnitSuite struct {
	suite.Suite
}

type resources struct {
	db   *sqlx.DB
	mock sqlmock.Sqlmock
	repo *Repository
	ctx  context.Context
}

func initResources(t provider.T) *resources {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}

	sqlxDB := sqlx.NewDb(db, "sqlmock")

	return &resources{
		db:   sqlxDB,
		mock: mock,
		repo: New(sqlxDB),
		ctx:  context.Background(),
	}
}

func mediaColumns() []string {
	return []string{"id", "title", "genres", "year", "rating", "popularity", "overview", "poster_link"}
}

func validMedia() model.MediaMeta {
	return model.MediaMeta{
		ID:         uuid.NewSHA1(uuid.NameSpaceOID, []byte("media")),
		PosterLink: "https://img.example.com/poster.jpg",
		Title:      "Edge of Tomorrow",
		Genres:     []string{"Action", "Sci-Fi"},
		Year:       2014,
		Rating:     7.9,
		Popularity: 120,
		Overview:   "Live. Die. Repeat.",
	}
}

func mediaRow(rows *sqlmock.Rows, m model.MediaMeta) *sqlmock.Rows {
	return rows.AddRow(m.ID.String(), m.Title, pq.StringArray(m.Genres),
		m.Year, m.Rating, m.Popularity, m.Overview, m.PosterLink)
}

func (suite *MediaInfraUnitSuite) TestLoadByID(t provider.T) {
	t.Parallel()

	media := validMedia()

	t.Run("Should load the item", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		r.mock.ExpectQuery("SELECT").
			WithArgs(media.ID).
			WillReturnRows(mediaRow(sqlmock.NewRows(mediaColumns()), media))

		got, err := r.repo.LoadByID(r.ctx, media.ID)

		assert.NoError(t, err)
		assert.Equal(t, media, got)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should map an unknown item", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		r.mock.ExpectQuery("SELECT").
			WithArgs(media.ID).
			WillReturnRows(sqlmock.NewRows(mediaColumns()))

		_, err := r.repo.LoadByID(r.ctx, media.ID)

		assert.ErrorIs(t, err, usecase_injector.ErrMediaNotFound)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (suite *MediaInfraUnitSuite) TestLoadByIDs(t provider.T) {
	t.Parallel()

	t.Run("Should expand the id list", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		first := validMedia()
		second := validMedia()
		second.ID = uuid.NewSHA1(uuid.NameSpaceOID, []byte("media-2"))
		second.Title = "Oblivion"

		rows := mediaRow(sqlmock.NewRows(mediaColumns()), first)
		rows = mediaRow(rows, second)
		r.mock.ExpectQuery("SELECT").
			WithArgs(first.ID, second.ID).
			WillReturnRows(rows)

		media, err := r.repo.LoadByIDs(r.ctx, []uuid.UUID{first.ID, second.ID})

		assert.NoError(t, err)
		assert.Len(t, media, 2)
		assert.Equal(t, first.Title, media[0].Title)
		assert.Equal(t, second.Title, media[1].Title)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should skip the query for an empty list", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		media, err := r.repo.LoadByIDs(r.ctx, nil)

		assert.NoError(t, err)
		assert.Empty(t, media)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (suite *MediaInfraUnitSuite) TestCandidates(t provider.T) {
	t.Parallel()

	t.Run("Should load the capped pool", func(t provider.T) {
		t.Parallel()
		r := initResources(t)
		media := validMedia()

		r.mock.ExpectQuery("SELECT").
			WithArgs(50).
			WillReturnRows(mediaRow(sqlmock.NewRows(mediaColumns()), media))

		pool, err := r.repo.Candidates(r.ctx, 50)

		assert.NoError(t, err)
		assert.Len(t, pool, 1)
		assert.Equal(t, media.ID, pool[0].ID)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should pass through a storage failure", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		r.mock.ExpectQuery("SELECT").
			WithArgs(50).
			WillReturnError(errors.New("connection reset"))

		_, err := r.repo.Candidates(r.ctx, 50)

		assert.Error(t, err)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func (suite *MediaInfraUnitSuite) TestRecordInjection(t provider.T) {
	t.Parallel()

	injection := model.Injection{
		ID:      uuid.NewSHA1(uuid.NameSpaceOID, []byte("injection")),
		RoomID:  uuid.NewSHA1(uuid.NameSpaceOID, []byte("room")),
		MediaID: uuid.NewSHA1(uuid.NameSpaceOID, []byte("media")),
		Source:  model.InjectionSemantic,
		Score:   0.83,
	}

	t.Run("Should record the attribution", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		r.mock.ExpectExec("INSERT INTO injections").
			WithArgs(injection.ID, injection.RoomID, injection.MediaID,
				injection.Source, injection.Score).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := r.repo.RecordInjection(r.ctx, injection)

		assert.NoError(t, err)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})

	t.Run("Should pass through a storage failure", func(t provider.T) {
		t.Parallel()
		r := initResources(t)

		r.mock.ExpectExec("INSERT INTO injections").
			WithArgs(injection.ID, injection.RoomID, injection.MediaID,
				injection.Source, injection.Score).
			WillReturnError(errors.New("connection reset"))

		err := r.repo.RecordInjection(r.ctx, injection)

		assert.Error(t, err)
		assert.NoError(t, r.mock.ExpectationsWereMet())
	})
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(MediaInfraUnitSuite))
}
