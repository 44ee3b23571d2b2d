package usecase_match

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
)

var (
	ErrNoMatch  = errors.New("no match recorded")
	ErrInternal = errors.New("internal error")
)

//go:generate mockery --name=MatchRepository --output=./mocks/match/repository --filename=repository.go
type MatchRepository interface {
	// Create inserts the match keyed by room alone and reports whether
	// this call won the insert.
	Create(ctx context.Context, match model.Match) (bool, error)
	ByRoom(ctx context.Context, roomID uuid.UUID) (model.Match, error)
	MarkRoomMatched(ctx context.Context, roomID uuid.UUID, mediaID uuid.UUID) error
}

type Usecase struct {
	MatchRepository MatchRepository
}

func New(
	MatchRepository MatchRepository,
) *Usecase {
	return &Usecase{
		MatchRepository: MatchRepository,
	}
}

// Record persists a quorum crossing. Concurrent crossings race on the
// room-keyed insert; exactly one wins and the rest observe the winner's
// match. The room status flip is retried by every caller, so a crash
// between insert and flip heals on the next crossing.
func (u *Usecase) Record(ctx context.Context, room model.Room, mediaID uuid.UUID, votes int) (model.Match, bool, error) {
	match := model.Match{
		RoomID:    room.ID,
		MediaID:   mediaID,
		Votes:     votes,
		MatchedAt: time.Now(),
	}

	created, err := u.MatchRepository.Create(ctx, match)
	if err != nil {
		return model.Match{}, false, errors.Join(ErrInternal, err)
	}

	if !created {
		existing, err := u.MatchRepository.ByRoom(ctx, room.ID)
		if err != nil {
			return model.Match{}, false, errors.Join(ErrInternal, err)
		}
		match = existing
	}

	if err := u.MatchRepository.MarkRoomMatched(ctx, room.ID, match.MediaID); err != nil {
		return model.Match{}, false, errors.Join(ErrInternal, err)
	}

	return match, created, nil
}

// ByRoom is the authority on whether a room has already matched.
func (u *Usecase) ByRoom(ctx context.Context, roomID uuid.UUID) (model.Match, error) {
	match, err := u.MatchRepository.ByRoom(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrNoMatch) {
			return model.Match{}, ErrNoMatch
		}
		return model.Match{}, errors.Join(ErrInternal, err)
	}
	return match, nil
}
