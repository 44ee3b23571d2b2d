package usecase_vote

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	"github.com/humanbelnik/swipematch/core/internal/service/dispatch"
	usecase_consensus "github.com/humanbelnik/swipematch/core/internal/usecase/consensus"
	usecase_queue "github.com/humanbelnik/swipematch/core/internal/usecase/queue"
)

var (
	ErrQueueExhausted = errors.New("queue exhausted")
	ErrOutOfSequence  = errors.New("vote out of sequence")
	ErrDuplicateVote  = errors.New("duplicate vote")
	ErrRoomMatched    = errors.New("room already matched")
	ErrInternal       = errors.New("internal error")
)

// How many upcoming queue items get their metadata warmed per vote.
const prefetchDepth = 3

//go:generate mockery --name=RoomProvider --output=./mocks/vote/rooms --filename=rooms.go
type RoomProvider interface {
	ByCode(ctx context.Context, roomID model.RoomID) (model.Room, error)
}

//go:generate mockery --name=MemberProvider --output=./mocks/vote/members --filename=members.go
type MemberProvider interface {
	ByID(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) (model.Member, error)
}

//go:generate mockery --name=Ledger --output=./mocks/vote/ledger --filename=ledger.go
type Ledger interface {
	// CommitVote records the vote, bumps the item's like counter for
	// likes, and advances the member cursor, all in one transaction.
	// Returns the item's like total after the write.
	CommitVote(ctx context.Context, vote model.Vote, expectedCursor int) (int, error)
	Results(ctx context.Context, roomID uuid.UUID) ([]model.Result, error)
}

//go:generate mockery --name=QuorumEvaluator --output=./mocks/vote/quorum --filename=quorum.go
type QuorumEvaluator interface {
	Evaluate(ctx context.Context, room model.Room, mediaID uuid.UUID, likes int) (usecase_consensus.Verdict, error)
}

//go:generate mockery --name=MatchKeeper --output=./mocks/vote/matches --filename=matches.go
type MatchKeeper interface {
	Record(ctx context.Context, room model.Room, mediaID uuid.UUID, votes int) (model.Match, bool, error)
}

//go:generate mockery --name=Notifier --output=./mocks/vote/notifier --filename=notifier.go
type Notifier interface {
	NotifyVoteCast(roomID model.RoomID, userID uuid.UUID, mediaID uuid.UUID, voteType model.VoteType)
	NotifyQueueCompleted(roomID model.RoomID, userID uuid.UUID)
	NotifyMatchFound(roomID model.RoomID, match model.Match)
}

//go:generate mockery --name=Auditor --output=./mocks/vote/auditor --filename=auditor.go
type Auditor interface {
	Publish(ctx context.Context, event model.AuditEvent) error
}

//go:generate mockery --name=Prefetcher --output=./mocks/vote/prefetcher --filename=prefetcher.go
type Prefetcher interface {
	Prefetch(ctx context.Context, ids []uuid.UUID) error
}

//go:generate mockery --name=StallTracker --output=./mocks/vote/stalls --filename=stalls.go
type StallTracker interface {
	Add(ctx context.Context, roomID model.RoomID) error
}

type SubmitRequest struct {
	RoomID     model.RoomID
	UserID     uuid.UUID
	MediaID    uuid.UUID
	Type       model.VoteType
	SessionID  string
	DeviceInfo string
}

type SubmitResult struct {
	Registered     bool
	NextMediaID    *uuid.UUID
	QueueCompleted bool
	Progress       model.QueueProgress

	// Set when this room has a match after the vote, whether or not the
	// current vote created it.
	Match *model.Match
}

type Usecase struct {
	RoomProvider   RoomProvider
	MemberProvider MemberProvider
	Ledger         Ledger
	Quorum         QuorumEvaluator
	Matches        MatchKeeper
	Notifier       Notifier
	Auditor        Auditor
	Prefetcher     Prefetcher
	StallTracker   StallTracker

	dispatcher *dispatch.Pool

	// Used to touch the stall set on every Nth accepted vote
	stallTouchPeriod int64
	votesSeen        atomic.Int64
}

func New(
	RoomProvider RoomProvider,
	MemberProvider MemberProvider,
	Ledger Ledger,
	Quorum QuorumEvaluator,
	Matches MatchKeeper,
	Notifier Notifier,
	Auditor Auditor,
	Prefetcher Prefetcher,
	StallTracker StallTracker,
	dispatcher *dispatch.Pool,
	stallTouchPeriod int,
) *Usecase {
	if stallTouchPeriod <= 0 {
		stallTouchPeriod = 10 /* default */
	}

	return &Usecase{
		RoomProvider:     RoomProvider,
		MemberProvider:   MemberProvider,
		Ledger:           Ledger,
		Quorum:           Quorum,
		Matches:          Matches,
		Notifier:         Notifier,
		Auditor:          Auditor,
		Prefetcher:       Prefetcher,
		StallTracker:     StallTracker,
		dispatcher:       dispatcher,
		stallTouchPeriod: int64(stallTouchPeriod),
	}
}

// Submit runs the whole ingestion pipeline for one swipe: membership
// and sequence validation, the atomic ledger commit, quorum evaluation,
// match recording, then detached side effects. Side effects never
// change the outcome of the vote itself.
func (u *Usecase) Submit(ctx context.Context, req SubmitRequest) (SubmitResult, error) {
	room, err := u.RoomProvider.ByCode(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, usecase_queue.ErrRoomNotFound) {
			return SubmitResult{}, usecase_queue.ErrRoomNotFound
		}
		return SubmitResult{}, errors.Join(ErrInternal, err)
	}
	if room.Status == model.StatusMatched {
		return SubmitResult{}, ErrRoomMatched
	}

	member, err := u.MemberProvider.ByID(ctx, room.ID, req.UserID)
	if err != nil {
		if errors.Is(err, usecase_queue.ErrNotAMember) {
			return SubmitResult{}, usecase_queue.ErrNotAMember
		}
		return SubmitResult{}, errors.Join(ErrInternal, err)
	}
	if member.Status != model.MemberActive {
		return SubmitResult{}, usecase_queue.ErrNotAMember
	}

	current := member.Current()
	if current == nil {
		return SubmitResult{}, ErrQueueExhausted
	}
	if *current != req.MediaID {
		return SubmitResult{}, ErrOutOfSequence
	}

	vote := model.Vote{
		RoomID:     room.ID,
		UserID:     req.UserID,
		MediaID:    req.MediaID,
		Type:       req.Type,
		SessionID:  req.SessionID,
		DeviceInfo: req.DeviceInfo,
		CreatedAt:  time.Now(),
	}

	likes, err := u.Ledger.CommitVote(ctx, vote, member.Cursor)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateVote):
			return SubmitResult{}, ErrDuplicateVote
		case errors.Is(err, ErrOutOfSequence):
			return SubmitResult{}, ErrOutOfSequence
		default:
			return SubmitResult{}, errors.Join(ErrInternal, err)
		}
	}

	cursor := member.Cursor + 1
	result := SubmitResult{
		Registered:     true,
		Progress:       model.BuildProgress(cursor, len(member.Queue)),
		QueueCompleted: cursor >= len(member.Queue),
	}
	if cursor < len(member.Queue) {
		next := member.Queue[cursor]
		result.NextMediaID = &next
	}

	if req.Type == model.VoteLike {
		verdict, err := u.Quorum.Evaluate(ctx, room, req.MediaID, likes)
		if err != nil {
			return SubmitResult{}, errors.Join(ErrInternal, err)
		}
		if verdict.Reached {
			match, created, err := u.Matches.Record(ctx, room, req.MediaID, verdict.Current)
			if err != nil {
				return SubmitResult{}, errors.Join(ErrInternal, err)
			}
			result.Match = &match
			if created {
				u.announceMatch(req.RoomID, match)
			}
		}
	}

	u.announceVote(req, member, cursor, result.QueueCompleted)

	return result, nil
}

func (u *Usecase) announceMatch(roomID model.RoomID, match model.Match) {
	u.dispatcher.Submit(dispatch.Task{
		Name: "notify match found",
		Run: func(ctx context.Context) error {
			u.Notifier.NotifyMatchFound(roomID, match)
			return nil
		},
	})
	u.dispatcher.Submit(dispatch.Task{
		Name: "audit match found",
		Run: func(ctx context.Context) error {
			return u.Auditor.Publish(ctx, model.AuditEvent{
				Kind:    model.AuditMatchFound,
				RoomID:  string(roomID),
				MediaID: match.MediaID.String(),
				At:      match.MatchedAt,
			})
		},
	})
}

func (u *Usecase) announceVote(req SubmitRequest, member model.Member, cursor int, completed bool) {
	u.dispatcher.Submit(dispatch.Task{
		Name: "notify vote cast",
		Run: func(ctx context.Context) error {
			u.Notifier.NotifyVoteCast(req.RoomID, req.UserID, req.MediaID, req.Type)
			if completed {
				u.Notifier.NotifyQueueCompleted(req.RoomID, req.UserID)
			}
			return nil
		},
	})

	u.dispatcher.Submit(dispatch.Task{
		Name: "audit vote cast",
		Run: func(ctx context.Context) error {
			return u.Auditor.Publish(ctx, model.AuditEvent{
				Kind:     model.AuditVoteCast,
				RoomID:   string(req.RoomID),
				UserID:   req.UserID.String(),
				MediaID:  req.MediaID.String(),
				VoteType: req.Type,
				At:       time.Now(),
			})
		},
	})

	if upcoming := upcomingIDs(member.Queue, cursor, prefetchDepth); len(upcoming) > 0 {
		u.dispatcher.Submit(dispatch.Task{
			Name: "prefetch upcoming media",
			Run: func(ctx context.Context) error {
				return u.Prefetcher.Prefetch(ctx, upcoming)
			},
		})
	}

	if u.votesSeen.Add(1)%u.stallTouchPeriod == 0 {
		u.dispatcher.Submit(dispatch.Task{
			Name: "track room for stall review",
			Run: func(ctx context.Context) error {
				return u.StallTracker.Add(ctx, req.RoomID)
			},
		})
	}
}

func upcomingIDs(queue []uuid.UUID, cursor int, depth int) []uuid.UUID {
	if cursor >= len(queue) {
		return nil
	}
	end := cursor + depth
	if end > len(queue) {
		end = len(queue)
	}
	out := make([]uuid.UUID, end-cursor)
	copy(out, queue[cursor:end])
	return out
}

// Results returns the room's like-ranked standings.
func (u *Usecase) Results(ctx context.Context, roomID model.RoomID) ([]model.Result, error) {
	room, err := u.RoomProvider.ByCode(ctx, roomID)
	if err != nil {
		if errors.Is(err, usecase_queue.ErrRoomNotFound) {
			return nil, usecase_queue.ErrRoomNotFound
		}
		return nil, errors.Join(ErrInternal, err)
	}

	results, err := u.Ledger.Results(ctx, room.ID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	return results, nil
}
