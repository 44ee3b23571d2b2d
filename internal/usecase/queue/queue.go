package usecase_queue

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	"github.com/humanbelnik/swipematch/core/internal/service/dispatch"
	"github.com/humanbelnik/swipematch/core/internal/service/shuffle"
)

var (
	ErrRoomNotFound    = errors.New("no such room")
	ErrRoomClosed      = errors.New("room already matched")
	ErrNotAMember      = errors.New("not a member of this room")
	ErrAlreadyEnrolled = errors.New("already enrolled")
	ErrQueueConflict   = errors.New("queue changed concurrently")
	ErrInternal        = errors.New("internal error")
)

//go:generate mockery --name=RoomRepository --output=./mocks/queue/rooms --filename=rooms.go
type RoomRepository interface {
	ByCode(ctx context.Context, roomID model.RoomID) (model.Room, error)
}

//go:generate mockery --name=MemberRepository --output=./mocks/queue/members --filename=members.go
type MemberRepository interface {
	Create(ctx context.Context, member model.Member) error
	ByID(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) (model.Member, error)
	ReplaceQueue(ctx context.Context, roomID uuid.UUID, userID uuid.UUID, queue []uuid.UUID, expectedCursor int) error
}

//go:generate mockery --name=VoteReader --output=./mocks/queue/votes --filename=votes.go
type VoteReader interface {
	VotedMediaIDs(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) ([]uuid.UUID, error)
}

//go:generate mockery --name=Notifier --output=./mocks/queue/notifier --filename=notifier.go
type Notifier interface {
	NotifyMemberJoined(roomID model.RoomID, userID uuid.UUID)
}

type Usecase struct {
	RoomRepository   RoomRepository
	MemberRepository MemberRepository
	VoteReader       VoteReader
	Notifier         Notifier

	dispatcher *dispatch.Pool
}

func New(
	RoomRepository RoomRepository,
	MemberRepository MemberRepository,
	VoteReader VoteReader,
	Notifier Notifier,
	dispatcher *dispatch.Pool,
) *Usecase {
	return &Usecase{
		RoomRepository:   RoomRepository,
		MemberRepository: MemberRepository,
		VoteReader:       VoteReader,
		Notifier:         Notifier,
		dispatcher:       dispatcher,
	}
}

// Enroll creates the member with a personal presentation order:
// a permutation of the room's master list seeded from (room, user),
// so re-enrollment attempts regenerate the exact same queue.
func (u *Usecase) Enroll(ctx context.Context, roomID model.RoomID, userID uuid.UUID) (model.Member, error) {
	room, err := u.RoomRepository.ByCode(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return model.Member{}, ErrRoomNotFound
		}
		return model.Member{}, errors.Join(ErrInternal, err)
	}
	if room.Status == model.StatusMatched {
		return model.Member{}, ErrRoomClosed
	}

	member := model.Member{
		RoomID:   room.ID,
		UserID:   userID,
		Status:   model.MemberActive,
		Queue:    shuffle.Permute(room.ContentIDs, shuffle.Seed(roomID, userID)),
		Cursor:   0,
		JoinedAt: time.Now(),
	}

	if err := u.MemberRepository.Create(ctx, member); err != nil {
		if errors.Is(err, ErrAlreadyEnrolled) {
			return model.Member{}, ErrAlreadyEnrolled
		}
		return model.Member{}, errors.Join(ErrInternal, err)
	}

	u.dispatcher.Submit(dispatch.Task{
		Name: "notify member joined",
		Run: func(ctx context.Context) error {
			u.Notifier.NotifyMemberJoined(roomID, userID)
			return nil
		},
	})

	return member, nil
}

// Status loads the member's queue position within the room.
func (u *Usecase) Status(ctx context.Context, roomID model.RoomID, userID uuid.UUID) (model.Member, error) {
	room, err := u.RoomRepository.ByCode(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return model.Member{}, ErrRoomNotFound
		}
		return model.Member{}, errors.Join(ErrInternal, err)
	}

	member, err := u.MemberRepository.ByID(ctx, room.ID, userID)
	if err != nil {
		if errors.Is(err, ErrNotAMember) {
			return model.Member{}, ErrNotAMember
		}
		return model.Member{}, errors.Join(ErrInternal, err)
	}

	return member, nil
}

// Inject splices ids into the member's unvisited tail. Items already
// queued or already voted by the member are skipped. Splicing into an
// exhausted queue reopens it. Returns the number of items added.
func (u *Usecase) Inject(ctx context.Context, roomID model.RoomID, userID uuid.UUID, ids []uuid.UUID) (int, error) {
	room, err := u.RoomRepository.ByCode(ctx, roomID)
	if err != nil {
		if errors.Is(err, ErrRoomNotFound) {
			return 0, ErrRoomNotFound
		}
		return 0, errors.Join(ErrInternal, err)
	}

	voted, err := u.VoteReader.VotedMediaIDs(ctx, room.ID, userID)
	if err != nil {
		return 0, errors.Join(ErrInternal, err)
	}

	// Concurrent voters move the cursor under us. The replace is guarded
	// by the cursor value, so retry from a fresh snapshot on conflict.
	var retries = 3
	for retries > 0 {
		member, err := u.MemberRepository.ByID(ctx, room.ID, userID)
		if err != nil {
			if errors.Is(err, ErrNotAMember) {
				return 0, ErrNotAMember
			}
			return 0, errors.Join(ErrInternal, err)
		}

		fresh := filterKnown(ids, member.Queue, voted)
		if len(fresh) == 0 {
			return 0, nil
		}

		next := spliceTail(member.Queue, member.Cursor, fresh)
		if err := u.MemberRepository.ReplaceQueue(ctx, room.ID, userID, next, member.Cursor); err != nil {
			if errors.Is(err, ErrQueueConflict) {
				retries--
				continue
			}
			return 0, errors.Join(ErrInternal, err)
		}
		return len(fresh), nil
	}

	return 0, ErrQueueConflict
}

func filterKnown(ids []uuid.UUID, queue []uuid.UUID, voted []uuid.UUID) []uuid.UUID {
	known := make(map[uuid.UUID]struct{}, len(queue)+len(voted))
	for _, id := range queue {
		known[id] = struct{}{}
	}
	for _, id := range voted {
		known[id] = struct{}{}
	}

	fresh := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if _, ok := known[id]; ok {
			continue
		}
		known[id] = struct{}{}
		fresh = append(fresh, id)
	}
	return fresh
}

// spliceTail inserts ids at random offsets past the cursor. The visited
// prefix is never touched.
func spliceTail(queue []uuid.UUID, cursor int, ids []uuid.UUID) []uuid.UUID {
	if cursor > len(queue) {
		cursor = len(queue)
	}

	tail := make([]uuid.UUID, len(queue)-cursor)
	copy(tail, queue[cursor:])

	for _, id := range ids {
		pos := rand.Intn(len(tail) + 1)
		tail = append(tail, uuid.Nil)
		copy(tail[pos+1:], tail[pos:])
		tail[pos] = id
	}

	next := make([]uuid.UUID, 0, len(queue)+len(ids))
	next = append(next, queue[:cursor]...)
	next = append(next, tail...)
	return next
}
