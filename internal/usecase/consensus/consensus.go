package usecase_consensus

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
)

var (
	ErrUnknownPolicy = errors.New("unknown quorum policy")
	ErrInternal      = errors.New("internal error")
)

type Verdict struct {
	Reached  bool
	Current  int
	Required int
}

//go:generate mockery --name=RoomProvider --output=./mocks/consensus/rooms --filename=rooms.go
type RoomProvider interface {
	ByCode(ctx context.Context, roomID model.RoomID) (model.Room, error)
}

//go:generate mockery --name=VoteReader --output=./mocks/consensus/votes --filename=votes.go
type VoteReader interface {
	// Votes cast for the item by currently active members.
	ActiveVotesForMedia(ctx context.Context, roomID uuid.UUID, mediaID uuid.UUID) ([]model.Vote, error)
}

//go:generate mockery --name=MemberCounter --output=./mocks/consensus/members --filename=members.go
type MemberCounter interface {
	ActiveCount(ctx context.Context, roomID uuid.UUID) (int, error)
}

type QuorumPolicy interface {
	Evaluate(ctx context.Context, room model.Room, mediaID uuid.UUID, likes int) (Verdict, error)
}

// StaticQuorum declares consensus once the like count reaches the
// room's fixed capacity, whether or not every member has voted yet.
type StaticQuorum struct{}

func (StaticQuorum) Evaluate(_ context.Context, room model.Room, _ uuid.UUID, likes int) (Verdict, error) {
	return Verdict{
		Reached:  room.Capacity > 0 && likes >= room.Capacity,
		Current:  likes,
		Required: room.Capacity,
	}, nil
}

// DynamicUnanimity requires every currently active member to have liked
// the item. Rooms with fewer than two active members never reach quorum.
type DynamicUnanimity struct {
	votes   VoteReader
	members MemberCounter
}

func NewDynamicUnanimity(votes VoteReader, members MemberCounter) *DynamicUnanimity {
	return &DynamicUnanimity{votes: votes, members: members}
}

func (p *DynamicUnanimity) Evaluate(ctx context.Context, room model.Room, mediaID uuid.UUID, _ int) (Verdict, error) {
	active, err := p.members.ActiveCount(ctx, room.ID)
	if err != nil {
		return Verdict{}, err
	}

	votes, err := p.votes.ActiveVotesForMedia(ctx, room.ID, mediaID)
	if err != nil {
		return Verdict{}, err
	}

	likes := 0
	for _, v := range votes {
		if v.Type == model.VoteLike {
			likes++
		}
	}

	required := active
	if required < 2 {
		required = 2
	}

	return Verdict{
		Reached:  active >= 2 && likes == active,
		Current:  likes,
		Required: required,
	}, nil
}

type Usecase struct {
	RoomProvider  RoomProvider
	VoteReader    VoteReader
	MemberCounter MemberCounter

	policies map[model.QuorumKind]QuorumPolicy
}

func New(
	RoomProvider RoomProvider,
	VoteReader VoteReader,
	MemberCounter MemberCounter,
) *Usecase {
	return &Usecase{
		RoomProvider:  RoomProvider,
		VoteReader:    VoteReader,
		MemberCounter: MemberCounter,
		policies: map[model.QuorumKind]QuorumPolicy{
			model.QuorumStatic:    StaticQuorum{},
			model.QuorumUnanimity: NewDynamicUnanimity(VoteReader, MemberCounter),
		},
	}
}

// Evaluate runs the room's configured policy against the item.
// Rooms created before policies existed carry no value and fall back
// to the static policy.
func (u *Usecase) Evaluate(ctx context.Context, room model.Room, mediaID uuid.UUID, likes int) (Verdict, error) {
	kind := room.Quorum
	if kind == "" {
		kind = model.QuorumStatic
	}

	policy, ok := u.policies[kind]
	if !ok {
		return Verdict{}, ErrUnknownPolicy
	}

	verdict, err := policy.Evaluate(ctx, room, mediaID, likes)
	if err != nil {
		return Verdict{}, errors.Join(ErrInternal, err)
	}
	return verdict, nil
}

// Breakdown reports the per-item vote picture. Unanimity of either vote
// type is reported here, though only unanimous likes ever match.
func (u *Usecase) Breakdown(ctx context.Context, roomID model.RoomID, mediaID uuid.UUID) (model.MediaConsensus, error) {
	room, err := u.RoomProvider.ByCode(ctx, roomID)
	if err != nil {
		return model.MediaConsensus{}, err
	}

	active, err := u.MemberCounter.ActiveCount(ctx, room.ID)
	if err != nil {
		return model.MediaConsensus{}, errors.Join(ErrInternal, err)
	}

	votes, err := u.VoteReader.ActiveVotesForMedia(ctx, room.ID, mediaID)
	if err != nil {
		return model.MediaConsensus{}, errors.Join(ErrInternal, err)
	}

	mc := model.MediaConsensus{
		TotalVotes:    len(votes),
		ActiveMembers: active,
	}

	if active < 2 || len(votes) != active {
		return mc, nil
	}
	first := votes[0].Type
	for _, v := range votes[1:] {
		if v.Type != first {
			return mc, nil
		}
	}

	mc.Unanimous = true
	mc.VoteType = first
	return mc, nil
}
