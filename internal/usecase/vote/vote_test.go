package usecase_vote

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	"github.com/humanbelnik/swipematch/core/internal/service/dispatch"
	usecase_consensus "github.com/humanbelnik/swipematch/core/internal/usecase/consensus"
	usecase_queue "github.com/humanbelnik/swipematch/core/internal/usecase/queue"
	auditor_mocks "github.com/humanbelnik/swipematch/core/internal/usecase/vote/mocks/vote/auditor"
	ledger_mocks "github.com/humanbelnik/swipematch/core/internal/usecase/vote/mocks/vote/ledger"
	matches_mocks "github.com/humanbelnik/swipematch/core/internal/usecase/vote/mocks/vote/matches"
	members_mocks "github.com/humanbelnik/swipematch/core/internal/usecase/vote/mocks/vote/members"
	notifier_mocks "github.com/humanbelnik/swipematch/core/internal/usecase/vote/mocks/vote/notifier"
	prefetcher_mocks "github.com/humanbelnik/swipematch/core/internal/usecase/vote/mocks/vote/prefetcher"
	quorum_mocks "github.com/humanbelnik/swipematch/core/internal/usecase/vote/mocks/vote/quorum"
	rooms_mocks "github.com/humanbelnik/swipematch/core/internal/usecase/vote/mocks/vote/rooms"
	stalls_mocks "github.com/humanbelnik/swipematch/core/internal/usecase/vote/mocks/vote/stalls"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type UsecaseVoteUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase    *Usecase
	rooms      *rooms_mocks.RoomProvider
	members    *members_mocks.MemberProvider
	ledger     *ledger_mocks.Ledger
	quorum     *quorum_mocks.QuorumEvaluator
	matches    *matches_mocks.MatchKeeper
	notifier   *notifier_mocks.Notifier
	auditor    *auditor_mocks.Auditor
	prefetcher *prefetcher_mocks.Prefetcher
	stalls     *stalls_mocks.StallTracker
	dispatcher *dispatch.Pool
	ctx        context.Context
}

func initResources(t provider.T) *resources {
	return initResourcesWithStallPeriod(t, 1000)
}

func initResourcesWithStallPeriod(t provider.T, stallPeriod int) *resources {
	rooms := rooms_mocks.NewRoomProvider(t)
	members := members_mocks.NewMemberProvider(t)
	ledger := ledger_mocks.NewLedger(t)
	quorum := quorum_mocks.NewQuorumEvaluator(t)
	matches := matches_mocks.NewMatchKeeper(t)
	notifier := notifier_mocks.NewNotifier(t)
	auditor := auditor_mocks.NewAuditor(t)
	prefetcher := prefetcher_mocks.NewPrefetcher(t)
	stalls := stalls_mocks.NewStallTracker(t)
	dispatcher := dispatch.New(2, 32, time.Second)

	usecase := New(rooms, members, ledger, quorum, matches, notifier, auditor, prefetcher, stalls, dispatcher, stallPeriod)

	return &resources{
		usecase:    usecase,
		rooms:      rooms,
		members:    members,
		ledger:     ledger,
		quorum:     quorum,
		matches:    matches,
		notifier:   notifier,
		auditor:    auditor,
		prefetcher: prefetcher,
		stalls:     stalls,
		dispatcher: dispatcher,
		ctx:        context.Background(),
	}
}

/*
'Object Mother' pattern example
aka cooks specific objects.
*/
func validRoomID() model.RoomID {
	return model.RoomID("123456")
}

func validQueue(n int) []uuid.UUID {
	queue := make([]uuid.UUID, n)
	for i := range n {
		queue[i] = uuid.NewSHA1(uuid.NameSpaceOID, []byte{byte(i)})
	}
	return queue
}

func validRoom(capacity int) model.Room {
	return model.Room{
		ID:       uuid.NewSHA1(uuid.NameSpaceOID, []byte("room")),
		Capacity: capacity,
		Status:   model.StatusActive,
		Quorum:   model.QuorumStatic,
	}
}

func validMember(room model.Room, queue []uuid.UUID, cursor int) model.Member {
	return model.Member{
		RoomID: room.ID,
		UserID: uuid.NewSHA1(uuid.NameSpaceOID, []byte("member")),
		Status: model.MemberActive,
		Queue:  queue,
		Cursor: cursor,
	}
}

func (suite *UsecaseVoteUnitSuite) TestSubmit(t provider.T) {
	t.Parallel()

	room := validRoom(2)
	queue := validQueue(3)

	testCases := []struct {
		name          string
		member        model.Member
		request       func(member model.Member) SubmitRequest
		setupMocks    func(r *resources, member model.Member, req SubmitRequest)
		check         func(t provider.T, result SubmitResult)
		expectError   bool
		expectedError error
	}{
		{
			name:   "Should register vote and advance the queue",
			member: validMember(room, queue, 0),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[0],
					Type:    model.VoteLike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				r.rooms.On("ByCode", r.ctx, req.RoomID).Return(room, nil).Once()
				r.members.On("ByID", r.ctx, room.ID, req.UserID).Return(member, nil).Once()
				r.ledger.On("CommitVote", r.ctx, mock.AnythingOfType("model.Vote"), 0).Return(1, nil).Once()
				r.quorum.On("Evaluate", r.ctx, room, req.MediaID, 1).
					Return(usecase_consensus.Verdict{Reached: false, Current: 1, Required: 2}, nil).Once()
				r.notifier.On("NotifyVoteCast", req.RoomID, req.UserID, req.MediaID, model.VoteLike).Return().Once()
				r.auditor.On("Publish", mock.Anything, mock.AnythingOfType("model.AuditEvent")).Return(nil).Once()
				r.prefetcher.On("Prefetch", mock.Anything, []uuid.UUID{queue[1], queue[2]}).Return(nil).Once()
			},
			check: func(t provider.T, result SubmitResult) {
				assert.True(t, result.Registered)
				assert.Equal(t, queue[1], *result.NextMediaID)
				assert.False(t, result.QueueCompleted)
				assert.Equal(t, model.QueueProgress{
					CurrentIndex:       1,
					TotalItems:         3,
					RemainingItems:     2,
					ProgressPercentage: 33,
				}, result.Progress)
				assert.Nil(t, result.Match)
			},
		},
		{
			name:   "Should declare a match on the quorum crossing",
			member: validMember(room, queue, 0),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[0],
					Type:    model.VoteLike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				match := model.Match{RoomID: room.ID, MediaID: req.MediaID, Votes: 2}

				r.rooms.On("ByCode", r.ctx, req.RoomID).Return(room, nil).Once()
				r.members.On("ByID", r.ctx, room.ID, req.UserID).Return(member, nil).Once()
				r.ledger.On("CommitVote", r.ctx, mock.AnythingOfType("model.Vote"), 0).Return(2, nil).Once()
				r.quorum.On("Evaluate", r.ctx, room, req.MediaID, 2).
					Return(usecase_consensus.Verdict{Reached: true, Current: 2, Required: 2}, nil).Once()
				r.matches.On("Record", r.ctx, room, req.MediaID, 2).Return(match, true, nil).Once()
				r.notifier.On("NotifyVoteCast", req.RoomID, req.UserID, req.MediaID, model.VoteLike).Return().Once()
				r.notifier.On("NotifyMatchFound", req.RoomID, match).Return().Once()
				r.auditor.On("Publish", mock.Anything, mock.AnythingOfType("model.AuditEvent")).Return(nil).Twice()
				r.prefetcher.On("Prefetch", mock.Anything, []uuid.UUID{queue[1], queue[2]}).Return(nil).Once()
			},
			check: func(t provider.T, result SubmitResult) {
				assert.NotNil(t, result.Match)
				assert.Equal(t, queue[0], result.Match.MediaID)
				assert.Equal(t, 2, result.Match.Votes)
			},
		},
		{
			name:   "Should return the existing match when another member crossed first",
			member: validMember(room, queue, 0),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[0],
					Type:    model.VoteLike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				existing := model.Match{RoomID: room.ID, MediaID: req.MediaID, Votes: 2}

				r.rooms.On("ByCode", r.ctx, req.RoomID).Return(room, nil).Once()
				r.members.On("ByID", r.ctx, room.ID, req.UserID).Return(member, nil).Once()
				r.ledger.On("CommitVote", r.ctx, mock.AnythingOfType("model.Vote"), 0).Return(2, nil).Once()
				r.quorum.On("Evaluate", r.ctx, room, req.MediaID, 2).
					Return(usecase_consensus.Verdict{Reached: true, Current: 2, Required: 2}, nil).Once()
				r.matches.On("Record", r.ctx, room, req.MediaID, 2).Return(existing, false, nil).Once()
				r.notifier.On("NotifyVoteCast", req.RoomID, req.UserID, req.MediaID, model.VoteLike).Return().Once()
				r.auditor.On("Publish", mock.Anything, mock.AnythingOfType("model.AuditEvent")).Return(nil).Once()
				r.prefetcher.On("Prefetch", mock.Anything, []uuid.UUID{queue[1], queue[2]}).Return(nil).Once()
			},
			check: func(t provider.T, result SubmitResult) {
				assert.NotNil(t, result.Match)
				assert.Equal(t, 2, result.Match.Votes)
			},
		},
		{
			name:   "Should complete the queue on the last item",
			member: validMember(room, queue, 2),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[2],
					Type:    model.VoteDislike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				r.rooms.On("ByCode", r.ctx, req.RoomID).Return(room, nil).Once()
				r.members.On("ByID", r.ctx, room.ID, req.UserID).Return(member, nil).Once()
				r.ledger.On("CommitVote", r.ctx, mock.AnythingOfType("model.Vote"), 2).Return(0, nil).Once()
				r.notifier.On("NotifyVoteCast", req.RoomID, req.UserID, req.MediaID, model.VoteDislike).Return().Once()
				r.notifier.On("NotifyQueueCompleted", req.RoomID, req.UserID).Return().Once()
				r.auditor.On("Publish", mock.Anything, mock.AnythingOfType("model.AuditEvent")).Return(nil).Once()
			},
			check: func(t provider.T, result SubmitResult) {
				assert.True(t, result.QueueCompleted)
				assert.Nil(t, result.NextMediaID)
				assert.Equal(t, 100, result.Progress.ProgressPercentage)
				assert.Nil(t, result.Match)
			},
		},
		{
			name:   "Should reject a duplicate vote",
			member: validMember(room, queue, 0),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[0],
					Type:    model.VoteLike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				r.rooms.On("ByCode", r.ctx, req.RoomID).Return(room, nil).Once()
				r.members.On("ByID", r.ctx, room.ID, req.UserID).Return(member, nil).Once()
				r.ledger.On("CommitVote", r.ctx, mock.AnythingOfType("model.Vote"), 0).
					Return(0, ErrDuplicateVote).Once()
			},
			expectError:   true,
			expectedError: ErrDuplicateVote,
		},
		{
			name:   "Should reject a vote out of sequence",
			member: validMember(room, queue, 0),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[1],
					Type:    model.VoteLike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				r.rooms.On("ByCode", r.ctx, req.RoomID).Return(room, nil).Once()
				r.members.On("ByID", r.ctx, room.ID, req.UserID).Return(member, nil).Once()
			},
			expectError:   true,
			expectedError: ErrOutOfSequence,
		},
		{
			name:   "Should reject a vote on an exhausted queue",
			member: validMember(room, queue, 3),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[0],
					Type:    model.VoteLike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				r.rooms.On("ByCode", r.ctx, req.RoomID).Return(room, nil).Once()
				r.members.On("ByID", r.ctx, room.ID, req.UserID).Return(member, nil).Once()
			},
			expectError:   true,
			expectedError: ErrQueueExhausted,
		},
		{
			name:   "Should reject a vote into a matched room",
			member: validMember(room, queue, 0),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[0],
					Type:    model.VoteLike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				matched := room
				matched.Status = model.StatusMatched
				r.rooms.On("ByCode", r.ctx, req.RoomID).Return(matched, nil).Once()
			},
			expectError:   true,
			expectedError: ErrRoomMatched,
		},
		{
			name:   "Should reject a non-member",
			member: validMember(room, queue, 0),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[0],
					Type:    model.VoteLike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				r.rooms.On("ByCode", r.ctx, req.RoomID).Return(room, nil).Once()
				r.members.On("ByID", r.ctx, room.ID, req.UserID).
					Return(model.Member{}, usecase_queue.ErrNotAMember).Once()
			},
			expectError:   true,
			expectedError: usecase_queue.ErrNotAMember,
		},
		{
			name:   "Should reject an inactive member",
			member: validMember(room, queue, 0),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[0],
					Type:    model.VoteLike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				inactive := member
				inactive.Status = model.MemberInactive
				r.rooms.On("ByCode", r.ctx, req.RoomID).Return(room, nil).Once()
				r.members.On("ByID", r.ctx, room.ID, req.UserID).Return(inactive, nil).Once()
			},
			expectError:   true,
			expectedError: usecase_queue.ErrNotAMember,
		},
		{
			name:   "Should skip quorum evaluation for a dislike",
			member: validMember(room, queue, 0),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[0],
					Type:    model.VoteDislike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				r.rooms.On("ByCode", r.ctx, req.RoomID).Return(room, nil).Once()
				r.members.On("ByID", r.ctx, room.ID, req.UserID).Return(member, nil).Once()
				r.ledger.On("CommitVote", r.ctx, mock.AnythingOfType("model.Vote"), 0).Return(0, nil).Once()
				r.notifier.On("NotifyVoteCast", req.RoomID, req.UserID, req.MediaID, model.VoteDislike).Return().Once()
				r.auditor.On("Publish", mock.Anything, mock.AnythingOfType("model.AuditEvent")).Return(nil).Once()
				r.prefetcher.On("Prefetch", mock.Anything, []uuid.UUID{queue[1], queue[2]}).Return(nil).Once()
			},
			check: func(t provider.T, result SubmitResult) {
				assert.True(t, result.Registered)
				assert.Nil(t, result.Match)
			},
		},
		{
			name:   "Should wrap an infrastructure failure",
			member: validMember(room, queue, 0),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[0],
					Type:    model.VoteLike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				r.rooms.On("ByCode", r.ctx, req.RoomID).Return(room, nil).Once()
				r.members.On("ByID", r.ctx, room.ID, req.UserID).Return(member, nil).Once()
				r.ledger.On("CommitVote", r.ctx, mock.AnythingOfType("model.Vote"), 0).
					Return(0, errors.New("connection reset")).Once()
			},
			expectError:   true,
			expectedError: ErrInternal,
		},
		{
			name:   "Should report a missing room",
			member: validMember(room, queue, 0),
			request: func(member model.Member) SubmitRequest {
				return SubmitRequest{
					RoomID:  validRoomID(),
					UserID:  member.UserID,
					MediaID: queue[0],
					Type:    model.VoteLike,
				}
			},
			setupMocks: func(r *resources, member model.Member, req SubmitRequest) {
				r.rooms.On("ByCode", r.ctx, req.RoomID).
					Return(model.Room{}, usecase_queue.ErrRoomNotFound).Once()
			},
			expectError:   true,
			expectedError: usecase_queue.ErrRoomNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			req := tc.request(tc.member)
			tc.setupMocks(r, tc.member, req)

			result, err := r.usecase.Submit(r.ctx, req)
			r.dispatcher.Stop()

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.False(t, result.Registered)
			} else {
				assert.NoError(t, err)
				if tc.check != nil {
					tc.check(t, result)
				}
			}
		})
	}
}

func (suite *UsecaseVoteUnitSuite) TestSubmitTouchesStallSet(t provider.T) {
	t.Parallel()

	r := initResourcesWithStallPeriod(t, 1)

	room := validRoom(2)
	queue := validQueue(2)
	member := validMember(room, queue, 0)
	req := SubmitRequest{
		RoomID:  validRoomID(),
		UserID:  member.UserID,
		MediaID: queue[0],
		Type:    model.VoteDislike,
	}

	r.rooms.On("ByCode", r.ctx, req.RoomID).Return(room, nil).Once()
	r.members.On("ByID", r.ctx, room.ID, req.UserID).Return(member, nil).Once()
	r.ledger.On("CommitVote", r.ctx, mock.AnythingOfType("model.Vote"), 0).Return(0, nil).Once()
	r.notifier.On("NotifyVoteCast", req.RoomID, req.UserID, req.MediaID, model.VoteDislike).Return().Once()
	r.auditor.On("Publish", mock.Anything, mock.AnythingOfType("model.AuditEvent")).Return(nil).Once()
	r.prefetcher.On("Prefetch", mock.Anything, []uuid.UUID{queue[1]}).Return(nil).Once()
	r.stalls.On("Add", mock.Anything, req.RoomID).Return(nil).Once()

	_, err := r.usecase.Submit(r.ctx, req)
	r.dispatcher.Stop()

	assert.NoError(t, err)
}

func (suite *UsecaseVoteUnitSuite) TestResults(t provider.T) {
	t.Parallel()

	room := validRoom(2)

	testCases := []struct {
		name          string
		setupMocks    func(r *resources)
		expectedLen   int
		expectError   bool
		expectedError error
	}{
		{
			name: "Should load like-ranked results",
			setupMocks: func(r *resources) {
				results := []model.Result{
					{MM: model.MediaMeta{ID: uuid.New(), Title: "first"}, Likes: 3},
					{MM: model.MediaMeta{ID: uuid.New(), Title: "second"}, Likes: 1},
				}
				r.rooms.On("ByCode", r.ctx, validRoomID()).Return(room, nil).Once()
				r.ledger.On("Results", r.ctx, room.ID).Return(results, nil).Once()
			},
			expectedLen: 2,
		},
		{
			name: "Should report a missing room",
			setupMocks: func(r *resources) {
				r.rooms.On("ByCode", r.ctx, validRoomID()).
					Return(model.Room{}, usecase_queue.ErrRoomNotFound).Once()
			},
			expectError:   true,
			expectedError: usecase_queue.ErrRoomNotFound,
		},
		{
			name: "Should wrap a ledger failure",
			setupMocks: func(r *resources) {
				r.rooms.On("ByCode", r.ctx, validRoomID()).Return(room, nil).Once()
				r.ledger.On("Results", r.ctx, room.ID).Return(nil, errors.New("timeout")).Once()
			},
			expectError:   true,
			expectedError: ErrInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			r := initResources(t)
			tc.setupMocks(r)

			results, err := r.usecase.Results(r.ctx, validRoomID())
			r.dispatcher.Stop()

			if tc.expectError {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, results)
			} else {
				assert.NoError(t, err)
				assert.Len(t, results, tc.expectedLen)
			}
		})
	}
}

func TestUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(UsecaseVoteUnitSuite))
}
