package http_interaction

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	http_common "github.com/humanbelnik/swipematch/core/internal/delivery/http/common"
	"github.com/humanbelnik/swipematch/core/internal/model"
	usecase_consensus "github.com/humanbelnik/swipematch/core/internal/usecase/consensus"
	usecase_injector "github.com/humanbelnik/swipematch/core/internal/usecase/injector"
	usecase_queue "github.com/humanbelnik/swipematch/core/internal/usecase/queue"
	usecase_vote "github.com/humanbelnik/swipematch/core/internal/usecase/vote"
)

type Controller struct {
	votes     *usecase_vote.Usecase
	queue     *usecase_queue.Usecase
	consensus *usecase_consensus.Usecase
	injector  *usecase_injector.Usecase

	logger *slog.Logger
}

type ControllerOption func(*Controller)

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

func New(
	votes *usecase_vote.Usecase,
	queue *usecase_queue.Usecase,
	consensus *usecase_consensus.Usecase,
	injector *usecase_injector.Usecase,
	opts ...ControllerOption,
) *Controller {
	c := &Controller{
		votes:     votes,
		queue:     queue,
		consensus: consensus,
		injector:  injector,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	room := router.Group("rooms/:room_id/interactions")
	room.POST("/vote", c.submitVote)
	room.GET("/queue/status", c.queueStatus)
	room.GET("/media/:media_id/consensus", c.mediaConsensus)
	room.POST("/members", c.enroll)
	room.GET("/results", c.results)
	room.POST("/suggestions", c.suggest)
}

// memberIdentity pulls the room code from the path and the caller's
// identity from the X-user-token header. Membership itself is checked
// by the usecases.
func (c *Controller) memberIdentity(ctx *gin.Context) (model.RoomID, uuid.UUID, bool) {
	roomID := model.RoomID(ctx.Param("room_id"))

	userToken := ctx.GetHeader("X-user-token")
	if userToken == "" {
		ctx.JSON(http.StatusUnauthorized, http_common.ErrorResponse{
			Message: "X-user-token header required",
		})
		return model.EmptyRoomID, uuid.Nil, false
	}

	userID, err := uuid.Parse(userToken)
	if err != nil {
		c.logger.Error("invalid user token format",
			slog.String("room_id", string(roomID)),
			slog.String("user_token", userToken),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid user token format",
		})
		return model.EmptyRoomID, uuid.Nil, false
	}

	return roomID, userID, true
}

// ProgressDTO mirrors a member's position in their queue
type ProgressDTO struct {
	CurrentIndex       int `json:"current_index"`
	TotalItems         int `json:"total_items"`
	RemainingItems     int `json:"remaining_items"`
	ProgressPercentage int `json:"progress_percentage"`
}

func progressDTO(p model.QueueProgress) ProgressDTO {
	return ProgressDTO{
		CurrentIndex:       p.CurrentIndex,
		TotalItems:         p.TotalItems,
		RemainingItems:     p.RemainingItems,
		ProgressPercentage: p.ProgressPercentage,
	}
}

// VoteRequestDTO carries one swipe
type VoteRequestDTO struct {
	MediaID    string `json:"media_id" binding:"required"`
	VoteType   string `json:"vote_type" binding:"required,oneof=LIKE DISLIKE"`
	SessionID  string `json:"session_id"`
	DeviceInfo string `json:"device_info"`
}

// VoteResponseDTO reports the accepted swipe and the member's new position
type VoteResponseDTO struct {
	VoteRegistered  bool        `json:"vote_registered"`
	NextMediaID     *string     `json:"next_media_id"`
	QueueCompleted  bool        `json:"queue_completed"`
	CurrentProgress ProgressDTO `json:"current_progress"`
}

// SubmitVote registers one swipe on the member's current queue item
// @Summary Submit a vote
// @Description Records a LIKE or DISLIKE for the caller's current queue item and advances their queue
// @Tags Interactions
// @Accept json
// @Param room_id path string true "Room code"
// @Param request body VoteRequestDTO true "The vote"
// @Success 200 {object} VoteResponseDTO "Vote registered"
// @Failure 400 {object} http_common.ErrorResponse "Invalid request format"
// @Failure 401 {object} http_common.ErrorResponse "Missing user token"
// @Failure 404 {object} http_common.ErrorResponse "Room not found or user not a member"
// @Failure 409 {object} http_common.ErrorResponse "Duplicate, out of sequence, exhausted queue or matched room"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Security UserToken
// @Router /rooms/{room_id}/interactions/vote [post]
func (c *Controller) submitVote(ctx *gin.Context) {
	roomID, userID, ok := c.memberIdentity(ctx)
	if !ok {
		return
	}

	var req VoteRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Error("invalid request format",
			slog.String("room_id", string(roomID)),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	mediaID, err := uuid.Parse(req.MediaID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid media id format",
		})
		return
	}

	result, err := c.votes.Submit(ctx, usecase_vote.SubmitRequest{
		RoomID:     roomID,
		UserID:     userID,
		MediaID:    mediaID,
		Type:       req.VoteType,
		SessionID:  req.SessionID,
		DeviceInfo: req.DeviceInfo,
	})
	if err != nil {
		c.respondVoteError(ctx, roomID, err)
		return
	}

	var nextMediaID *string
	if result.NextMediaID != nil {
		s := result.NextMediaID.String()
		nextMediaID = &s
	}

	ctx.JSON(http.StatusOK, VoteResponseDTO{
		VoteRegistered:  result.Registered,
		NextMediaID:     nextMediaID,
		QueueCompleted:  result.QueueCompleted,
		CurrentProgress: progressDTO(result.Progress),
	})
}

func (c *Controller) respondVoteError(ctx *gin.Context, roomID model.RoomID, err error) {
	switch {
	case errors.Is(err, usecase_queue.ErrRoomNotFound), errors.Is(err, usecase_queue.ErrNotAMember):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
	case errors.Is(err, usecase_vote.ErrQueueExhausted):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "queue exhausted",
		})
	case errors.Is(err, usecase_vote.ErrOutOfSequence):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "vote out of sequence",
		})
	case errors.Is(err, usecase_vote.ErrDuplicateVote):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "duplicate vote",
		})
	case errors.Is(err, usecase_vote.ErrRoomMatched):
		ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
			Message: "room already matched",
		})
	default:
		c.logger.Error("failed to submit vote",
			slog.String("room_id", string(roomID)),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}

// QueueStatusResponseDTO reports the member's current item and progress
type QueueStatusResponseDTO struct {
	CurrentMediaID  *string     `json:"current_media_id"`
	QueueCompleted  bool        `json:"queue_completed"`
	CurrentProgress ProgressDTO `json:"current_progress"`
}

// QueueStatus returns the caller's position in their queue
// @Summary Get queue status
// @Description Returns the caller's current queue item and progress in the room
// @Tags Interactions
// @Param room_id path string true "Room code"
// @Success 200 {object} QueueStatusResponseDTO "Queue status"
// @Failure 401 {object} http_common.ErrorResponse "Missing user token"
// @Failure 404 {object} http_common.ErrorResponse "Room not found or user not a member"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Security UserToken
// @Router /rooms/{room_id}/interactions/queue/status [get]
func (c *Controller) queueStatus(ctx *gin.Context) {
	roomID, userID, ok := c.memberIdentity(ctx)
	if !ok {
		return
	}

	member, err := c.queue.Status(ctx, roomID, userID)
	if err != nil {
		c.respondLookupError(ctx, roomID, err, "failed to get queue status")
		return
	}

	var currentMediaID *string
	if id := member.Current(); id != nil {
		s := id.String()
		currentMediaID = &s
	}

	ctx.JSON(http.StatusOK, QueueStatusResponseDTO{
		CurrentMediaID:  currentMediaID,
		QueueCompleted:  member.Exhausted(),
		CurrentProgress: progressDTO(member.Progress()),
	})
}

func (c *Controller) respondLookupError(ctx *gin.Context, roomID model.RoomID, err error, logMessage string) {
	switch {
	case errors.Is(err, usecase_queue.ErrRoomNotFound), errors.Is(err, usecase_queue.ErrNotAMember):
		ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
			Message: "not found",
		})
	default:
		c.logger.Error(logMessage,
			slog.String("room_id", string(roomID)),
			slog.String("error", err.Error()))
		ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
			Message: "internal error",
		})
	}
}

// ConsensusResponseDTO reports the room's vote picture for one item
type ConsensusResponseDTO struct {
	IsUnanimous   bool    `json:"is_unanimous"`
	VoteType      *string `json:"vote_type"`
	TotalVotes    int     `json:"total_votes"`
	ActiveMembers int     `json:"active_members"`
}

// MediaConsensus returns the room's consensus state for one item
// @Summary Get media consensus
// @Description Reports whether the room's active members voted unanimously on the item
// @Tags Interactions
// @Param room_id path string true "Room code"
// @Param media_id path string true "Media id"
// @Success 200 {object} ConsensusResponseDTO "Consensus state"
// @Failure 400 {object} http_common.ErrorResponse "Invalid media id"
// @Failure 401 {object} http_common.ErrorResponse "Missing user token"
// @Failure 404 {object} http_common.ErrorResponse "Room not found or user not a member"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Security UserToken
// @Router /rooms/{room_id}/interactions/media/{media_id}/consensus [get]
func (c *Controller) mediaConsensus(ctx *gin.Context) {
	roomID, userID, ok := c.memberIdentity(ctx)
	if !ok {
		return
	}

	mediaID, err := uuid.Parse(ctx.Param("media_id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid media id format",
		})
		return
	}

	// Consensus is member-only information.
	if _, err := c.queue.Status(ctx, roomID, userID); err != nil {
		c.respondLookupError(ctx, roomID, err, "failed to validate member")
		return
	}

	breakdown, err := c.consensus.Breakdown(ctx, roomID, mediaID)
	if err != nil {
		c.respondLookupError(ctx, roomID, err, "failed to get consensus")
		return
	}

	var voteType *string
	if breakdown.Unanimous {
		vt := breakdown.VoteType
		voteType = &vt
	}

	ctx.JSON(http.StatusOK, ConsensusResponseDTO{
		IsUnanimous:   breakdown.Unanimous,
		VoteType:      voteType,
		TotalVotes:    breakdown.TotalVotes,
		ActiveMembers: breakdown.ActiveMembers,
	})
}

// EnrollResponseDTO confirms the membership and the generated queue
type EnrollResponseDTO struct {
	RoomID      string `json:"room_id"`
	UserID      string `json:"user_id"`
	QueueLength int    `json:"queue_length"`
}

// Enroll joins the caller to the room and builds their shuffled queue
// @Summary Enroll a member
// @Description Creates the caller's membership with a personal shuffled queue over the room's content
// @Tags Interactions
// @Param room_id path string true "Room code"
// @Success 201 {object} EnrollResponseDTO "Member enrolled"
// @Failure 401 {object} http_common.ErrorResponse "Missing user token"
// @Failure 404 {object} http_common.ErrorResponse "Room not found"
// @Failure 409 {object} http_common.ErrorResponse "Already enrolled or room finished"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Security UserToken
// @Router /rooms/{room_id}/interactions/members [post]
func (c *Controller) enroll(ctx *gin.Context) {
	roomID, userID, ok := c.memberIdentity(ctx)
	if !ok {
		return
	}

	member, err := c.queue.Enroll(ctx, roomID, userID)
	if err != nil {
		switch {
		case errors.Is(err, usecase_queue.ErrRoomNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_queue.ErrAlreadyEnrolled):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "already enrolled",
			})
		case errors.Is(err, usecase_queue.ErrRoomClosed):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "room already matched",
			})
		default:
			c.logger.Error("failed to enroll member",
				slog.String("room_id", string(roomID)),
				slog.String("user_id", userID.String()),
				slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.JSON(http.StatusCreated, EnrollResponseDTO{
		RoomID:      string(roomID),
		UserID:      member.UserID.String(),
		QueueLength: len(member.Queue),
	})
}

// ResultDTO is one like-ranked room result
type ResultDTO struct {
	MediaID    string   `json:"media_id"`
	Title      string   `json:"title"`
	PosterLink string   `json:"poster_link"`
	Genres     []string `json:"genres"`
	Year       int      `json:"year"`
	Rating     float64  `json:"rating"`
	Popularity float64  `json:"popularity"`
	Overview   string   `json:"overview"`
	Likes      int      `json:"likes"`
}

// ResultsResponseDTO lists room results, most liked first
type ResultsResponseDTO struct {
	Results []ResultDTO `json:"results"`
}

// Results returns the room's like-ranked items
// @Summary Get room results
// @Description Returns the room's items ordered by like count
// @Tags Interactions
// @Param room_id path string true "Room code"
// @Success 200 {object} ResultsResponseDTO "Results"
// @Failure 401 {object} http_common.ErrorResponse "Missing user token"
// @Failure 404 {object} http_common.ErrorResponse "Room not found or user not a member"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Security UserToken
// @Router /rooms/{room_id}/interactions/results [get]
func (c *Controller) results(ctx *gin.Context) {
	roomID, userID, ok := c.memberIdentity(ctx)
	if !ok {
		return
	}

	if _, err := c.queue.Status(ctx, roomID, userID); err != nil {
		c.respondLookupError(ctx, roomID, err, "failed to validate member")
		return
	}

	results, err := c.votes.Results(ctx, roomID)
	if err != nil {
		c.respondLookupError(ctx, roomID, err, "failed to get results")
		return
	}

	dtos := make([]ResultDTO, 0, len(results))
	for _, r := range results {
		dtos = append(dtos, ResultDTO{
			MediaID:    r.MM.ID.String(),
			Title:      r.MM.Title,
			PosterLink: r.MM.PosterLink,
			Genres:     r.MM.Genres,
			Year:       r.MM.Year,
			Rating:     r.MM.Rating,
			Popularity: r.MM.Popularity,
			Overview:   r.MM.Overview,
			Likes:      r.Likes,
		})
	}

	ctx.JSON(http.StatusOK, ResultsResponseDTO{
		Results: dtos,
	})
}

// SuggestRequestDTO names the item a member wants the room to see
type SuggestRequestDTO struct {
	MediaID string `json:"media_id" binding:"required"`
}

// Suggest adds a member-recommended item to the room
// @Summary Suggest content
// @Description Adds the item to the room pool and into every active member's unvisited queue tail
// @Tags Interactions
// @Accept json
// @Param room_id path string true "Room code"
// @Param request body SuggestRequestDTO true "The suggestion"
// @Success 202 "Suggestion accepted"
// @Failure 400 {object} http_common.ErrorResponse "Invalid request format"
// @Failure 401 {object} http_common.ErrorResponse "Missing user token"
// @Failure 404 {object} http_common.ErrorResponse "Room, member or media not found"
// @Failure 409 {object} http_common.ErrorResponse "Already suggested or room finished"
// @Failure 500 {object} http_common.ErrorResponse "Internal server error"
// @Security UserToken
// @Router /rooms/{room_id}/interactions/suggestions [post]
func (c *Controller) suggest(ctx *gin.Context) {
	roomID, userID, ok := c.memberIdentity(ctx)
	if !ok {
		return
	}

	var req SuggestRequestDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid request format",
		})
		return
	}

	mediaID, err := uuid.Parse(req.MediaID)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, http_common.ErrorResponse{
			Message: "invalid media id format",
		})
		return
	}

	err = c.injector.Suggest(ctx, roomID, userID, mediaID)
	if err != nil {
		switch {
		case errors.Is(err, usecase_queue.ErrRoomNotFound),
			errors.Is(err, usecase_queue.ErrNotAMember),
			errors.Is(err, usecase_injector.ErrMediaNotFound):
			ctx.JSON(http.StatusNotFound, http_common.ErrorResponse{
				Message: "not found",
			})
		case errors.Is(err, usecase_injector.ErrAlreadySuggested):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "media already in room pool",
			})
		case errors.Is(err, usecase_injector.ErrRoomClosed):
			ctx.JSON(http.StatusConflict, http_common.ErrorResponse{
				Message: "room already matched",
			})
		default:
			c.logger.Error("failed to add suggestion",
				slog.String("room_id", string(roomID)),
				slog.String("media_id", mediaID.String()),
				slog.String("error", err.Error()))
			ctx.JSON(http.StatusInternalServerError, http_common.ErrorResponse{
				Message: "internal error",
			})
		}
		return
	}

	ctx.Status(http.StatusAccepted)
}
