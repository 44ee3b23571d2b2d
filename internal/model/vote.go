package model

import (
	"time"

	"github.com/google/uuid"
)

type VoteType = string

const (
	VoteLike    VoteType = "LIKE"
	VoteDislike VoteType = "DISLIKE"
)

type Vote struct {
	RoomID     uuid.UUID
	UserID     uuid.UUID
	MediaID    uuid.UUID
	Type       VoteType
	SessionID  string
	DeviceInfo string
	CreatedAt  time.Time
}

// Aggregated view over the active members' votes for a single item.
type MediaConsensus struct {
	Unanimous     bool
	VoteType      VoteType
	TotalVotes    int
	ActiveMembers int
}

type Result struct {
	MM    MediaMeta
	Likes int
}

const (
	AuditVoteCast   = "VOTE_CAST"
	AuditMatchFound = "MATCH_FOUND"
)

// AuditEvent is the flattened form of a swipe or match shipped to the
// external event sink.
type AuditEvent struct {
	Kind     string
	RoomID   string
	UserID   string
	MediaID  string
	VoteType string
	At       time.Time
}
