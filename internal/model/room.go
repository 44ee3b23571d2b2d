package model

import "github.com/google/uuid"

type RoomStatus = string

const (
	StatusWaiting RoomStatus = "WAITING"
	StatusActive  RoomStatus = "ACTIVE"
	StatusMatched RoomStatus = "MATCHED"
)

type QuorumKind = string

const (
	QuorumStatic    QuorumKind = "static"
	QuorumUnanimity QuorumKind = "unanimity"
)

type Room struct {
	ID         uuid.UUID
	PublicCode string
	Capacity   int
	Status     RoomStatus
	Quorum     QuorumKind

	// Master content list. Member queues are permutations of it.
	ContentIDs []uuid.UUID

	MatchedMediaID *uuid.UUID
}

// RoomStats are the activity counters behind the stall review.
type RoomStats struct {
	TotalVotes    int
	RecentMatches int
}
