package model

import (
	"time"

	"github.com/google/uuid"
)

type Match struct {
	RoomID    uuid.UUID
	MediaID   uuid.UUID
	Votes     int
	MatchedAt time.Time
}
