package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

type MemberStatus = string

const (
	MemberActive   MemberStatus = "ACTIVE"
	MemberInactive MemberStatus = "INACTIVE"
)

type Member struct {
	RoomID uuid.UUID
	UserID uuid.UUID
	Status MemberStatus

	// Private presentation order. Cursor points at the next unseen item,
	// so Cursor == len(Queue) means the queue is exhausted.
	Queue  []uuid.UUID
	Cursor int

	JoinedAt time.Time
}

func (m Member) Exhausted() bool {
	return m.Cursor >= len(m.Queue)
}

// Current returns the item the member should see next, nil when exhausted.
func (m Member) Current() *uuid.UUID {
	if m.Exhausted() {
		return nil
	}
	id := m.Queue[m.Cursor]
	return &id
}

func (m Member) Progress() QueueProgress {
	return BuildProgress(m.Cursor, len(m.Queue))
}

type QueueProgress struct {
	CurrentIndex       int
	TotalItems         int
	RemainingItems     int
	ProgressPercentage int
}

func BuildProgress(cursor, total int) QueueProgress {
	p := QueueProgress{
		CurrentIndex: cursor,
		TotalItems:   total,
	}
	if total == 0 {
		return p
	}
	if cursor > total {
		cursor = total
		p.CurrentIndex = total
	}
	p.RemainingItems = total - cursor
	p.ProgressPercentage = int(math.Round(float64(cursor) / float64(total) * 100))
	return p
}
