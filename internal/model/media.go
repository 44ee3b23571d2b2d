package model

import "github.com/google/uuid"

type MediaMeta struct {
	ID         uuid.UUID
	PosterLink string
	Title      string
	Genres     []string
	Year       int
	Rating     float64
	Popularity float64

	Overview string
}

// Aggregate taste profile of a room, built from its members' likes.
type PreferencePattern struct {
	Genres           map[string]int
	AverageRating    float64
	PopularityRange  [2]float64
	ReleaseYearRange [2]int
	CommonKeywords   []string
}

type InjectionSource = string

const (
	InjectionSemantic   InjectionSource = "semantic"
	InjectionSuggestion InjectionSource = "suggestion"
)

// Attribution record for content that entered a room outside its
// original master list.
type Injection struct {
	ID      uuid.UUID
	RoomID  uuid.UUID
	MediaID uuid.UUID
	Source  InjectionSource
	Score   float64
}
