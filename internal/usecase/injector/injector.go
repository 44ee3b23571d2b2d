package usecase_injector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/humanbelnik/swipematch/core/internal/model"
	usecase_queue "github.com/humanbelnik/swipematch/core/internal/usecase/queue"
)

var (
	ErrMediaNotFound    = errors.New("no such media")
	ErrAlreadySuggested = errors.New("media already in room pool")
	ErrRoomClosed       = errors.New("room not accepting content")
	ErrInternal         = errors.New("internal error")
)

// A room is considered stalled once it has real voting activity but
// almost nothing to show for it.
const (
	minTotalVotes    = 20
	maxRecentMatches = 2
	maxMatchRatio    = 0.05
	matchWindow      = 7 * 24 * time.Hour
)

const minSimilarity = 0.3

// Bridge content: items broad and safe enough to appeal across
// diverging tastes.
const (
	bridgeMinGenres     = 2
	bridgeMinRating     = 7.0
	bridgeMinPopularity = 50
	bridgeMaxPopularity = 500
)

const (
	weightGenres     = 0.4
	weightRating     = 0.2
	weightPopularity = 0.15
	weightYear       = 0.15
	weightKeywords   = 0.1
)

type ScoredMedia struct {
	MM      model.MediaMeta
	Score   float64
	Factors []string
}

type Report struct {
	RoomID   model.RoomID
	Injected []uuid.UUID
	Members  int
	Failures int
	Refusal  string
}

//go:generate mockery --name=RoomRepository --output=./mocks/injector/rooms --filename=rooms.go
type RoomRepository interface {
	ByCode(ctx context.Context, roomID model.RoomID) (model.Room, error)
	// AppendContent adds the id to the room's master list unless it is
	// already present. Reports whether the append happened.
	AppendContent(ctx context.Context, roomID model.RoomID, mediaID uuid.UUID) (bool, error)
}

//go:generate mockery --name=MemberRepository --output=./mocks/injector/members --filename=members.go
type MemberRepository interface {
	ByID(ctx context.Context, roomID uuid.UUID, userID uuid.UUID) (model.Member, error)
	ActiveByRoom(ctx context.Context, roomID uuid.UUID) ([]model.Member, error)
}

//go:generate mockery --name=VoteReader --output=./mocks/injector/votes --filename=votes.go
type VoteReader interface {
	LikedMedia(ctx context.Context, roomID uuid.UUID) ([]model.MediaMeta, error)
}

//go:generate mockery --name=Stats --output=./mocks/injector/stats --filename=stats.go
type Stats interface {
	RoomStats(ctx context.Context, room model.Room, window time.Duration) (model.RoomStats, error)
}

//go:generate mockery --name=Catalog --output=./mocks/injector/catalog --filename=catalog.go
type Catalog interface {
	Details(ctx context.Context, id uuid.UUID) (model.MediaMeta, error)
	Candidates(ctx context.Context, limit int) ([]model.MediaMeta, error)
}

//go:generate mockery --name=QueueInjector --output=./mocks/injector/queue --filename=queue.go
type QueueInjector interface {
	Inject(ctx context.Context, roomID model.RoomID, userID uuid.UUID, ids []uuid.UUID) (int, error)
}

//go:generate mockery --name=AttributionRepository --output=./mocks/injector/attribution --filename=attribution.go
type AttributionRepository interface {
	RecordInjection(ctx context.Context, injection model.Injection) error
}

//go:generate mockery --name=Notifier --output=./mocks/injector/notifier --filename=notifier.go
type Notifier interface {
	NotifyContentInjected(roomID model.RoomID, mediaIDs []uuid.UUID)
}

//go:generate mockery --name=StallSet --output=./mocks/injector/stallset --filename=stallset.go
type StallSet interface {
	// Pop takes one room off the review set, EmptyRoomID when drained.
	Pop(ctx context.Context) (model.RoomID, error)
}

type Usecase struct {
	RoomRepository   RoomRepository
	MemberRepository MemberRepository
	VoteReader       VoteReader
	Stats            Stats
	Catalog          Catalog
	Queue            QueueInjector
	Attribution      AttributionRepository
	Notifier         Notifier
	StallSet         StallSet

	maxInjections int
	candidatePool int
	runTimeout    time.Duration

	logger *slog.Logger
}

type UsecaseOption func(*Usecase)

func WithLogger(logger *slog.Logger) UsecaseOption {
	return func(u *Usecase) {
		u.logger = logger
	}
}

func New(
	RoomRepository RoomRepository,
	MemberRepository MemberRepository,
	VoteReader VoteReader,
	Stats Stats,
	Catalog Catalog,
	Queue QueueInjector,
	Attribution AttributionRepository,
	Notifier Notifier,
	StallSet StallSet,
	maxInjections int,
	candidatePool int,
	runTimeout time.Duration,
	opts ...UsecaseOption,
) *Usecase {
	if maxInjections <= 0 {
		maxInjections = 3 /* default */
	}
	if candidatePool <= 0 {
		candidatePool = 200 /* default */
	}
	if runTimeout <= 0 {
		runTimeout = 30 * time.Second
	}

	u := &Usecase{
		RoomRepository:   RoomRepository,
		MemberRepository: MemberRepository,
		VoteReader:       VoteReader,
		Stats:            Stats,
		Catalog:          Catalog,
		Queue:            Queue,
		Attribution:      Attribution,
		Notifier:         Notifier,
		StallSet:         StallSet,
		maxInjections:    maxInjections,
		candidatePool:    candidatePool,
		runTimeout:       runTimeout,
		logger:           slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// ShouldInject decides whether the room qualifies for bridge content.
// A qualifying room has seen enough votes, has produced fewer than two
// matches in the last week, and its match ratio sits under 5%.
func (u *Usecase) ShouldInject(ctx context.Context, room model.Room) (bool, model.RoomStats, error) {
	stats, err := u.Stats.RoomStats(ctx, room, matchWindow)
	if err != nil {
		return false, model.RoomStats{}, errors.Join(ErrInternal, err)
	}

	if stats.TotalVotes <= minTotalVotes {
		return false, stats, nil
	}
	if stats.RecentMatches >= maxRecentMatches {
		return false, stats, nil
	}

	ratio := float64(stats.RecentMatches) / float64(stats.TotalVotes)
	return ratio < maxMatchRatio, stats, nil
}

// AnalyzePreferences aggregates the room's liked items into a taste
// profile. A room without a single like gets a broad default profile.
func (u *Usecase) AnalyzePreferences(ctx context.Context, room model.Room) (model.PreferencePattern, error) {
	liked, err := u.VoteReader.LikedMedia(ctx, room.ID)
	if err != nil {
		return model.PreferencePattern{}, errors.Join(ErrInternal, err)
	}
	if len(liked) == 0 {
		return DefaultPattern(), nil
	}

	pattern := model.PreferencePattern{
		Genres:           make(map[string]int),
		PopularityRange:  [2]float64{liked[0].Popularity, liked[0].Popularity},
		ReleaseYearRange: [2]int{liked[0].Year, liked[0].Year},
	}

	ratingSum := 0.0
	keywordFreq := make(map[string]int)
	for _, mm := range liked {
		for _, genre := range mm.Genres {
			pattern.Genres[genre]++
		}
		ratingSum += mm.Rating

		if mm.Popularity < pattern.PopularityRange[0] {
			pattern.PopularityRange[0] = mm.Popularity
		}
		if mm.Popularity > pattern.PopularityRange[1] {
			pattern.PopularityRange[1] = mm.Popularity
		}
		if mm.Year < pattern.ReleaseYearRange[0] {
			pattern.ReleaseYearRange[0] = mm.Year
		}
		if mm.Year > pattern.ReleaseYearRange[1] {
			pattern.ReleaseYearRange[1] = mm.Year
		}

		for _, token := range tokenize(mm.Title + " " + mm.Overview) {
			keywordFreq[token]++
		}
	}

	pattern.AverageRating = ratingSum / float64(len(liked))
	pattern.CommonKeywords = topKeywords(keywordFreq, 10)
	return pattern, nil
}

func DefaultPattern() model.PreferencePattern {
	return model.PreferencePattern{
		Genres:           map[string]int{"Action": 1, "Comedy": 1, "Drama": 1},
		AverageRating:    7.0,
		PopularityRange:  [2]float64{50, 500},
		ReleaseYearRange: [2]int{2015, 2024},
		CommonKeywords:   []string{},
	}
}

// Score rates a candidate against the pattern. Factors name the
// components that carried the score.
func Score(pattern model.PreferencePattern, mm model.MediaMeta) ScoredMedia {
	patternGenres := make([]string, 0, len(pattern.Genres))
	for genre := range pattern.Genres {
		patternGenres = append(patternGenres, genre)
	}

	genreScore := jaccard(patternGenres, mm.Genres)

	ratingScore := 1 - math.Abs(pattern.AverageRating-mm.Rating)/10
	if ratingScore < 0 {
		ratingScore = 0
	}

	popularityScore := 0.0
	mid := (pattern.PopularityRange[0] + pattern.PopularityRange[1]) / 2
	if hi := math.Max(mid, mm.Popularity); hi > 0 {
		popularityScore = math.Min(mid, mm.Popularity) / hi
	}

	yearMid := float64(pattern.ReleaseYearRange[0]+pattern.ReleaseYearRange[1]) / 2
	yearScore := 1 - math.Abs(yearMid-float64(mm.Year))/20
	if yearScore < 0 {
		yearScore = 0
	}

	keywordScore := jaccard(pattern.CommonKeywords, tokenize(mm.Title+" "+mm.Overview))

	scored := ScoredMedia{
		MM: mm,
		Score: genreScore*weightGenres +
			ratingScore*weightRating +
			popularityScore*weightPopularity +
			yearScore*weightYear +
			keywordScore*weightKeywords,
	}

	for _, factor := range []struct {
		name  string
		value float64
	}{
		{"genres", genreScore},
		{"rating", ratingScore},
		{"popularity", popularityScore},
		{"release_year", yearScore},
		{"keywords", keywordScore},
	} {
		if factor.value >= 0.5 {
			scored.Factors = append(scored.Factors, factor.name)
		}
	}

	return scored
}

// ScoreCandidates keeps candidates scoring at least the similarity
// floor, best first.
func ScoreCandidates(pattern model.PreferencePattern, candidates []model.MediaMeta) []ScoredMedia {
	scored := make([]ScoredMedia, 0, len(candidates))
	for _, mm := range candidates {
		s := Score(pattern, mm)
		if s.Score < minSimilarity {
			continue
		}
		scored = append(scored, s)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// IdentifyBridgeContent filters for broadly appealing items and ranks
// them by genre breadth weighted by rating. Duplicates are dropped.
func IdentifyBridgeContent(candidates []model.MediaMeta) []model.MediaMeta {
	bridge := make([]model.MediaMeta, 0, len(candidates))
	seen := make(map[uuid.UUID]struct{}, len(candidates))
	for _, mm := range candidates {
		if len(mm.Genres) < bridgeMinGenres {
			continue
		}
		if mm.Rating < bridgeMinRating {
			continue
		}
		if mm.Popularity < bridgeMinPopularity || mm.Popularity > bridgeMaxPopularity {
			continue
		}
		if _, ok := seen[mm.ID]; ok {
			continue
		}
		seen[mm.ID] = struct{}{}
		bridge = append(bridge, mm)
	}

	sort.SliceStable(bridge, func(i, j int) bool {
		return float64(len(bridge[i].Genres))*bridge[i].Rating >
			float64(len(bridge[j].Genres))*bridge[j].Rating
	})
	return bridge
}

// InjectBridgeContent runs the whole flow for one room: stall check,
// preference analysis, candidate scoring, bridge selection, then a
// tail splice into every active member's queue. Member failures are
// tolerated and counted; the run is bounded by the configured timeout.
func (u *Usecase) InjectBridgeContent(ctx context.Context, roomID model.RoomID, maxInjections int) (Report, error) {
	ctx, cancel := context.WithTimeout(ctx, u.runTimeout)
	defer cancel()

	if maxInjections <= 0 {
		maxInjections = u.maxInjections
	}

	report := Report{RoomID: roomID}

	room, err := u.RoomRepository.ByCode(ctx, roomID)
	if err != nil {
		if errors.Is(err, usecase_queue.ErrRoomNotFound) {
			return report, usecase_queue.ErrRoomNotFound
		}
		return report, errors.Join(ErrInternal, err)
	}
	if room.Status == model.StatusMatched {
		report.Refusal = "room already matched"
		return report, nil
	}

	eligible, stats, err := u.ShouldInject(ctx, room)
	if err != nil {
		return report, err
	}
	if !eligible {
		report.Refusal = refusalFor(stats)
		return report, nil
	}

	pattern, err := u.AnalyzePreferences(ctx, room)
	if err != nil {
		return report, err
	}

	candidates, err := u.Catalog.Candidates(ctx, u.candidatePool)
	if err != nil {
		return report, errors.Join(ErrInternal, err)
	}

	scored := ScoreCandidates(pattern, withoutListed(candidates, room.ContentIDs))
	metas := make([]model.MediaMeta, len(scored))
	scoreByID := make(map[uuid.UUID]float64, len(scored))
	for i, s := range scored {
		metas[i] = s.MM
		scoreByID[s.MM.ID] = s.Score
	}

	bridge := IdentifyBridgeContent(metas)
	if len(bridge) > maxInjections {
		bridge = bridge[:maxInjections]
	}
	if len(bridge) == 0 {
		report.Refusal = "no bridge candidates"
		return report, nil
	}

	members, err := u.MemberRepository.ActiveByRoom(ctx, room.ID)
	if err != nil {
		return report, errors.Join(ErrInternal, err)
	}
	report.Members = len(members)

	ids := make([]uuid.UUID, len(bridge))
	for i, mm := range bridge {
		ids[i] = mm.ID
	}

	for _, id := range ids {
		if _, err := u.RoomRepository.AppendContent(ctx, roomID, id); err != nil {
			u.logger.Error("failed to append bridge content to room pool",
				slog.String("room_id", string(roomID)),
				slog.String("media_id", id.String()),
				slog.String("error", err.Error()))
		}
	}

	for _, member := range members {
		if _, err := u.Queue.Inject(ctx, roomID, member.UserID, ids); err != nil {
			report.Failures++
			u.logger.Error("failed to inject into member queue",
				slog.String("room_id", string(roomID)),
				slog.String("user_id", member.UserID.String()),
				slog.String("error", err.Error()))
		}
	}

	for _, id := range ids {
		err := u.Attribution.RecordInjection(ctx, model.Injection{
			ID:      uuid.New(),
			RoomID:  room.ID,
			MediaID: id,
			Source:  model.InjectionSemantic,
			Score:   scoreByID[id],
		})
		if err != nil {
			u.logger.Error("failed to record injection attribution",
				slog.String("room_id", string(roomID)),
				slog.String("media_id", id.String()),
				slog.String("error", err.Error()))
		}
	}

	report.Injected = ids
	u.Notifier.NotifyContentInjected(roomID, ids)

	return report, nil
}

func refusalFor(stats model.RoomStats) string {
	switch {
	case stats.TotalVotes <= minTotalVotes:
		return fmt.Sprintf("not enough votes: %d", stats.TotalVotes)
	case stats.RecentMatches >= maxRecentMatches:
		return fmt.Sprintf("recent matches present: %d", stats.RecentMatches)
	default:
		return "match ratio is healthy"
	}
}

// Suggest adds a member-recommended item to the room pool and into the
// unvisited tail of every active member's queue.
func (u *Usecase) Suggest(ctx context.Context, roomID model.RoomID, userID uuid.UUID, mediaID uuid.UUID) error {
	room, err := u.RoomRepository.ByCode(ctx, roomID)
	if err != nil {
		if errors.Is(err, usecase_queue.ErrRoomNotFound) {
			return usecase_queue.ErrRoomNotFound
		}
		return errors.Join(ErrInternal, err)
	}
	if room.Status == model.StatusMatched {
		return ErrRoomClosed
	}

	if _, err := u.MemberRepository.ByID(ctx, room.ID, userID); err != nil {
		if errors.Is(err, usecase_queue.ErrNotAMember) {
			return usecase_queue.ErrNotAMember
		}
		return errors.Join(ErrInternal, err)
	}

	if _, err := u.Catalog.Details(ctx, mediaID); err != nil {
		if errors.Is(err, ErrMediaNotFound) {
			return ErrMediaNotFound
		}
		return errors.Join(ErrInternal, err)
	}

	for _, id := range room.ContentIDs {
		if id == mediaID {
			return ErrAlreadySuggested
		}
	}

	appended, err := u.RoomRepository.AppendContent(ctx, roomID, mediaID)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	if !appended {
		return ErrAlreadySuggested
	}

	members, err := u.MemberRepository.ActiveByRoom(ctx, room.ID)
	if err != nil {
		return errors.Join(ErrInternal, err)
	}
	for _, member := range members {
		if _, err := u.Queue.Inject(ctx, roomID, member.UserID, []uuid.UUID{mediaID}); err != nil {
			u.logger.Error("failed to splice suggestion into member queue",
				slog.String("room_id", string(roomID)),
				slog.String("user_id", member.UserID.String()),
				slog.String("error", err.Error()))
		}
	}

	err = u.Attribution.RecordInjection(ctx, model.Injection{
		ID:      uuid.New(),
		RoomID:  room.ID,
		MediaID: mediaID,
		Source:  model.InjectionSuggestion,
	})
	if err != nil {
		u.logger.Error("failed to record suggestion attribution",
			slog.String("room_id", string(roomID)),
			slog.String("media_id", mediaID.String()),
			slog.String("error", err.Error()))
	}

	u.Notifier.NotifyContentInjected(roomID, []uuid.UUID{mediaID})
	return nil
}

// RunSweep drains the stall review set, injecting where a room
// qualifies. Individual room failures never stop the sweep.
func (u *Usecase) RunSweep(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		roomID, err := u.StallSet.Pop(ctx)
		if err != nil {
			u.logger.Error("failed to pop stall set", slog.String("error", err.Error()))
			return
		}
		if roomID == model.EmptyRoomID {
			return
		}

		report, err := u.InjectBridgeContent(ctx, roomID, u.maxInjections)
		if err != nil {
			u.logger.Error("bridge injection failed",
				slog.String("room_id", string(roomID)),
				slog.String("error", err.Error()))
			continue
		}

		if report.Refusal != "" {
			u.logger.Info("bridge injection skipped",
				slog.String("room_id", string(roomID)),
				slog.String("reason", report.Refusal))
			continue
		}

		u.logger.Info("bridge content injected",
			slog.String("room_id", string(roomID)),
			slog.Int("items", len(report.Injected)),
			slog.Int("members", report.Members),
			slog.Int("failures", report.Failures))
	}
}

// Loop runs sweeps on a fixed interval until the context is cancelled.
func (u *Usecase) Loop(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			u.RunSweep(ctx)
		}
	}
}

func withoutListed(candidates []model.MediaMeta, listed []uuid.UUID) []model.MediaMeta {
	known := make(map[uuid.UUID]struct{}, len(listed))
	for _, id := range listed {
		known[id] = struct{}{}
	}

	out := make([]model.MediaMeta, 0, len(candidates))
	for _, mm := range candidates {
		if _, ok := known[mm.ID]; ok {
			continue
		}
		out = append(out, mm)
	}
	return out
}

func jaccard(a, b []string) float64 {
	setA := make(map[string]struct{}, len(a))
	for _, s := range a {
		setA[strings.ToLower(s)] = struct{}{}
	}
	setB := make(map[string]struct{}, len(b))
	for _, s := range b {
		setB[strings.ToLower(s)] = struct{}{}
	}

	intersection := 0
	for s := range setA {
		if _, ok := setB[s]; ok {
			intersection++
		}
	}
	union := len(setA) + len(setB) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenize(s string) []string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 3 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func topKeywords(freq map[string]int, limit int) []string {
	type kw struct {
		word  string
		count int
	}
	all := make([]kw, 0, len(freq))
	for word, count := range freq {
		all = append(all, kw{word, count})
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].count != all[j].count {
			return all[i].count > all[j].count
		}
		return all[i].word < all[j].word
	})

	if len(all) > limit {
		all = all[:limit]
	}
	out := make([]string, len(all))
	for i, k := range all {
		out[i] = k.word
	}
	return out
}
