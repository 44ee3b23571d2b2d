package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/humanbelnik/swipematch/core/internal/config"
	ws_room "github.com/humanbelnik/swipematch/core/internal/delivery/ws/room"
	infra_pg_init "github.com/humanbelnik/swipematch/core/internal/infra/postgres/init"
	infra_postgres_match "github.com/humanbelnik/swipematch/core/internal/infra/postgres/match"
	infra_postgres_media "github.com/humanbelnik/swipematch/core/internal/infra/postgres/media"
	infra_postgres_member "github.com/humanbelnik/swipematch/core/internal/infra/postgres/member"
	infra_postgres_room "github.com/humanbelnik/swipematch/core/internal/infra/postgres/room"
	infra_postgres_vote "github.com/humanbelnik/swipematch/core/internal/infra/postgres/vote"
	infra_redis_init "github.com/humanbelnik/swipematch/core/internal/infra/redis/init"
	infra_redis_lookahead "github.com/humanbelnik/swipematch/core/internal/infra/redis/lookahead"
	infra_redis_stall_set "github.com/humanbelnik/swipematch/core/internal/infra/redis/stallset"
	infra_redis_stats "github.com/humanbelnik/swipematch/core/internal/infra/redis/stats"
	"github.com/humanbelnik/swipematch/core/internal/service/dispatch"
	storage_catalog "github.com/humanbelnik/swipematch/core/internal/storage/catalog"
	storage_stats "github.com/humanbelnik/swipematch/core/internal/storage/stats"
	usecase_injector "github.com/humanbelnik/swipematch/core/internal/usecase/injector"
	usecase_queue "github.com/humanbelnik/swipematch/core/internal/usecase/queue"
)

// Standalone stall sweeper. Runs the same injector wiring as the main
// binary but without the HTTP surface, so sweeps can be scaled and
// scheduled apart from the API instances.
func main() {
	cfg := config.Load()

	redisConn := infra_redis_init.MustEstablishConn(cfg.Redis)
	pgConn := infra_pg_init.MustEstablishConn(cfg.Postgres)

	roomRepository := infra_postgres_room.New(pgConn)
	memberRepository := infra_postgres_member.New(pgConn)
	voteRepository := infra_postgres_vote.New(pgConn)
	matchRepository := infra_postgres_match.New(pgConn)
	mediaRepository := infra_postgres_media.New(pgConn)

	stallSet := infra_redis_stall_set.New(redisConn, "stall_review")
	lookaheadCache := infra_redis_lookahead.New(redisConn, "media_lookahead", 15*time.Minute)
	statsCache := infra_redis_stats.New(redisConn, "room_stats", time.Minute)

	catalog := storage_catalog.New(lookaheadCache, mediaRepository)
	roomStats := storage_stats.New(statsCache, voteRepository, matchRepository)

	// No ws clients connect here; the hub only satisfies the notifiers.
	hub := ws_room.NewHub()
	go hub.Run()

	dispatcher := dispatch.New(cfg.Dispatch.Workers, cfg.Dispatch.QueueSize, cfg.Dispatch.TaskTimeout)
	queueUC := usecase_queue.New(roomRepository, memberRepository, voteRepository, hub, dispatcher)

	injectorUC := usecase_injector.New(
		roomRepository,
		memberRepository,
		voteRepository,
		roomStats,
		catalog,
		queueUC,
		mediaRepository,
		hub,
		stallSet,
		cfg.Injector.MaxInjections,
		cfg.Injector.CandidatePool,
		cfg.Injector.RunTimeout)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injectorUC.Loop(ctx, cfg.Injector.Interval)
}
