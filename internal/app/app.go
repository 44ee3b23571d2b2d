package app

import (
	"context"
	"time"

	"github.com/humanbelnik/swipematch/core/internal/config"
	http_init "github.com/humanbelnik/swipematch/core/internal/delivery/http/init"
	http_interaction "github.com/humanbelnik/swipematch/core/internal/delivery/http/interaction"
	http_access_middleware "github.com/humanbelnik/swipematch/core/internal/delivery/http/middleware/access"
	http_swagger "github.com/humanbelnik/swipematch/core/internal/delivery/http/swagger"
	ws_room "github.com/humanbelnik/swipematch/core/internal/delivery/ws/room"
	analytics_client "github.com/humanbelnik/swipematch/core/internal/infra/analytics"
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
	usecase_consensus "github.com/humanbelnik/swipematch/core/internal/usecase/consensus"
	usecase_injector "github.com/humanbelnik/swipematch/core/internal/usecase/injector"
	usecase_match "github.com/humanbelnik/swipematch/core/internal/usecase/match"
	usecase_queue "github.com/humanbelnik/swipematch/core/internal/usecase/queue"
	usecase_vote "github.com/humanbelnik/swipematch/core/internal/usecase/vote"
)

func Go(cfg *config.Config) {

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

	dispatcher := dispatch.New(cfg.Dispatch.Workers, cfg.Dispatch.QueueSize, cfg.Dispatch.TaskTimeout)

	hub := ws_room.NewHub()
	go hub.Run()

	auditor := analytics_client.New(cfg.Analytics.Servers)

	queueUC := usecase_queue.New(roomRepository, memberRepository, voteRepository, hub, dispatcher)
	consensusUC := usecase_consensus.New(roomRepository, voteRepository, memberRepository)
	matchUC := usecase_match.New(matchRepository)
	voteUC := usecase_vote.New(
		roomRepository,
		memberRepository,
		voteRepository,
		consensusUC,
		matchUC,
		hub,
		auditor,
		catalog,
		stallSet,
		dispatcher,
		10 /* stall set touch on every _ accepted vote */)
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

	if cfg.Injector.Interval > 0 {
		go injectorUC.Loop(context.Background(), cfg.Injector.Interval)
	}

	controllerPool := http_init.NewControllerPool()
	controllerPool.Use(http_access_middleware.ReadOnlyGuard(cfg.HTTP.Mode))
	controllerPool.Add(http_swagger.New())
	controllerPool.Add(http_interaction.New(voteUC, queueUC, consensusUC, injectorUC))
	controllerPool.Add(ws_room.NewController(hub))

	controllerPool.Register()
	controllerPool.RunAll(cfg.HTTP.Port)
}
