// Business Suite API server.
//
// @title        Business Suite API
// @version      1.0
// @description  Role-based business management API: auth, messaging, projects, service requests.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tejasoft/business-suite/internal/api"
	"github.com/tejasoft/business-suite/internal/core/service"
	"github.com/tejasoft/business-suite/internal/infrastructure/config"
	mongodb "github.com/tejasoft/business-suite/internal/infrastructure/db/mongo"
	redisdb "github.com/tejasoft/business-suite/internal/infrastructure/db/redis"
	"github.com/tejasoft/business-suite/internal/infrastructure/queue"
	"github.com/tejasoft/business-suite/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		boot := logger.Init(logger.Options{})
		boot.Fatal().Err(err).Msg("loading configuration")
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: !cfg.Production(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnecting mongodb")
		}
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to redis")
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("closing redis")
		}
	}()

	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensuring user indexes")
	}
	if err := mongodb.NewMessageRepository(db).EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("ensuring message indexes")
	}

	// Activity pipeline: HTTP layer records events, sharded workers persist
	// them with Redis-backed idempotency.
	activityService := service.NewActivityService(
		mongodb.NewActivityRepository(db),
		redisdb.NewDedupChecker(rdb),
		logger.Component("activity"),
	)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, logger.Component("dispatcher"))
	dispatcher.Start(ctx)

	e := api.NewRouter(client, db, rdb, cfg, dispatcher, logger.Component("http"))

	go func() {
		addr := ":" + cfg.Port
		log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		os.Exit(1)
	}
	log.Info().Msg("server stopped cleanly")
}
