package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/learnhub/learnhub-client/internal/api/metrics"
	"github.com/learnhub/learnhub-client/internal/client"
	"github.com/learnhub/learnhub-client/internal/core/ports"
	"github.com/learnhub/learnhub-client/internal/core/service"
	"github.com/learnhub/learnhub-client/internal/guard"
	"github.com/learnhub/learnhub-client/internal/infrastructure/config"
	"github.com/learnhub/learnhub-client/internal/storage"
	"github.com/learnhub/learnhub-client/pkg/logger"
)

// app bundles the wired dependency graph shared by every subcommand:
// config → logger → storage → client → session → guard.
type app struct {
	cfg     *config.Config
	log     zerolog.Logger
	storage ports.SessionStorage
	client  *client.Client
	session *service.SessionService
	guard   *guard.Guard

	redis *redis.Client
}

func newApp(ctx context.Context) (*app, error) {
	// Optional .env file; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	a := &app{cfg: cfg, log: log}

	switch cfg.Storage.Backend {
	case "memory":
		a.storage = storage.NewMemory()
	case "redis":
		rdb, err := storage.Connect(ctx, storage.RedisConfig{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		a.redis = rdb
		a.storage = storage.NewRedis(rdb)
	case "file":
		a.storage = storage.NewFile(cfg.Storage.StateFile)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}

	// The expiry hook closes over the app so it reaches the session service
	// constructed below; the client only issues requests after wiring is done.
	a.client = client.New(client.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Storage: a.storage,
		OnAuthExpired: func() {
			metrics.SessionResetsTotal.WithLabelValues("auth_expired").Inc()
			log.Warn().Msg("authorization expired, session cleared")
			a.session.Invalidate()
		},
		Logger: log,
	})

	a.session = service.NewSessionService(a.client, a.storage, log)
	a.guard = guard.New(a.session, a.storage, guard.Routes(), log)

	return a, nil
}

func (a *app) Close() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
