package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-horizon/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/habit-horizon/internal/adapters/handler/http"
	"github.com/comitanigiacomo/habit-horizon/internal/adapters/repository"
	"github.com/comitanigiacomo/habit-horizon/internal/config"
	"github.com/comitanigiacomo/habit-horizon/internal/core/domain"
	"github.com/comitanigiacomo/habit-horizon/internal/core/services"
	"github.com/comitanigiacomo/habit-horizon/internal/core/workers"

	_ "github.com/jackc/pgx/v5/stdlib"
)

type app struct {
	router  *gin.Engine
	habits  *services.HabitService
	saver   *workers.SaveWorker
	streaks *workers.StreakWorker
	closers []func() error
	logger  *zap.Logger
}

// newApp wires storage, services, workers and the router. Workers are not
// started until start is called.
func newApp(ctx context.Context, cfg *config.Config, clock func() time.Time, logger *zap.Logger) (*app, error) {
	a := &app{logger: logger}

	repo, storage, err := a.openRepository(ctx, cfg)
	if err != nil {
		a.close()
		return nil, err
	}

	deps := adapterHTTP.RouterDependencies{
		Storage:         storage,
		APIToken:        cfg.Server.APIToken,
		RateLimit:       cfg.Server.RateLimit,
		RateLimitWindow: cfg.Server.RateLimitWindow,
		Logger:          logger,
		StartTime:       clock(),
	}

	if cfg.Redis.Enabled {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			a.close()
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		logger.Info("redis connected", zap.String("host", cfg.Redis.Host), zap.Int("db", cfg.Redis.DB))

		repo = repository.NewCachedHabitRepository(repo, rdb, cfg.Redis.CacheTTL, logger)
		deps.Redis = rdb
	}

	a.saver = workers.NewSaveWorker(repo, cfg.Workers.SaveQueueSize, logger.Named("save_worker"))
	a.habits = services.NewHabitService(repo, a.saver, clock, logger.Named("habits"))
	loaded := a.habits.Load(ctx)
	logger.Info("habits loaded", zap.Int("count", loaded), zap.String("storage", string(cfg.Storage.Backend)))

	checkins := services.NewCheckInService(a.habits, logger.Named("checkins"))
	stats := services.NewStatsService(a.habits)
	a.streaks = workers.NewStreakWorker(a.habits, cfg.Workers.RolloverInterval, clock, logger.Named("streak_worker"))

	deps.HabitHandler = adapterHTTP.NewHabitHandler(a.habits, checkins, logger)
	deps.StatsHandler = adapterHTTP.NewStatsHandler(stats)
	a.router = adapterHTTP.NewRouter(deps)

	return a, nil
}

func (a *app) openRepository(ctx context.Context, cfg *config.Config) (domain.HabitRepository, adapterHTTP.Pinger, error) {
	switch cfg.Storage.Backend {
	case config.StorageMemory:
		return repository.NewInMemoryHabitRepository(), nil, nil

	case config.StoragePostgres:
		db, err := sqlx.ConnectContext(ctx, "pgx", cfg.DB.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		a.closers = append(a.closers, db.Close)

		db.SetMaxOpenConns(cfg.DB.MaxOpenConns)
		db.SetMaxIdleConns(cfg.DB.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

		repo := repository.NewPostgresHabitRepository(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			return nil, nil, err
		}
		a.logger.Info("database connected")
		return repo, repo, nil

	default:
		a.logger.Info("using habit file", zap.String("path", cfg.Storage.HabitFile))
		return repository.NewFileHabitRepository(cfg.Storage.HabitFile), nil, nil
	}
}

func (a *app) start(ctx context.Context) {
	a.saver.Start(ctx)
	a.streaks.Start(ctx)
}

// close releases connections in reverse order of opening.
func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("close failed", zap.Error(err))
		}
	}
	a.closers = nil
}
