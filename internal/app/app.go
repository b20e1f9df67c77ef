// Package app assembles stores, caches, generation backends and services
// from a validated config. Both binaries build on it.
package app

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/gorm"

	"reviewdesk/internal/cache"
	"reviewdesk/internal/classify"
	"reviewdesk/internal/config"
	"reviewdesk/internal/llm"
	"reviewdesk/internal/logger"
	"reviewdesk/internal/repository"
	"reviewdesk/internal/service"
	"reviewdesk/internal/transport/ws"
)

const pingTimeout = 5 * time.Second

type App struct {
	Config *config.Config
	Log    *logger.Logger

	FeedbackRepo *repository.CachedFeedbackRepo

	AuthService      *service.AuthService
	FeedbackService  *service.FeedbackService
	DashboardService *service.DashboardService
	WSHub            *ws.Hub

	closers []func(ctx context.Context) error
}

// New wires every component. On error, anything already opened is closed.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	a := &App{Config: cfg, Log: log}
	if err := a.build(ctx); err != nil {
		a.Close(context.Background())
		return nil, err
	}
	return a, nil
}

func (a *App) build(ctx context.Context) error {
	cfg, log := a.Config, a.Log

	store, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	listCache, err := a.openCache(ctx)
	if err != nil {
		return err
	}
	a.FeedbackRepo = repository.NewCachedFeedbackRepo(store, listCache, log)

	rules := classify.DefaultRules()
	if cfg.ClassifierRulesFile != "" {
		rules, err = classify.LoadRules(cfg.ClassifierRulesFile)
		if err != nil {
			return err
		}
		log.Info("classifier rules loaded", "path", cfg.ClassifierRulesFile, "threshold", rules.Threshold, "keywords", len(rules.Keywords))
	}

	userModel, err := a.openBackend(ctx, cfg.AI.Models.User)
	if err != nil {
		return err
	}
	adminModel := userModel
	if cfg.AI.Models.Admin != cfg.AI.Models.User {
		adminModel, err = a.openBackend(ctx, cfg.AI.Models.Admin)
		if err != nil {
			return err
		}
	}
	log.Info("generation backends ready", "user", userModel.Name(), "admin", adminModel.Name())

	a.WSHub = ws.NewHub(log)
	a.closers = append(a.closers, func(context.Context) error {
		a.WSHub.Stop()
		return nil
	})

	a.AuthService = service.NewAuthService(cfg.Staff)
	a.DashboardService = service.NewDashboardService(a.FeedbackRepo)
	a.FeedbackService = service.NewFeedbackService(
		classify.New(rules),
		service.NewReplyService(userModel, log),
		service.NewInsightService(adminModel, log),
		a.FeedbackRepo,
		log,
		service.FeedbackOptions{
			Async:           cfg.FinalizeAsync,
			FinalizeTimeout: cfg.FinalizeTimeout,
		},
	)
	// Inject broadcaster (wsHub implements service.Broadcaster)
	a.FeedbackService.SetBroadcaster(a.WSHub)

	return nil
}

// Close drains background finalizations, then releases resources in reverse order
func (a *App) Close(ctx context.Context) {
	if a.FeedbackService != nil {
		if err := a.FeedbackService.Wait(ctx); err != nil {
			a.Log.Warn("pending feedback not finalized before shutdown", "error", err)
		}
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			a.Log.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

func (a *App) openStore(ctx context.Context) (repository.FeedbackRepo, error) {
	cfg := a.Config
	switch cfg.StoreDriver {
	case config.StoreMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
		}
		a.closers = append(a.closers, client.Disconnect)

		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
		}
		a.Log.Info("connected to MongoDB", "db", cfg.MongoDB)
		return repository.NewMongoFeedbackRepo(client.Database(cfg.MongoDB)), nil

	case config.StoreSQLite, config.StorePostgres:
		var db *gorm.DB
		var err error
		if cfg.StoreDriver == config.StoreSQLite {
			db, err = repository.OpenSQLite(cfg.SQLitePath, a.Log)
		} else {
			db, err = repository.OpenPostgres(cfg.PostgresDSN, a.Log)
		}
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return sqlDB.Close() })
		a.Log.Info("connected to SQL store", "driver", cfg.StoreDriver)
		return repository.NewSQLFeedbackRepo(db)

	case config.StoreBolt:
		repo, err := repository.OpenBoltFeedbackRepo(cfg.BoltPath)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return repo.Close() })
		a.Log.Info("opened bolt store", "path", cfg.BoltPath)
		return repo, nil

	case config.StoreMemory:
		a.Log.Warn("using in-memory feedback store; records are lost on restart")
		return repository.NewMemoryFeedbackRepo(), nil

	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func (a *App) openCache(ctx context.Context) (cache.FeedbackListCache, error) {
	cfg := a.Config
	if cfg.RedisURI == "" {
		return cache.NewMemoryFeedbackListCache(cfg.CacheTTL), nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr(),
	})
	a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if _, err := rdb.Ping(pingCtx).Result(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis: %w", err)
	}
	a.Log.Info("connected to Redis", "addr", cfg.RedisAddr(), "ttl", cfg.CacheTTL.String())
	return cache.NewFeedbackListCache(rdb, cfg.CacheTTL), nil
}

func (a *App) openBackend(ctx context.Context, model string) (llm.Backend, error) {
	backend, err := llm.New(ctx, a.Config.AI, model, a.Log)
	if err != nil {
		return nil, fmt.Errorf("init %s backend: %w", a.Config.AI.Provider, err)
	}
	if c, ok := backend.(io.Closer); ok {
		a.closers = append(a.closers, func(context.Context) error { return c.Close() })
	}
	return backend, nil
}
