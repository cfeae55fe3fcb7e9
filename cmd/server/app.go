package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/donmarco3/Book-Brain/internal/api"
	"github.com/donmarco3/Book-Brain/internal/config"
	"github.com/donmarco3/Book-Brain/internal/domain/activity"
	"github.com/donmarco3/Book-Brain/internal/events"
	"github.com/donmarco3/Book-Brain/internal/platform/auth"
	"github.com/donmarco3/Book-Brain/internal/platform/memory"
	"github.com/donmarco3/Book-Brain/internal/platform/postgres"
	bbredis "github.com/donmarco3/Book-Brain/internal/platform/redis"
	"github.com/donmarco3/Book-Brain/internal/service"
	"github.com/donmarco3/Book-Brain/internal/store"
	"github.com/redis/go-redis/v9"
)

const defaultStatsCacheTTL = 30 * time.Second

// application holds the wired dependencies of a running server.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	redis    *redis.Client
	store    store.Store
	tokens   auth.TokenService
	services api.Services
}

// newApplication connects the configured backends and builds the service
// layer. Callers must call cleanup when done.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{config: cfg, logger: logger}

	if err := app.openStore(ctx); err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		app.cleanup()
		return nil, fmt.Errorf("failed to create token service: %w", err)
	}
	app.tokens = tokens

	cache, err := app.statsCache(ctx)
	if err != nil {
		app.cleanup()
		return nil, err
	}

	if err := app.buildServices(cache); err != nil {
		app.cleanup()
		return nil, err
	}
	return app, nil
}

func (app *application) openStore(ctx context.Context) error {
	switch app.config.Database.Driver {
	case config.DriverMemory:
		app.logger.Warn("using in-memory store; data is lost on shutdown")
		app.store = memory.NewStore()
		return nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, app.config.Database, app.logger)
		if err != nil {
			return err
		}
		if err := postgres.Migrate(ctx, db, postgres.MigrateUp, app.logger); err != nil {
			_ = db.Close()
			return err
		}
		app.db = db
		app.store = postgres.NewStore(db, app.logger)
		return nil

	default:
		return fmt.Errorf("unsupported database driver %q", app.config.Database.Driver)
	}
}

// statsCache returns the Redis cache when a URL is configured and a no-op
// cache otherwise.
func (app *application) statsCache(ctx context.Context) (service.StatsCache, error) {
	if app.config.Cache.RedisURL == "" {
		return service.NopStatsCache{}, nil
	}

	client, err := bbredis.Connect(ctx, app.config.Cache.RedisURL, bbredis.DefaultConnectOptions(), app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	app.redis = client

	ttl := time.Duration(app.config.Stats.CacheTTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = defaultStatsCacheTTL
	}
	return bbredis.NewStatsCache(client, ttl, app.logger), nil
}

func (app *application) buildServices(cache service.StatsCache) error {
	loc, err := time.LoadLocation(app.config.Stats.Timezone)
	if err != nil {
		return fmt.Errorf("invalid stats timezone %q: %w", app.config.Stats.Timezone, err)
	}

	emitter := events.NewInMemoryEventEmitter(app.logger)
	emitter.RegisterHandler(service.NewStatsCacheInvalidator(cache, app.logger))

	st := app.store
	svc := &app.services
	if svc.Books, err = service.NewBookService(st, emitter, app.logger); err != nil {
		return err
	}
	if svc.Notes, err = service.NewNoteService(st, emitter, app.logger); err != nil {
		return err
	}
	if svc.Promotions, err = service.NewPromotionService(st, emitter, app.logger); err != nil {
		return err
	}
	if svc.Cards, err = service.NewCardService(st, emitter, app.logger); err != nil {
		return err
	}
	if svc.Buckets, err = service.NewBucketService(st, emitter, app.logger); err != nil {
		return err
	}
	if svc.Settings, err = service.NewSettingsService(st, emitter, app.logger); err != nil {
		return err
	}
	if svc.Stats, err = service.NewStatsService(st, cache, activity.NewCalendar(loc), app.logger); err != nil {
		return err
	}
	return nil
}

func (app *application) router() http.Handler {
	return api.NewRouter(app.services, app.tokens, app.config.Server, app.logger)
}

// cleanup releases backend connections.
func (app *application) cleanup() {
	var errs []error
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
		app.redis = nil
	}
	if app.db != nil {
		errs = append(errs, app.db.Close())
		app.db = nil
	}
	if err := errors.Join(errs...); err != nil {
		app.logger.Error("failed to close backends", slog.String("error", err.Error()))
	}
}
