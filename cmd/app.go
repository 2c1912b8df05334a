package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"brain/config"
	"brain/internal/database"
	"brain/internal/dlock"
	"brain/internal/dlock/pgstore"
	"brain/internal/dlock/redisstore"
	"brain/internal/graph"

	"github.com/jackc/pgx/v5/pgxpool"
)

// app holds the storage shared by every command. Which stores are set depends
// on the configured backend.
type app struct {
	logger *slog.Logger
	config *config.Config
	pool   *pgxpool.Pool
	store  dlock.Store
	repo   graph.Repository

	closers []func()
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
}

// loadApp reads the configuration and connects to the configured backend.
func loadApp(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	a := &app{
		logger: newLogger(cfg.LogLevel),
		config: cfg,
	}

	if err := a.connect(ctx); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) connect(ctx context.Context) error {
	switch a.config.StoreBackend {
	case config.BackendMemory:
		a.store = dlock.NewInMemoryStore()
		a.repo = graph.NewInMemoryRepository()
		a.logger.Warn("Using in-memory storage; the lease only excludes callers in this process")
		return nil

	case config.BackendPostgres, config.BackendRedis:
		pool, err := database.NewPostgresPool(ctx, a.logger, a.config.DatabaseURL)
		if err != nil {
			return err
		}
		a.pool = pool
		a.closers = append(a.closers, pool.Close)
		a.repo = graph.NewPostgresRepository(pool)

		if a.config.StoreBackend == config.BackendPostgres {
			a.store = pgstore.NewPostgresStore(pool)
			return nil
		}

		store, err := redisstore.NewRedisStoreFromURL(a.config.RedisURL)
		if err != nil {
			return err
		}
		a.closers = append(a.closers, func() {
			if err := store.Close(); err != nil {
				a.logger.Warn("Failed to close redis client", "error", err)
			}
		})
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("failed to reach redis: %w", err)
		}
		a.store = store
		return nil

	default:
		return fmt.Errorf("unknown store backend %q", a.config.StoreBackend)
	}
}

// leaseManager builds a manager for resourceID with the configured lease policy.
func (a *app) leaseManager(resourceID string) (*dlock.LeaseManager, error) {
	return dlock.NewLeaseManager(a.logger, a.store, resourceID,
		dlock.WithDefaults(
			dlock.WithTimeout(a.config.Lock.Timeout),
			dlock.WithMaxAttempts(a.config.Lock.MaxAttempts),
			dlock.WithRetryDelay(a.config.Lock.RetryDelay),
		),
	)
}

// Close releases connections in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}
