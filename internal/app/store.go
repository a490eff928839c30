package app

import (
	"context"
	"fmt"

	"github.com/dtroode/flashcards-client/internal/config"
	"github.com/dtroode/flashcards-client/internal/logger"
	"github.com/dtroode/flashcards-client/internal/model"
	"github.com/dtroode/flashcards-client/internal/repository/file"
	"github.com/dtroode/flashcards-client/internal/repository/memory"
	"github.com/dtroode/flashcards-client/internal/repository/postgres"
	"github.com/dtroode/flashcards-client/internal/repository/redis"
)

func noopClose() error { return nil }

// OpenStore opens the token store selected by cfg.Store.Driver and returns a
// function releasing it.
func OpenStore(ctx context.Context, cfg *config.Config, logger *logger.Logger) (model.KeyValueStore, func() error, error) {
	switch cfg.Store.Driver {
	case config.DriverMemory:
		return memory.NewStore(), noopClose, nil

	case config.DriverFile:
		store, err := file.NewStore(cfg.Store.FilePath, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open file store: %w", err)
		}
		if cfg.Store.FileWatch {
			if err := store.Watch(ctx); err != nil {
				logger.Warn("Store: file watch disabled", "path", store.Path(), "error", err.Error())
			}
		}
		return store, store.Close, nil

	case config.DriverRedis:
		rdb, err := redis.Connect(ctx, cfg.Redis.URL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return redis.NewStore(rdb, cfg.Store.Namespace), rdb.Close, nil

	case config.DriverPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return postgres.NewSessionRepository(db, cfg.Store.Namespace), db.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}
