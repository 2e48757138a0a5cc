// Package store opens the season repository selected by configuration.
package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/cropbudget/internal/config"
	"github.com/mamadbah2/cropbudget/internal/repository"
	"github.com/mamadbah2/cropbudget/internal/repository/memory"
	"github.com/mamadbah2/cropbudget/internal/repository/mongodb"
	"github.com/mamadbah2/cropbudget/internal/repository/sqlite"
)

// Open connects the configured season store.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.SeasonRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Storage.Driver {
	case config.DriverMongo:
		repo, err := mongodb.NewSeasonRepository(ctx, cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			return nil, fmt.Errorf("open mongodb store: %w", err)
		}
		logger.Info("season store ready", zap.String("driver", config.DriverMongo), zap.String("db", cfg.MongoDB.DBName))
		return repo, nil
	case config.DriverSQLite:
		repo, err := sqlite.NewSeasonRepository(cfg.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("season store ready", zap.String("driver", config.DriverSQLite), zap.String("path", cfg.SQLite.Path))
		return repo, nil
	case config.DriverMemory:
		logger.Warn("season store is in memory, data is lost on exit")
		return memory.NewSeasonRepository(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
