package main

import (
	"context"
	"fmt"

	"github.com/JonnyWalker81/wellspring/backend/internal/config"
	"github.com/JonnyWalker81/wellspring/backend/internal/logger"
	"github.com/JonnyWalker81/wellspring/backend/internal/models"
	"github.com/JonnyWalker81/wellspring/backend/internal/repository"
	"github.com/JonnyWalker81/wellspring/backend/pkg/supabase"
)

// openStore opens the configured record store. Network-backed stores are
// wrapped in a circuit breaker when storage.breaker.enabled is set.
func openStore(ctx context.Context, c *config.Config, log logger.Logger) (repository.RecordStore, error) {
	var (
		store  repository.RecordStore
		remote bool
	)

	loc, err := c.Location()
	if err != nil {
		return nil, err
	}

	switch c.Storage.Driver {
	case config.DriverFile:
		store, err = repository.NewFileRepository(c.Storage.Path, loc)
	case config.DriverSQLite:
		store, err = repository.NewSQLiteRepository(c.Storage.Path, loc)
	case config.DriverPostgres:
		store, err = repository.NewPostgresRepository(ctx, c.Storage.DSN, loc)
		remote = true
	case config.DriverSupabase:
		client := supabase.NewClient(c.Storage.Supabase.URL, c.Storage.Supabase.ServiceKey)
		store = repository.NewSupabaseRepository(client, loc)
		remote = true
	case config.DriverMemory:
		store = repository.NewMemoryRepository(models.NewSnapshot())
	default:
		return nil, fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", c.Storage.Driver, err)
	}

	log.Info("storage opened",
		logger.Backend(c.Storage.Driver),
		logger.Bool("circuit_breaker", remote && c.Storage.Breaker.Enabled),
	)

	if remote && c.Storage.Breaker.Enabled {
		store = repository.NewBreakerRepository(store, repository.BreakerConfig{
			MaxFailures: c.Storage.Breaker.MaxFailures,
			Timeout:     c.Storage.Breaker.Timeout,
		}, log)
	}
	return store, nil
}
