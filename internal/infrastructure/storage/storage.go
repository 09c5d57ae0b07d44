package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"subtracker/internal/app/server/config"
	"subtracker/internal/domain/subscription"
	"subtracker/internal/domain/user"
	"subtracker/internal/infrastructure/storage/jsonfile"
	"subtracker/internal/infrastructure/storage/postgres"
	"subtracker/internal/infrastructure/storage/sqlite"
)

// Storage is what the server needs from a persistence driver.
type Storage interface {
	Users() user.Repository
	Subscriptions() subscription.Repository
	Close() error
}

var (
	_ Storage = (*jsonfile.Storage)(nil)
	_ Storage = (*sqlite.Storage)(nil)
	_ Storage = (*postgres.Storage)(nil)
)

// New opens the driver selected by cfg.Storage.Driver.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (Storage, error) {
	log.Info("opening storage", "driver", cfg.Storage.Driver)

	var (
		s   Storage
		err error
	)

	switch cfg.Storage.Driver {
	case config.DriverFile:
		s, err = jsonfile.Open(cfg.Storage.DataFile, log)
	case config.DriverSQLite:
		s, err = sqlite.Open(cfg.Storage.SQLitePath, log)
	case config.DriverPostgres:
		s, err = postgres.New(ctx, cfg.Storage.DatabaseURI, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.Storage.Driver, err)
	}

	return s, nil
}
