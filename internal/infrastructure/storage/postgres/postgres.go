package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// registers the "pgx" database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/exp/slog"

	"subtracker/internal/domain/subscription"
	"subtracker/internal/domain/user"
	"subtracker/internal/infrastructure/migration"
)

type Storage struct {
	db  *sql.DB
	log *slog.Logger
}

// New connects, applies pending migrations and returns the store. databaseURI must be a postgres:// URL.
func New(ctx context.Context, databaseURI string, log *slog.Logger) (*Storage, error) {
	db, err := sql.Open("pgx", databaseURI)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := migration.NewMigration(databaseURI, migration.DefaultEngine).Up(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return NewWithDB(db, log), nil
}

// NewWithDB wraps an already opened handle, e.g. a sqlmock connection.
func NewWithDB(db *sql.DB, log *slog.Logger) *Storage {
	return &Storage{
		db:  db,
		log: log.With("component", "postgres_storage"),
	}
}

func (s *Storage) Users() user.Repository {
	return NewUserRepository(s.db, s.log)
}

func (s *Storage) Subscriptions() subscription.Repository {
	return NewSubscriptionRepository(s.db, s.log)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func optional(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
