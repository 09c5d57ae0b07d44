package sqlite

import (
	"fmt"
	"time"

	"golang.org/x/exp/slog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"subtracker/internal/domain/subscription"
	"subtracker/internal/domain/user"
)

type userRow struct {
	ID           int    `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Name         *string
	CreatedAt    time.Time
}

func (userRow) TableName() string { return "users" }

type subscriptionRow struct {
	ID           int    `gorm:"primaryKey;autoIncrement"`
	UserID       int    `gorm:"index;not null"`
	AppName      string `gorm:"not null"`
	Category     string `gorm:"not null"`
	Price        string `gorm:"type:text;not null"`
	BillingCycle string `gorm:"not null"`
	NextBilling  string `gorm:"type:text;not null"`
	Notes        *string
	CreatedAt    time.Time `gorm:"index"`
}

func (subscriptionRow) TableName() string { return "subscriptions" }

// Storage is the embedded transactional store.
type Storage struct {
	db  *gorm.DB
	log *slog.Logger
}

func Open(path string, log *slog.Logger) (*Storage, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on&_journal_mode=WAL"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := db.AutoMigrate(&userRow{}, &subscriptionRow{}); err != nil {
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}

	return &Storage{
		db:  db,
		log: log.With("component", "sqlite_storage", "path", path),
	}, nil
}

func (s *Storage) Users() user.Repository {
	return &UserRepository{db: s.db}
}

func (s *Storage) Subscriptions() subscription.Repository {
	return &SubscriptionRepository{db: s.db}
}

func (s *Storage) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func optional(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
