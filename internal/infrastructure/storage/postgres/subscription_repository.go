package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"golang.org/x/exp/slog"

	"subtracker/internal/domain/subscription"
)

const subscriptionColumns = `id, user_id, app_name, category, price::text, billing_cycle, to_char(next_billing, 'YYYY-MM-DD'), notes, created_at`

type SubscriptionRepository struct {
	db  *sql.DB
	log *slog.Logger
}

func NewSubscriptionRepository(db *sql.DB, log *slog.Logger) *SubscriptionRepository {
	return &SubscriptionRepository{
		db:  db,
		log: log.With("component", "subscription_repository"),
	}
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	const query = `
		INSERT INTO subscriptions (user_id, app_name, category, price, billing_cycle, next_billing, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		s.UserID, s.AppName, s.Category, s.Price.String(), string(s.BillingCycle),
		s.NextBilling.String(), optional(s.Notes), s.CreatedAt,
	).Scan(&s.ID)
	if err != nil {
		r.log.Error("failed to insert subscription", "user_id", s.UserID, "error", err)
		return fmt.Errorf("insert subscription: %w", err)
	}

	return nil
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID int) ([]subscription.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list subscriptions", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	defer rows.Close()

	list := make([]subscription.Subscription, 0)
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}

	return list, nil
}

func (r *SubscriptionRepository) Get(ctx context.Context, userID, id int) (subscription.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE id = $1 AND user_id = $2`

	return scanOne(r.db.QueryRowContext(ctx, query, id, userID))
}

// Update locks the row, merges the provided fields and writes the result in one transaction.
func (r *SubscriptionRepository) Update(ctx context.Context, userID, id int, f subscription.Fields) (subscription.Subscription, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	lock := `
		SELECT ` + subscriptionColumns + `
		FROM subscriptions
		WHERE id = $1 AND user_id = $2
		FOR UPDATE`

	current, err := scanOne(tx.QueryRowContext(ctx, lock, id, userID))
	if err != nil {
		return subscription.Subscription{}, err
	}
	f.ApplyTo(&current)

	const update = `
		UPDATE subscriptions
		SET app_name = $1, category = $2, price = $3, billing_cycle = $4, next_billing = $5, notes = $6
		WHERE id = $7 AND user_id = $8`

	if _, err := tx.ExecContext(ctx, update,
		current.AppName, current.Category, current.Price.String(), string(current.BillingCycle),
		current.NextBilling.String(), optional(current.Notes), id, userID,
	); err != nil {
		return subscription.Subscription{}, fmt.Errorf("update subscription: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return subscription.Subscription{}, fmt.Errorf("commit: %w", err)
	}

	return current, nil
}

func (r *SubscriptionRepository) Delete(ctx context.Context, userID, id int) error {
	const query = `DELETE FROM subscriptions WHERE id = $1 AND user_id = $2`

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete subscription: %w", err)
	}
	if n == 0 {
		return subscription.ErrNotFound
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row *sql.Row) (subscription.Subscription, error) {
	s, err := scanSubscription(row)
	if errors.Is(err, sql.ErrNoRows) {
		return subscription.Subscription{}, subscription.ErrNotFound
	}

	return s, err
}

func scanSubscription(row scanner) (subscription.Subscription, error) {
	var (
		s         subscription.Subscription
		price     string
		cycle     string
		next      string
		notes     sql.NullString
		createdAt time.Time
	)

	if err := row.Scan(&s.ID, &s.UserID, &s.AppName, &s.Category, &price, &cycle, &next, &notes, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s, err
		}
		return s, fmt.Errorf("scan subscription: %w", err)
	}

	m, err := subscription.ParseMoney(price)
	if err != nil {
		return s, err
	}
	d, err := subscription.ParseDate(next)
	if err != nil {
		return s, err
	}

	s.Price = m
	s.BillingCycle = subscription.BillingCycle(cycle)
	s.NextBilling = d
	s.Notes = notes.String
	s.CreatedAt = createdAt.UTC()

	return s, nil
}
