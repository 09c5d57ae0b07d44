package sqlite

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"subtracker/internal/domain/subscription"
)

type SubscriptionRepository struct {
	db *gorm.DB
}

func (r *SubscriptionRepository) Create(ctx context.Context, s *subscription.Subscription) error {
	row := newRow(*s)
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert subscription: %w", err)
	}
	s.ID = row.ID

	return nil
}

func (r *SubscriptionRepository) ListByUser(ctx context.Context, userID int) ([]subscription.Subscription, error) {
	var rows []subscriptionRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("select subscriptions: %w", err)
	}

	list := make([]subscription.Subscription, 0, len(rows))
	for _, row := range rows {
		s, err := row.model()
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}

	return list, nil
}

func (r *SubscriptionRepository) Get(ctx context.Context, userID, id int) (subscription.Subscription, error) {
	row, err := findOwned(r.db.WithContext(ctx), userID, id)
	if err != nil {
		return subscription.Subscription{}, err
	}

	return row.model()
}

// Update reads, merges and writes inside one transaction.
func (r *SubscriptionRepository) Update(ctx context.Context, userID, id int, f subscription.Fields) (subscription.Subscription, error) {
	var updated subscription.Subscription

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := findOwned(tx, userID, id)
		if err != nil {
			return err
		}

		current, err := row.model()
		if err != nil {
			return err
		}
		f.ApplyTo(&current)

		next := newRow(current)
		if err := tx.Save(&next).Error; err != nil {
			return fmt.Errorf("update subscription: %w", err)
		}
		updated = current

		return nil
	})

	return updated, err
}

func (r *SubscriptionRepository) Delete(ctx context.Context, userID, id int) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&subscriptionRow{})
	if res.Error != nil {
		return fmt.Errorf("delete subscription: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return subscription.ErrNotFound
	}

	return nil
}

func findOwned(db *gorm.DB, userID, id int) (subscriptionRow, error) {
	var row subscriptionRow
	if err := db.Where("id = ? AND user_id = ?", id, userID).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return row, subscription.ErrNotFound
		}
		return row, fmt.Errorf("select subscription: %w", err)
	}

	return row, nil
}

func newRow(s subscription.Subscription) subscriptionRow {
	return subscriptionRow{
		ID:           s.ID,
		UserID:       s.UserID,
		AppName:      s.AppName,
		Category:     s.Category,
		Price:        s.Price.String(),
		BillingCycle: string(s.BillingCycle),
		NextBilling:  s.NextBilling.String(),
		Notes:        optional(s.Notes),
		CreatedAt:    s.CreatedAt,
	}
}

func (row subscriptionRow) model() (subscription.Subscription, error) {
	price, err := subscription.ParseMoney(row.Price)
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("subscription %d: %w", row.ID, err)
	}
	next, err := subscription.ParseDate(row.NextBilling)
	if err != nil {
		return subscription.Subscription{}, fmt.Errorf("subscription %d: %w", row.ID, err)
	}

	return subscription.Subscription{
		ID:           row.ID,
		UserID:       row.UserID,
		AppName:      row.AppName,
		Category:     row.Category,
		Price:        price,
		BillingCycle: subscription.BillingCycle(row.BillingCycle),
		NextBilling:  next,
		Notes:        deref(row.Notes),
		CreatedAt:    row.CreatedAt,
	}, nil
}
