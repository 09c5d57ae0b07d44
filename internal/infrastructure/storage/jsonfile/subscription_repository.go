package jsonfile

import (
	"context"

	"subtracker/internal/domain/subscription"
)

type SubscriptionRepository struct {
	storage *Storage
}

func (r *SubscriptionRepository) Create(_ context.Context, s *subscription.Subscription) error {
	return r.storage.commit(func(doc *document) error {
		s.ID = nextSubscriptionID(doc.Subscriptions)
		doc.Subscriptions = append(doc.Subscriptions, newSubscriptionRecord(*s))
		return nil
	})
}

func (r *SubscriptionRepository) ListByUser(_ context.Context, userID int) ([]subscription.Subscription, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	list := make([]subscription.Subscription, 0)
	for _, rec := range r.storage.doc.Subscriptions {
		if rec.UserID == userID {
			list = append(list, rec.model())
		}
	}
	subscription.SortNewestFirst(list)

	return list, nil
}

func (r *SubscriptionRepository) Get(_ context.Context, userID, id int) (subscription.Subscription, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	for _, rec := range r.storage.doc.Subscriptions {
		if rec.ID == id && rec.UserID == userID {
			return rec.model(), nil
		}
	}

	return subscription.Subscription{}, subscription.ErrNotFound
}

func (r *SubscriptionRepository) Update(_ context.Context, userID, id int, f subscription.Fields) (subscription.Subscription, error) {
	var updated subscription.Subscription

	err := r.storage.commit(func(doc *document) error {
		for i, rec := range doc.Subscriptions {
			if rec.ID != id || rec.UserID != userID {
				continue
			}

			updated = rec.model()
			f.ApplyTo(&updated)
			doc.Subscriptions[i] = newSubscriptionRecord(updated)

			return nil
		}

		return subscription.ErrNotFound
	})

	return updated, err
}

func (r *SubscriptionRepository) Delete(_ context.Context, userID, id int) error {
	return r.storage.commit(func(doc *document) error {
		for i, rec := range doc.Subscriptions {
			if rec.ID == id && rec.UserID == userID {
				doc.Subscriptions = append(doc.Subscriptions[:i], doc.Subscriptions[i+1:]...)
				return nil
			}
		}

		return subscription.ErrNotFound
	})
}

func newSubscriptionRecord(s subscription.Subscription) subscriptionRecord {
	return subscriptionRecord{
		ID:           s.ID,
		UserID:       s.UserID,
		AppName:      s.AppName,
		Category:     s.Category,
		Price:        s.Price,
		BillingCycle: string(s.BillingCycle),
		NextBilling:  s.NextBilling,
		Notes:        optional(s.Notes),
		CreatedAt:    s.CreatedAt,
	}
}

func (rec subscriptionRecord) model() subscription.Subscription {
	return subscription.Subscription{
		ID:           rec.ID,
		UserID:       rec.UserID,
		AppName:      rec.AppName,
		Category:     rec.Category,
		Price:        rec.Price,
		BillingCycle: subscription.BillingCycle(rec.BillingCycle),
		NextBilling:  rec.NextBilling,
		Notes:        deref(rec.Notes),
		CreatedAt:    rec.CreatedAt,
	}
}
