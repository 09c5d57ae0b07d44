package subscription

import "context"

// Repository scopes every lookup by owner. A record owned by someone else is reported as ErrNotFound.
type Repository interface {
	Create(ctx context.Context, s *Subscription) error
	ListByUser(ctx context.Context, userID int) ([]Subscription, error)
	Get(ctx context.Context, userID, id int) (Subscription, error)
	Update(ctx context.Context, userID, id int, f Fields) (Subscription, error)
	Delete(ctx context.Context, userID, id int) error
}
