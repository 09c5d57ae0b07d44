package subscription

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	Create(ctx context.Context, userID int, f Fields) (Subscription, error)
	List(ctx context.Context, userID int) ([]Subscription, error)
	Find(ctx context.Context, userID, id int) (Subscription, error)
	Update(ctx context.Context, userID, id int, f Fields) (Subscription, error)
	Delete(ctx context.Context, userID, id int) error
	Stats(ctx context.Context, userID int) (Stats, error)
}

type Service struct {
	repo Repository
	now  func() time.Time
	log  *slog.Logger
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
		log:  log.With("component", "subscription_service"),
	}
}

func errorf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidInput}, args...)...)
}

func (s *Service) Create(ctx context.Context, userID int, f Fields) (Subscription, error) {
	if missing := f.Missing(); len(missing) > 0 {
		return Subscription{}, errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	if err := f.Validate(); err != nil {
		return Subscription{}, err
	}

	sub := Subscription{
		UserID:    userID,
		CreatedAt: s.now().UTC(),
	}
	f.ApplyTo(&sub)

	if err := s.repo.Create(ctx, &sub); err != nil {
		return Subscription{}, fmt.Errorf("create subscription: %w", err)
	}

	s.log.Debug("subscription created", "user_id", userID, "id", sub.ID)

	return sub, nil
}

func (s *Service) List(ctx context.Context, userID int) ([]Subscription, error) {
	list, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list subscriptions: %w", err)
	}
	if list == nil {
		list = []Subscription{}
	}

	return list, nil
}

func (s *Service) Find(ctx context.Context, userID, id int) (Subscription, error) {
	sub, err := s.repo.Get(ctx, userID, id)
	if err != nil {
		return Subscription{}, wrapRepoErr("find subscription", err)
	}

	return sub, nil
}

func (s *Service) Update(ctx context.Context, userID, id int, f Fields) (Subscription, error) {
	if err := f.Validate(); err != nil {
		return Subscription{}, err
	}

	sub, err := s.repo.Update(ctx, userID, id, f)
	if err != nil {
		return Subscription{}, wrapRepoErr("update subscription", err)
	}

	s.log.Debug("subscription updated", "user_id", userID, "id", id)

	return sub, nil
}

func (s *Service) Delete(ctx context.Context, userID, id int) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return wrapRepoErr("delete subscription", err)
	}

	s.log.Debug("subscription deleted", "user_id", userID, "id", id)

	return nil
}

func (s *Service) Stats(ctx context.Context, userID int) (Stats, error) {
	list, err := s.List(ctx, userID)
	if err != nil {
		return Stats{}, err
	}

	return Summarize(list), nil
}

func wrapRepoErr(op string, err error) error {
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}

	return fmt.Errorf("%s: %w", op, err)
}
