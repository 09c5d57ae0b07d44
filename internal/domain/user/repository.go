package user

import (
	"context"
)

// Repository persists users. Create fills in ID and returns ErrAlreadyExists for a taken email.
type Repository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByID(ctx context.Context, id int) (User, error)
}
