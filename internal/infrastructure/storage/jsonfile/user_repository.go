package jsonfile

import (
	"context"

	"subtracker/internal/domain/user"
)

type UserRepository struct {
	storage *Storage
}

func (r *UserRepository) Create(_ context.Context, u *user.User) error {
	return r.storage.commit(func(doc *document) error {
		for _, existing := range doc.Users {
			if existing.Email == u.Email {
				return user.ErrAlreadyExists
			}
		}

		u.ID = nextUserID(doc.Users)
		doc.Users = append(doc.Users, userRecord{
			ID:        u.ID,
			Email:     u.Email,
			Password:  u.PasswordHash,
			Name:      optional(u.Name),
			CreatedAt: u.CreatedAt,
		})

		return nil
	})
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (user.User, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	for _, rec := range r.storage.doc.Users {
		if rec.Email == email {
			return rec.model(), nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (r *UserRepository) FindByID(_ context.Context, id int) (user.User, error) {
	r.storage.mu.RLock()
	defer r.storage.mu.RUnlock()

	for _, rec := range r.storage.doc.Users {
		if rec.ID == id {
			return rec.model(), nil
		}
	}

	return user.User{}, user.ErrNotFound
}

func (rec userRecord) model() user.User {
	return user.User{
		ID:           rec.ID,
		Email:        rec.Email,
		PasswordHash: rec.Password,
		Name:         deref(rec.Name),
		CreatedAt:    rec.CreatedAt,
	}
}
