package badgerdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/chromafy/chromafy-server/internal/domain"
	"github.com/chromafy/chromafy-server/internal/store"
)

// CreateUser stores a new user. Returns store.ErrAlreadyExists if the ID or email is taken.
func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	return s.users.Create(ctx, user.ID, user)
}

// GetUser loads a user by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.users.Get(ctx, id)
}

// GetUserByEmail loads a user by email, ignoring case and surrounding spaces.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.users.GetByIndex(ctx, indexEmail, email)
}

// UpdateUser replaces a stored user.
func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	return s.users.Update(ctx, user.ID, user)
}

// requireOwner returns store.ErrInvalidInput when userID has no account.
func (s *Store) requireOwner(ctx context.Context, userID string) error {
	_, err := s.users.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return store.ErrInvalidInput.WithCause(fmt.Errorf("unknown user %q", userID))
	}
	return err
}
