package badgerdb

import (
	"context"
	"time"

	"github.com/chromafy/chromafy-server/internal/domain"
)

// CreateSession stores a new session for an existing user.
func (s *Store) CreateSession(ctx context.Context, session *domain.Session) error {
	if err := s.requireOwner(ctx, session.UserID); err != nil {
		return err
	}
	return s.sessions.Create(ctx, session.ID, session)
}

// GetSession loads a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (*domain.Session, error) {
	return s.sessions.Get(ctx, id)
}

// GetSessionByRefreshToken loads the session holding tokenHash.
func (s *Store) GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error) {
	return s.sessions.GetByIndex(ctx, indexRefresh, tokenHash)
}

// UpdateSession replaces a stored session, moving its refresh index if the hash changed.
func (s *Store) UpdateSession(ctx context.Context, session *domain.Session) error {
	return s.sessions.Update(ctx, session.ID, session)
}

// DeleteSession removes a session. Missing sessions are ignored.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	return s.sessions.Delete(ctx, id)
}

// DeleteExpiredSessions removes sessions whose expiry has passed.
func (s *Store) DeleteExpiredSessions(ctx context.Context) (int, error) {
	now := time.Now()

	var expired []string
	for sess, err := range s.sessions.List(ctx) {
		if err != nil {
			return 0, err
		}
		if now.After(sess.ExpiresAt) {
			expired = append(expired, sess.ID)
		}
	}

	for i, id := range expired {
		if err := s.sessions.Delete(ctx, id); err != nil {
			return i, err
		}
	}
	return len(expired), nil
}
