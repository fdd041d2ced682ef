// Package store defines the persistence port used by the services. The badgerdb and
// sqlite packages implement it.
package store

import (
	"context"

	"github.com/chromafy/chromafy-server/internal/domain"
)

// UserStore persists accounts. Emails are unique case-insensitively.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
}

// SessionStore persists refresh-token sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	// DeleteExpiredSessions removes every expired session and returns how many went.
	DeleteExpiredSessions(ctx context.Context) (int, error)
}

// PaletteStore persists saved palettes.
type PaletteStore interface {
	CreatePalette(ctx context.Context, palette *domain.SavedPalette) error
	GetPalette(ctx context.Context, id string) (*domain.SavedPalette, error)
	// ListUserPalettes returns the user's palettes newest first.
	ListUserPalettes(ctx context.Context, userID string) ([]*domain.SavedPalette, error)
	ListAllPalettes(ctx context.Context) ([]*domain.SavedPalette, error)
	DeletePalette(ctx context.Context, id string) error
	CountUserPalettes(ctx context.Context, userID string) (int, error)
}

// Store is the full persistence port.
type Store interface {
	UserStore
	SessionStore
	PaletteStore

	Ping(ctx context.Context) error
	Close() error
}
