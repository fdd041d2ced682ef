// Package badgerdb implements store.Store on an embedded Badger key-value database.
//
// Entities are JSON values under "<prefix><id>"; secondary indexes live under
// "<prefix>idx:<name>:<key>" and hold the entity ID.
package badgerdb

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"

	"github.com/chromafy/chromafy-server/internal/domain"
	"github.com/chromafy/chromafy-server/internal/store"
)

const (
	userPrefix    = "user:"
	sessionPrefix = "session:"
	palettePrefix = "palette:"

	indexEmail   = "email"
	indexRefresh = "refresh"
	indexOwner   = "user"
)

// Store wraps a Badger database instance.
type Store struct {
	db     *badger.DB
	logger *slog.Logger

	users    *Entity[domain.User]
	sessions *Entity[domain.Session]
	palettes *Entity[domain.SavedPalette]
}

var _ store.Store = (*Store)(nil)

// Open opens (or creates) the database in dir.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	opts.SyncWrites = true
	opts.CompactL0OnClose = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	s := &Store{db: db, logger: logger}

	s.users = NewEntity[domain.User](s, userPrefix).
		WithIndexTransform(indexEmail, func(u *domain.User) []string {
			return []string{domain.NormalizeEmail(u.Email)}
		}, domain.NormalizeEmail)

	s.sessions = NewEntity[domain.Session](s, sessionPrefix).
		WithIndex(indexRefresh, func(sess *domain.Session) []string {
			if sess.RefreshTokenHash == "" {
				return nil
			}
			return []string{sess.RefreshTokenHash}
		})

	s.palettes = NewEntity[domain.SavedPalette](s, palettePrefix).
		WithIndex(indexOwner, func(p *domain.SavedPalette) []string {
			return []string{ownerKey(p.UserID, p.ID)}
		})

	if logger != nil {
		logger.Info("Badger database opened successfully", "path", dir)
	}
	return s, nil
}

func ownerKey(userID, paletteID string) string {
	return userID + ":" + paletteID
}

// Ping reports whether the database is still open.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.db.IsClosed() {
		return errors.New("badger db is closed")
	}
	return nil
}

// Close gracefully closes the database.
func (s *Store) Close() error {
	if s.logger != nil {
		s.logger.Info("Closing database connection")
	}
	return s.db.Close()
}
