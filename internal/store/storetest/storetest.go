// Package storetest holds behaviour tests shared by every store.Store implementation.
package storetest

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromafy/chromafy-server/internal/domain"
	"github.com/chromafy/chromafy-server/internal/store"
)

// Opener returns a fresh, empty store. The caller closes it.
type Opener func(t *testing.T) store.Store

// Run exercises the full store.Store contract against open.
func Run(t *testing.T, open Opener) {
	t.Run("Users", func(t *testing.T) { testUsers(t, open(t)) })
	t.Run("Sessions", func(t *testing.T) { testSessions(t, open(t)) })
	t.Run("ExpiredSessions", func(t *testing.T) { testExpiredSessions(t, open(t)) })
	t.Run("Palettes", func(t *testing.T) { testPalettes(t, open(t)) })
	t.Run("UnknownOwner", func(t *testing.T) { testUnknownOwner(t, open(t)) })
	t.Run("Ping", func(t *testing.T) { require.NoError(t, open(t).Ping(context.Background())) })
}

// NewUser builds a user with the given ID and email.
func NewUser(id, email string) *domain.User {
	u := &domain.User{Name: "User " + id, Email: email, PasswordHash: "hash"}
	u.ID = id
	u.InitTimestamps()
	return u
}

// NewPalette builds a palette created at the given time.
func NewPalette(id, userID string, createdAt time.Time) *domain.SavedPalette {
	return &domain.SavedPalette{
		ID:        id,
		UserID:    userID,
		Name:      "Palette " + id,
		Mode:      "Analogous",
		Colors:    []string{"#7c3aed", "#a855f7"},
		CreatedAt: createdAt.UTC(),
	}
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	user := NewUser("user-1", "Ada@Example.com")
	require.NoError(t, s.CreateUser(ctx, user))

	got, err := s.GetUser(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "User user-1", got.Name)
	assert.Equal(t, "Ada@Example.com", got.Email)
	assert.Equal(t, "hash", got.PasswordHash)

	got, err = s.GetUserByEmail(ctx, "  ada@example.COM")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)

	err = s.CreateUser(ctx, NewUser("user-2", "ada@example.com"))
	assert.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetUserByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)

	got.Name = "Ada Lovelace"
	got.Email = "ada@lovelace.dev"
	got.LastLoginAt = time.Now().UTC()
	require.NoError(t, s.UpdateUser(ctx, got))

	_, err = s.GetUserByEmail(ctx, "ada@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
	got, err = s.GetUserByEmail(ctx, "ADA@lovelace.dev")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", got.Name)
	assert.False(t, got.LastLoginAt.IsZero())

	assert.ErrorIs(t, s.UpdateUser(ctx, NewUser("ghost", "ghost@example.com")), store.ErrNotFound)
}

func testSessions(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, NewUser("user-1", "a@example.com")))

	now := time.Now().UTC()
	sess := &domain.Session{
		ID:               "sess-1",
		UserID:           "user-1",
		RefreshTokenHash: "hash-1",
		ExpiresAt:        now.Add(time.Hour),
		CreatedAt:        now,
		LastSeenAt:       now,
		IPAddress:        "10.0.0.1",
		UserAgent:        "chromafy-test",
	}
	require.NoError(t, s.CreateSession(ctx, sess))
	assert.ErrorIs(t, s.CreateSession(ctx, sess), store.ErrAlreadyExists)

	got, err := s.GetSession(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.UserID)
	assert.Equal(t, "10.0.0.1", got.IPAddress)
	assert.WithinDuration(t, sess.ExpiresAt, got.ExpiresAt, time.Millisecond)

	got, err = s.GetSessionByRefreshToken(ctx, "hash-1")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.ID)

	got.RefreshTokenHash = "hash-2"
	require.NoError(t, s.UpdateSession(ctx, got))

	_, err = s.GetSessionByRefreshToken(ctx, "hash-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	got, err = s.GetSessionByRefreshToken(ctx, "hash-2")
	require.NoError(t, err)
	assert.Equal(t, "sess-1", got.ID)

	require.NoError(t, s.DeleteSession(ctx, "sess-1"))
	require.NoError(t, s.DeleteSession(ctx, "sess-1"))
	_, err = s.GetSession(ctx, "sess-1")
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.GetSessionByRefreshToken(ctx, "hash-2")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func testExpiredSessions(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, NewUser("user-1", "a@example.com")))

	now := time.Now().UTC()
	for i, expires := range []time.Time{now.Add(-time.Hour), now.Add(-time.Minute), now.Add(time.Hour)} {
		require.NoError(t, s.CreateSession(ctx, &domain.Session{
			ID:               fmt.Sprintf("sess-%d", i),
			UserID:           "user-1",
			RefreshTokenHash: fmt.Sprintf("hash-%d", i),
			ExpiresAt:        expires,
			CreatedAt:        now,
			LastSeenAt:       now,
		}))
	}

	n, err := s.DeleteExpiredSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	_, err = s.GetSession(ctx, "sess-2")
	assert.NoError(t, err)
	_, err = s.GetSession(ctx, "sess-0")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

// Palettes and sessions belong to an account; both stores refuse orphans.
func testUnknownOwner(t *testing.T, s store.Store) {
	ctx := context.Background()

	err := s.CreatePalette(ctx, NewPalette("pal-1", "nobody", time.Now()))
	assert.ErrorIs(t, err, store.ErrInvalidInput)
	_, err = s.GetPalette(ctx, "pal-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	now := time.Now().UTC()
	err = s.CreateSession(ctx, &domain.Session{
		ID:               "sess-1",
		UserID:           "nobody",
		RefreshTokenHash: "hash-1",
		ExpiresAt:        now.Add(time.Hour),
		CreatedAt:        now,
		LastSeenAt:       now,
	})
	assert.ErrorIs(t, err, store.ErrInvalidInput)
}

func testPalettes(t *testing.T, s store.Store) {
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, NewUser("user-1", "a@example.com")))
	require.NoError(t, s.CreateUser(ctx, NewUser("user-2", "b@example.com")))

	base := time.Now().UTC().Add(-time.Hour)
	require.NoError(t, s.CreatePalette(ctx, NewPalette("pal-a", "user-1", base)))
	require.NoError(t, s.CreatePalette(ctx, NewPalette("pal-b", "user-1", base.Add(2*time.Minute))))
	require.NoError(t, s.CreatePalette(ctx, NewPalette("pal-c", "user-1", base.Add(time.Minute))))
	require.NoError(t, s.CreatePalette(ctx, NewPalette("pal-z", "user-2", base.Add(3*time.Minute))))

	assert.ErrorIs(t, s.CreatePalette(ctx, NewPalette("pal-a", "user-1", base)), store.ErrAlreadyExists)

	got, err := s.GetPalette(ctx, "pal-a")
	require.NoError(t, err)
	assert.Equal(t, []string{"#7c3aed", "#a855f7"}, got.Colors)
	assert.Equal(t, "Analogous", got.Mode)

	list, err := s.ListUserPalettes(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{"pal-b", "pal-c", "pal-a"}, paletteIDs(list))

	n, err := s.CountUserPalettes(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	all, err := s.ListAllPalettes(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"pal-z", "pal-b", "pal-c", "pal-a"}, paletteIDs(all))

	require.NoError(t, s.DeletePalette(ctx, "pal-c"))
	require.NoError(t, s.DeletePalette(ctx, "pal-c"))
	_, err = s.GetPalette(ctx, "pal-c")
	assert.ErrorIs(t, err, store.ErrNotFound)

	n, err = s.CountUserPalettes(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	empty, err := s.ListUserPalettes(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func paletteIDs(ps []*domain.SavedPalette) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}
