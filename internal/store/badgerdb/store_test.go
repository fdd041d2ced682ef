package badgerdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromafy/chromafy-server/internal/store"
	"github.com/chromafy/chromafy-server/internal/store/storetest"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStoreContract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store { return newTestStore(t) })
}

func TestPing_Closed(t *testing.T) {
	s, err := Open(t.TempDir(), nil)
	require.NoError(t, err)
	require.NoError(t, s.Close())
	assert.Error(t, s.Ping(context.Background()))
}

func TestUserPrefixOwnerIsolation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// "user-1" is a prefix of "user-10"; the owner index must not mix them.
	require.NoError(t, s.CreateUser(ctx, storetest.NewUser("user-1", "a@example.com")))
	require.NoError(t, s.CreateUser(ctx, storetest.NewUser("user-10", "b@example.com")))
	require.NoError(t, s.CreatePalette(ctx, storetest.NewPalette("pal-1", "user-1", time.Now())))
	require.NoError(t, s.CreatePalette(ctx, storetest.NewPalette("pal-10", "user-10", time.Now())))

	n, err := s.CountUserPalettes(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestEntityList_SkipsIndexes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateUser(ctx, storetest.NewUser("user-1", "a@example.com")))

	count := 0
	for u, err := range s.users.List(ctx) {
		require.NoError(t, err)
		assert.Equal(t, "user-1", u.ID)
		count++
	}
	assert.Equal(t, 1, count)
}
