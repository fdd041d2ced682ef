package watcher

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chromafy/chromafy-server/internal/logger"
)

func quietLogger() *slog.Logger {
	return logger.Discard().Logger
}

func startWatcher(t *testing.T, path string) *Watcher {
	t.Helper()

	w, err := New(quietLogger(), Options{SettleDelay: 30 * time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, w.Watch(path))

	ctx, cancel := context.WithCancel(context.Background())
	go w.Start(ctx) //nolint:errcheck // test goroutine
	t.Cleanup(func() {
		cancel()
		_ = w.Stop()
	})
	return w
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestNew_Stop(t *testing.T) {
	w, err := New(quietLogger(), Options{})
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, w.opts.SettleDelay)

	require.NoError(t, w.Stop())
	assert.NoError(t, w.Stop(), "stop is idempotent")
	assert.ErrorIs(t, w.Watch(filepath.Join(t.TempDir(), ".env")), ErrStopped)
}

func TestWatch_MissingDirectory(t *testing.T) {
	w, err := New(quietLogger(), Options{})
	require.NoError(t, err)
	defer w.Stop() //nolint:errcheck // test cleanup

	assert.Error(t, w.Watch(filepath.Join(t.TempDir(), "nope", ".env")))
}

func TestWatcher_WriteIsDebounced(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=info\n"), 0o600))
	w := startWatcher(t, path)

	for _, level := range []string{"debug", "warn", "error"} {
		require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL="+level+"\n"), 0o600))
	}

	ev := waitEvent(t, w)
	assert.Equal(t, EventChanged, ev.Type)
	assert.Equal(t, path, ev.Path)

	select {
	case extra := <-w.Events():
		t.Fatalf("expected a single settled event, got extra %+v", extra)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_AtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("LOG_LEVEL=info\n"), 0o600))
	w := startWatcher(t, path)

	tmp := filepath.Join(dir, ".env.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("LOG_LEVEL=debug\n"), 0o600))
	require.NoError(t, os.Rename(tmp, path))

	ev := waitEvent(t, w)
	assert.Equal(t, EventChanged, ev.Type)
}

func TestWatcher_Removed(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("X=1\n"), 0o600))
	w := startWatcher(t, path)

	require.NoError(t, os.Remove(path))

	ev := waitEvent(t, w)
	assert.Equal(t, EventRemoved, ev.Type)
	assert.Equal(t, "removed", ev.Type.String())
}

func TestWatcher_IgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	w := startWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event %+v", ev)
	case <-time.After(150 * time.Millisecond):
	}
}
