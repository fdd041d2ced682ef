package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/chromafy/chromafy-server/internal/config"
	"github.com/chromafy/chromafy-server/internal/logger"
)

// LevelSetter is the part of the logger the reloader adjusts.
type LevelSetter interface {
	SetLevel(level slog.Level)
	Level() slog.Level
}

// EnvReloader re-reads the .env file when it changes and applies the settings
// that are safe to change at runtime. Currently that is LOG_LEVEL only.
type EnvReloader struct {
	path    string
	levels  LevelSetter
	logger  *slog.Logger
	watcher *Watcher

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewEnvReloader creates a reloader for path.
func NewEnvReloader(path string, levels LevelSetter, log *slog.Logger, opts Options) (*EnvReloader, error) {
	if path == "" {
		return nil, errors.New("env file path is required")
	}
	if log == nil {
		log = slog.Default()
	}

	w, err := New(log, opts)
	if err != nil {
		return nil, err
	}
	if err := w.Watch(path); err != nil {
		_ = w.Stop()
		return nil, err
	}

	return &EnvReloader{
		path:    path,
		levels:  levels,
		logger:  log.With("component", "env_reloader"),
		watcher: w,
	}, nil
}

// Start begins watching in the background.
func (r *EnvReloader) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(2)
	go func() {
		defer r.wg.Done()
		if err := r.watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			r.logger.Error("env watcher stopped", "error", err)
		}
	}()
	go func() {
		defer r.wg.Done()
		r.loop(ctx)
	}()

	r.logger.Info("watching env file for changes", "path", r.path)
}

func (r *EnvReloader) loop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-r.watcher.Events():
			if ev.Type == EventRemoved {
				r.logger.Warn("env file removed, keeping current settings", "path", ev.Path)
				continue
			}
			if err := r.Reload(); err != nil {
				r.logger.Warn("env file reload failed", "path", ev.Path, "error", err)
			}
		}
	}
}

// Reload reads the file once and applies it. An invalid LOG_LEVEL is an error
// and leaves the current level untouched.
func (r *EnvReloader) Reload() error {
	values, err := config.ReadEnvFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read env file: %w", err)
	}

	raw, ok := values["LOG_LEVEL"]
	if !ok || r.levels == nil {
		return nil
	}
	raw = strings.TrimSpace(raw)
	if !config.ValidLogLevel(raw) {
		return fmt.Errorf("invalid LOG_LEVEL %q", raw)
	}

	next := logger.ParseLevel(raw)
	if prev := r.levels.Level(); prev != next {
		r.levels.SetLevel(next)
		r.logger.Info("log level changed", "from", prev.String(), "to", next.String())
	}
	return nil
}

// Shutdown stops watching and waits for the background goroutines.
func (r *EnvReloader) Shutdown() error {
	if r.cancel != nil {
		r.cancel()
	}
	err := r.watcher.Stop()
	r.wg.Wait()
	return err
}
