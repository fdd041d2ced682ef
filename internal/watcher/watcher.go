// Package watcher notices changes to individual files and reports them once
// they have settled. It is used to hot-reload the .env file.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ErrStopped is returned by Watch after Stop.
var ErrStopped = errors.New("watcher stopped")

// Watcher watches a set of files. Each file's parent directory is watched so
// that atomic replace-by-rename is seen as a change rather than a removal.
type Watcher struct {
	fs     *fsnotify.Watcher
	logger *slog.Logger
	opts   Options

	mu      sync.Mutex
	files   map[string]struct{}
	dirs    map[string]int
	pending map[string]*time.Timer
	stopped bool

	events   chan Event
	errors   chan error
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a watcher. Nothing is watched until Watch is called.
func New(logger *slog.Logger, opts Options) (*Watcher, error) {
	opts.setDefaults()
	if logger == nil {
		logger = slog.Default()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}

	return &Watcher{
		fs:      fsw,
		logger:  logger,
		opts:    opts,
		files:   make(map[string]struct{}),
		dirs:    make(map[string]int),
		pending: make(map[string]*time.Timer),
		events:  make(chan Event, opts.BufferSize),
		errors:  make(chan error, opts.BufferSize),
		done:    make(chan struct{}),
	}, nil
}

// Watch starts tracking path. The file itself does not need to exist yet, but
// its directory does.
func (w *Watcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return ErrStopped
	}
	if _, ok := w.files[abs]; ok {
		return nil
	}

	if w.dirs[dir] == 0 {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.dirs[dir]++
	w.files[abs] = struct{}{}

	w.logger.Debug("watching file", "path", abs)
	return nil
}

// Events returns the channel of settled events.
func (w *Watcher) Events() <-chan Event { return w.events }

// Errors returns the channel of watcher errors.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Start processes filesystem notifications until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-w.done:
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(ev)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("file watcher error", "error", err)
			select {
			case w.errors <- err:
			default:
			}
		}
	}
}

// Stop releases the underlying watcher and cancels pending events.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		for path, timer := range w.pending {
			timer.Stop()
			delete(w.pending, path)
		}
		w.mu.Unlock()

		close(w.done)
		err = w.fs.Close()
	})
	return err
}

func (w *Watcher) handle(ev fsnotify.Event) {
	if ev.Op == fsnotify.Chmod {
		return
	}

	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.files[path]; !ok || w.stopped {
		return
	}

	if timer, ok := w.pending[path]; ok {
		timer.Reset(w.opts.SettleDelay)
		return
	}
	w.pending[path] = time.AfterFunc(w.opts.SettleDelay, func() { w.settle(path) })
}

func (w *Watcher) settle(path string) {
	w.mu.Lock()
	delete(w.pending, path)
	stopped := w.stopped
	w.mu.Unlock()
	if stopped {
		return
	}

	event := Event{Type: EventChanged, Path: path}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		event.Type = EventRemoved
	}

	select {
	case w.events <- event:
	case <-w.done:
	}
}
