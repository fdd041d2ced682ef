package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"github.com/chromafy/chromafy-server/internal/config"
	"github.com/chromafy/chromafy-server/internal/logger"
	"github.com/chromafy/chromafy-server/internal/service"
	"github.com/chromafy/chromafy-server/internal/watcher"
)

// EnvWatcherHandle wraps the .env reloader. Reloader is nil when watching is off.
type EnvWatcherHandle struct {
	Reloader *watcher.EnvReloader
}

// Shutdown implements do.Shutdownable.
func (h *EnvWatcherHandle) Shutdown() error {
	if h.Reloader == nil {
		return nil
	}
	return h.Reloader.Shutdown()
}

// ProvideEnvWatcher starts hot-reloading LOG_LEVEL from the .env file.
func ProvideEnvWatcher(i do.Injector) (*EnvWatcherHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if !cfg.WatchEnvFile || cfg.EnvFile == "" {
		log.Debug("Env file watching disabled")
		return &EnvWatcherHandle{}, nil
	}

	reloader, err := watcher.NewEnvReloader(cfg.EnvFile, log, log.Logger, watcher.Options{})
	if err != nil {
		// Non-fatal: the server runs fine with a fixed log level.
		log.Warn("Env file watcher unavailable", "path", cfg.EnvFile, "error", err)
		return &EnvWatcherHandle{}, nil
	}
	reloader.Start(context.Background())

	return &EnvWatcherHandle{Reloader: reloader}, nil
}

// SessionCleanupJob runs periodic session cleanup.
type SessionCleanupJob struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// Shutdown implements do.Shutdownable.
func (j *SessionCleanupJob) Shutdown() error {
	j.cancel()
	<-j.done
	return nil
}

// ProvideSessionCleanupJob provides the periodic session cleanup job.
func ProvideSessionCleanupJob(i do.Injector) (*SessionCleanupJob, error) {
	sessions := do.MustInvoke[*service.SessionService](i)
	log := do.MustInvoke[*logger.Logger](i)

	ctx, cancel := context.WithCancel(context.Background())
	job := &SessionCleanupJob{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(job.done)
		runSessionCleanup(ctx, sessions, log, sessionCleanupInterval)
	}()

	log.Info("Session cleanup job started", "interval", sessionCleanupInterval)

	return job, nil
}

type expiredSessionDeleter interface {
	DeleteExpiredSessions(ctx context.Context) (int, error)
}

func runSessionCleanup(ctx context.Context, sessions expiredSessionDeleter, log *logger.Logger, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	cleanup := func(label string) {
		if count, err := sessions.DeleteExpiredSessions(ctx); err != nil {
			if ctx.Err() == nil {
				log.Warn(label+" failed", "error", err)
			}
		} else if count > 0 {
			log.Info(label+" completed", "deleted", count)
		}
	}

	cleanup("Initial session cleanup")
	for {
		select {
		case <-ticker.C:
			cleanup("Session cleanup")
		case <-ctx.Done():
			return
		}
	}
}
