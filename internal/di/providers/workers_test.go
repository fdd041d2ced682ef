package providers

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chromafy/chromafy-server/internal/logger"
)

type countingDeleter struct {
	calls atomic.Int32
	err   error
}

func (d *countingDeleter) DeleteExpiredSessions(context.Context) (int, error) {
	d.calls.Add(1)
	return 1, d.err
}

func TestRunSessionCleanup_RunsImmediatelyAndOnTick(t *testing.T) {
	deleter := &countingDeleter{}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	go func() {
		defer close(done)
		runSessionCleanup(ctx, deleter, logger.Discard(), 10*time.Millisecond)
	}()

	assert.Eventually(t, func() bool { return deleter.calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("cleanup loop did not stop")
	}
}

func TestRunSessionCleanup_ErrorsDoNotStopLoop(t *testing.T) {
	deleter := &countingDeleter{err: errors.New("disk full")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runSessionCleanup(ctx, deleter, logger.Discard(), 10*time.Millisecond)

	assert.Eventually(t, func() bool { return deleter.calls.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
}
