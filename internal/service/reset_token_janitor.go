package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/flow-bank/internal/logger"
)

// DefaultTokenCleanupInterval is used when Start is given a non-positive
// interval.
const DefaultTokenCleanupInterval = 10 * time.Minute

type resetTokenJanitor struct {
	resetService ResetService

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewResetTokenJanitor creates a janitor that calls resetService.PruneExpired
// on a ticker. The janitor is idle until Start is called.
func NewResetTokenJanitor(resetService ResetService) ResetTokenJanitor {
	return &resetTokenJanitor{resetService: resetService}
}

// Start implements ResetTokenJanitor. It stops any previously running job,
// prunes once, then launches a goroutine that prunes every interval. The
// goroutine exits when ctx is cancelled or Stop is called.
func (j *resetTokenJanitor) Start(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultTokenCleanupInterval
	}

	j.Stop()

	j.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	j.cancel = cancel
	j.wg.Add(1)
	j.mu.Unlock()

	go func() {
		defer j.wg.Done()
		t := time.NewTicker(interval)
		defer t.Stop()

		j.prune(jobCtx)
		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				j.prune(jobCtx)
			}
		}
	}()
}

// Stop implements ResetTokenJanitor. It cancels the goroutine's context and
// blocks until it has exited. Safe to call when the job is not running.
func (j *resetTokenJanitor) Stop() {
	j.mu.Lock()
	cancel := j.cancel
	j.cancel = nil
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	j.wg.Wait()
}

func (j *resetTokenJanitor) prune(ctx context.Context) {
	if _, err := j.resetService.PruneExpired(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Msg("reset token cleanup failed")
	}
}
