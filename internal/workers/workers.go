package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/flow-bank/internal/config"
	"github.com/MKhiriev/flow-bank/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the application's background workers from the services
// and worker config.
func NewWorkers(services *service.Services, cfg config.Workers) *Workers {
	return &Workers{workers: []Worker{
		NewTokenCleanupWorker(services.Janitor, cfg.TokenCleanupInterval),
	}}
}

// Run starts every worker in order.
func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}

// Stop stops every worker in reverse start order.
func (w *Workers) Stop() {
	for i := len(w.workers) - 1; i >= 0; i-- {
		w.workers[i].Stop()
	}
}

// TokenCleanupWorker prunes expired password-reset tokens on a fixed
// interval.
type TokenCleanupWorker struct {
	janitor  service.ResetTokenJanitor
	interval time.Duration
}

func NewTokenCleanupWorker(janitor service.ResetTokenJanitor, interval time.Duration) *TokenCleanupWorker {
	return &TokenCleanupWorker{janitor: janitor, interval: interval}
}

func (t *TokenCleanupWorker) Run(ctx context.Context) {
	t.janitor.Start(ctx, t.interval)
}

func (t *TokenCleanupWorker) Stop() {
	t.janitor.Stop()
}
