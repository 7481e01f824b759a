package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/flow-bank/internal/config"
	"github.com/MKhiriev/flow-bank/internal/logger"
	"github.com/MKhiriev/flow-bank/internal/service"
	"github.com/MKhiriev/flow-bank/internal/tui"
	"github.com/MKhiriev/flow-bank/internal/workers"
)

var ErrNilDependency = errors.New("client: nil dependency")

// UI is the interactive front end run by App.
type UI interface {
	Run(ctx context.Context) error
}

type App struct {
	services *service.Services
	ui       UI
	workers  *workers.Workers
	logger   *logger.Logger
}

func NewApp(services *service.Services, ui *tui.TUI, cfg config.Workers, log *logger.Logger) (*App, error) {
	if services == nil || ui == nil || log == nil {
		return nil, ErrNilDependency
	}
	return newApp(services, ui, workers.NewWorkers(services, cfg), log), nil
}

func newApp(services *service.Services, ui UI, w *workers.Workers, log *logger.Logger) *App {
	return &App{services: services, ui: ui, workers: w, logger: log}
}

// Run starts background workers, blocks on the UI and stops the workers
// once the UI returns.
func (a *App) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)

	a.logger.Info().Msg("starting background workers")
	a.workers.Run(ctx)
	defer func() {
		a.workers.Stop()
		a.logger.Info().Msg("background workers stopped")
	}()

	if err := a.ui.Run(ctx); err != nil {
		return fmt.Errorf("ui: %w", err)
	}
	a.logger.Info().Msg("client exited")
	return nil
}
