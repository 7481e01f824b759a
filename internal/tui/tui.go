package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/flow-bank/internal/logger"
	"github.com/MKhiriev/flow-bank/internal/service"
	"github.com/MKhiriev/flow-bank/models"
)

var ErrNoServices = errors.New("tui: services are required")

type TUI struct {
	services  *service.Services
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.Services, buildInfo models.AppBuildInfo, log *logger.Logger) (*TUI, error) {
	if services == nil {
		return nil, ErrNoServices
	}
	return &TUI{services: services, buildInfo: buildInfo, logger: log}, nil
}

// Run blocks until the user quits or ctx is cancelled. Session expiry from
// the inactivity monitor is delivered to the program as a message.
func (t *TUI) Run(ctx context.Context) error {
	root := NewRootModel(ctx, t.services, t.buildInfo)
	p := tea.NewProgram(root,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	t.services.Monitor.OnExpire(func(err error) {
		p.Send(sessionExpiredMsg{err: err})
	})
	defer t.services.Monitor.Stop()

	t.logger.Debug().Msg("starting terminal ui")

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
