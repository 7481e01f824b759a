package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/flow-bank/internal/app"
	"github.com/MKhiriev/flow-bank/internal/service"
	"github.com/MKhiriev/flow-bank/models"
)

// deps are the services shared by all pages.
type deps struct {
	ctx      context.Context
	sessions service.SessionService
	registry service.RegistryService
	ledger   service.LedgerService
	reset    service.ResetService
	guard    *service.FormGuard
}

// page is a routable screen. enter is called every time the router opens
// the page, with the session granted by the page guard.
type page interface {
	tea.Model
	enter(session *models.Session, notice string) tea.Cmd
}

// RootModel is a TUI router:
// 1) keeps active page
// 2) handles global Ctrl+C quit and the build info window
// 3) runs every NavigateTo through the page guard
// 4) feeds user activity to the inactivity monitor
// 5) delegates all other messages to the active page
type RootModel struct {
	ctx      context.Context
	sessions service.SessionService
	monitor  *service.InactivityMonitor

	pages   map[models.PageKind]page
	current models.PageKind
	session *models.Session

	buildInfo     models.AppBuildInfo
	showBuildInfo bool

	showError    bool
	errorOverlay errorOverlayModel
}

// NewRootModel registers all pages. The start page is chosen in Init.
func NewRootModel(ctx context.Context, services *service.Services, buildInfo models.AppBuildInfo) RootModel {
	d := &deps{
		ctx:      ctx,
		sessions: services.SessionService,
		registry: services.RegistryService,
		ledger:   services.LedgerService,
		reset:    services.ResetService,
		guard:    services.FormGuard,
	}

	return RootModel{
		ctx:      ctx,
		sessions: services.SessionService,
		monitor:  services.Monitor,
		pages: map[models.PageKind]page{
			models.PageMenu:         NewMenuModel(),
			models.PageLogin:        NewLoginModel(d),
			models.PageRegister:     NewRegisterModel(d),
			models.PageReset:        NewResetModel(d),
			models.PageDashboard:    NewDashboardModel(d),
			models.PageAccounts:     NewAccountsModel(d),
			models.PageTransfer:     NewTransferModel(d),
			models.PageTransactions: NewTransactionsModel(d),
		},
		buildInfo: buildInfo,
	}
}

// Init resumes a stored session on the dashboard, otherwise opens the menu.
func (r RootModel) Init() tea.Cmd {
	ctx, sessions := r.ctx, r.sessions
	return func() tea.Msg {
		if _, ok, err := sessions.CurrentSession(ctx); err == nil && ok {
			return NavigateTo{Page: models.PageDashboard}
		}
		return NavigateTo{Page: models.PageMenu}
	}
}

func (r RootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		r.monitor.Touch(r.ctx, service.ActivityKeyPress)

		if msg.String() == "ctrl+c" {
			return r, tea.Quit
		}
		if r.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				r.showError = false
				r.errorOverlay.message = ""
			}
			return r, nil
		}
		if r.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.version) {
				r.showBuildInfo = false
			}
			return r, nil
		}
		if r.current == models.PageMenu && key.Matches(msg, keys.version) {
			r.showBuildInfo = true
			return r, nil
		}

	case tea.MouseMsg:
		r.monitor.Touch(r.ctx, mouseActivity(msg))
		return r, nil

	case NavigateTo:
		return r, r.cmdNavigate(msg.Page, msg.Notice)

	case navigationMsg:
		if msg.err != nil {
			r.showErrorf(app.UserMessage(msg.err))
			return r, nil
		}
		if !msg.decision.Allowed {
			notice := msg.notice
			if notice == "" && msg.decision.RedirectTo == models.PageLogin {
				notice = app.MsgSignInRequired
			}
			return r, r.cmdNavigate(msg.decision.RedirectTo, notice)
		}

		next, ok := r.pages[msg.page]
		if !ok {
			return r, nil
		}
		r.current = msg.page
		r.session = msg.decision.Session
		r.showBuildInfo = false
		r.monitor.Enter(r.ctx, msg.page)
		return r, next.enter(r.session, msg.notice)

	case sessionExpiredMsg:
		r.session = nil
		return r, r.cmdNavigate(models.PageLogin, app.UserMessage(msg.err))

	case logoutDoneMsg:
		if msg.err != nil {
			r.showErrorf(app.UserMessage(msg.err))
			return r, nil
		}
		r.session = nil
		r.monitor.Stop()
		return r, r.cmdNavigate(models.PageMenu, "You have been signed out.")
	}

	current, ok := r.pages[r.current]
	if !ok {
		return r, nil
	}
	_, cmd := current.Update(msg)
	return r, cmd
}

func (r RootModel) View() string {
	if r.showBuildInfo {
		return renderBuildInfoWindow(r.buildInfo)
	}
	if r.showError {
		return r.errorOverlay.View()
	}
	current, ok := r.pages[r.current]
	if !ok {
		return renderPage("FLOWBANK", "Loading...", "")
	}
	return current.View()
}

// cmdNavigate asks the page guard whether page may be opened. The login page
// uses RedirectIfSignedIn; every other page uses Protect.
func (r RootModel) cmdNavigate(page models.PageKind, notice string) tea.Cmd {
	ctx, sessions := r.ctx, r.sessions
	return func() tea.Msg {
		var (
			decision models.AccessDecision
			err      error
		)
		if page == models.PageLogin {
			decision, err = sessions.RedirectIfSignedIn(ctx, page)
		} else {
			decision, err = sessions.Protect(ctx, page)
		}
		return navigationMsg{page: page, notice: notice, decision: decision, err: err}
	}
}

func (r *RootModel) showErrorf(message string) {
	r.showError = true
	r.errorOverlay.message = message
}

func mouseActivity(msg tea.MouseMsg) service.ActivityEvent {
	switch {
	case tea.MouseEvent(msg).IsWheel():
		return service.ActivityScroll
	case msg.Action == tea.MouseActionMotion:
		return service.ActivityPointerMove
	default:
		return service.ActivityClick
	}
}

func navigate(page models.PageKind, notice string) tea.Cmd {
	return func() tea.Msg { return NavigateTo{Page: page, Notice: notice} }
}
