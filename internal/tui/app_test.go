package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/flow-bank/internal/app"
	"github.com/MKhiriev/flow-bank/internal/mock"
	"github.com/MKhiriev/flow-bank/internal/service"
	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/models"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

type testServices struct {
	sessions *mock.MockSessionService
	ledger   *mock.MockLedgerService
	registry *mock.MockRegistryService
	reset    *mock.MockResetService
	clock    *utils.FakeClock
	services *service.Services
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	ctrl := gomock.NewController(t)

	ts := &testServices{
		sessions: mock.NewMockSessionService(ctrl),
		ledger:   mock.NewMockLedgerService(ctrl),
		registry: mock.NewMockRegistryService(ctrl),
		reset:    mock.NewMockResetService(ctrl),
		clock:    utils.NewFakeClock(testNow),
	}
	ts.services = &service.Services{
		RegistryService: ts.registry,
		SessionService:  ts.sessions,
		LedgerService:   ts.ledger,
		ResetService:    ts.reset,
		Monitor:         service.NewInactivityMonitor(ts.sessions, ts.clock),
		FormGuard:       service.NewFormGuard(ts.clock, 1500*time.Millisecond),
	}
	return ts
}

func (ts *testServices) deps() *deps {
	return &deps{
		ctx:      context.Background(),
		sessions: ts.sessions,
		registry: ts.registry,
		ledger:   ts.ledger,
		reset:    ts.reset,
		guard:    ts.services.FormGuard,
	}
}

// drive feeds msg to the root model and keeps executing returned commands
// until one yields nothing the router handles itself.
func drive(t *testing.T, r RootModel, msg tea.Msg) RootModel {
	t.Helper()
	for i := 0; i < 10; i++ {
		next, cmd := r.Update(msg)
		r = next.(RootModel)
		if cmd == nil {
			return r
		}
		msg = cmd()
		switch msg.(type) {
		case NavigateTo, navigationMsg:
		default:
			return r
		}
	}
	t.Fatal("navigation did not settle")
	return r
}

func TestRootModel_Init_ResumesStoredSession(t *testing.T) {
	ts := newTestServices(t)
	ts.sessions.EXPECT().CurrentSession(gomock.Any()).Return(models.Session{ID: "u1"}, true, nil)

	r := NewRootModel(context.Background(), ts.services, models.AppBuildInfo{})
	msg := r.Init()()

	assert.Equal(t, NavigateTo{Page: models.PageDashboard}, msg)
}

func TestRootModel_Init_NoSessionOpensMenu(t *testing.T) {
	ts := newTestServices(t)
	ts.sessions.EXPECT().CurrentSession(gomock.Any()).Return(models.Session{}, false, nil)

	r := NewRootModel(context.Background(), ts.services, models.AppBuildInfo{})

	assert.Equal(t, NavigateTo{Page: models.PageMenu}, r.Init()())
}

func TestRootModel_ProtectedPageRedirectsToLogin(t *testing.T) {
	ts := newTestServices(t)
	ts.sessions.EXPECT().Protect(gomock.Any(), models.PageAccounts).Return(models.Redirect(models.PageLogin), nil)
	ts.sessions.EXPECT().RedirectIfSignedIn(gomock.Any(), models.PageLogin).Return(models.Allow(nil), nil)

	r := NewRootModel(context.Background(), ts.services, models.AppBuildInfo{})
	r = drive(t, r, NavigateTo{Page: models.PageAccounts})

	require.Equal(t, models.PageLogin, r.current)
	login := r.pages[models.PageLogin].(*LoginModel)
	assert.Equal(t, app.MsgSignInRequired, login.notice)
	assert.Equal(t, service.MonitorIdle, ts.services.Monitor.State())
}

func TestRootModel_SignedInUserSkipsLogin(t *testing.T) {
	ts := newTestServices(t)
	session := &models.Session{ID: "u1", Name: "Ada Lovelace"}
	ts.sessions.EXPECT().RedirectIfSignedIn(gomock.Any(), models.PageLogin).Return(models.Redirect(models.PageDashboard), nil)
	ts.sessions.EXPECT().Protect(gomock.Any(), models.PageDashboard).Return(models.Allow(session), nil)
	ts.ledger.EXPECT().Accounts(gomock.Any(), session).Return(nil, nil).AnyTimes()
	ts.ledger.EXPECT().Transactions(gomock.Any(), session).Return(nil, nil).AnyTimes()

	r := NewRootModel(context.Background(), ts.services, models.AppBuildInfo{})
	r = drive(t, r, NavigateTo{Page: models.PageLogin})

	assert.Equal(t, models.PageDashboard, r.current)
	assert.Equal(t, session, r.session)
	assert.Equal(t, service.MonitorActive, ts.services.Monitor.State())
	assert.Equal(t, testNow.Add(service.InactivityTimeout), ts.services.Monitor.Deadline())
}

func TestRootModel_ActivityExtendsDeadline(t *testing.T) {
	ts := newTestServices(t)
	session := &models.Session{ID: "u1"}
	ts.sessions.EXPECT().Protect(gomock.Any(), models.PageTransactions).Return(models.Allow(session), nil)
	ts.ledger.EXPECT().Accounts(gomock.Any(), session).Return(nil, nil).AnyTimes()
	ts.ledger.EXPECT().Transactions(gomock.Any(), session).Return(nil, nil).AnyTimes()

	r := NewRootModel(context.Background(), ts.services, models.AppBuildInfo{})
	r = drive(t, r, NavigateTo{Page: models.PageTransactions})

	ts.clock.Advance(20 * time.Minute)
	next, _ := r.Update(tea.MouseMsg{Action: tea.MouseActionMotion})
	r = next.(RootModel)

	assert.Equal(t, testNow.Add(20*time.Minute+service.InactivityTimeout), ts.services.Monitor.Deadline())
}

func TestRootModel_SessionExpiry(t *testing.T) {
	ts := newTestServices(t)
	session := &models.Session{ID: "u1"}
	ts.sessions.EXPECT().Protect(gomock.Any(), models.PageAccounts).Return(models.Allow(session), nil)
	ts.ledger.EXPECT().Accounts(gomock.Any(), session).Return(nil, nil).AnyTimes()
	ts.ledger.EXPECT().Transactions(gomock.Any(), session).Return(nil, nil).AnyTimes()
	ts.sessions.EXPECT().Logout(gomock.Any()).Return(nil)
	ts.sessions.EXPECT().RedirectIfSignedIn(gomock.Any(), models.PageLogin).Return(models.Allow(nil), nil)

	var expired error
	ts.services.Monitor.OnExpire(func(err error) { expired = err })

	r := NewRootModel(context.Background(), ts.services, models.AppBuildInfo{})
	r = drive(t, r, NavigateTo{Page: models.PageAccounts})

	ts.clock.Advance(service.InactivityTimeout)
	require.ErrorIs(t, expired, service.ErrSessionExpired)

	r = drive(t, r, sessionExpiredMsg{err: expired})

	assert.Equal(t, models.PageLogin, r.current)
	assert.Nil(t, r.session)
	login := r.pages[models.PageLogin].(*LoginModel)
	assert.Equal(t, app.MsgSessionExpired, login.notice)
}

func TestRootModel_LogoutReturnsToMenu(t *testing.T) {
	ts := newTestServices(t)
	ts.sessions.EXPECT().Protect(gomock.Any(), models.PageMenu).Return(models.Allow(nil), nil)

	r := NewRootModel(context.Background(), ts.services, models.AppBuildInfo{})
	r.session = &models.Session{ID: "u1"}
	r = drive(t, r, logoutDoneMsg{})

	assert.Equal(t, models.PageMenu, r.current)
	assert.Nil(t, r.session)
	assert.Equal(t, service.MonitorIdle, ts.services.Monitor.State())
}

func TestRootModel_BuildInfoToggle(t *testing.T) {
	ts := newTestServices(t)
	r := NewRootModel(context.Background(), ts.services, models.NewAppBuildInfo("1.2.0", "2026-03-01", "abc123"))
	r.current = models.PageMenu

	next, _ := r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("v")})
	r = next.(RootModel)
	require.True(t, r.showBuildInfo)
	assert.Contains(t, r.View(), "1.2.0")

	next, _ = r.Update(tea.KeyMsg{Type: tea.KeyEsc})
	r = next.(RootModel)
	assert.False(t, r.showBuildInfo)
}

func TestMouseActivity(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.MouseMsg
		want service.ActivityEvent
	}{
		{"wheel", tea.MouseMsg{Button: tea.MouseButtonWheelDown, Action: tea.MouseActionPress}, service.ActivityScroll},
		{"motion", tea.MouseMsg{Action: tea.MouseActionMotion}, service.ActivityPointerMove},
		{"click", tea.MouseMsg{Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}, service.ActivityClick},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mouseActivity(tt.msg))
		})
	}
}
