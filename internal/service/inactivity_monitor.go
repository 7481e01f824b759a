package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/flow-bank/internal/logger"
	"github.com/MKhiriev/flow-bank/internal/utils"
	"github.com/MKhiriev/flow-bank/models"
)

// InactivityTimeout is how long a protected page may go without user
// activity before the session is cleared.
const InactivityTimeout = 30 * time.Minute

// MonitorState is the state of an InactivityMonitor.
type MonitorState int

const (
	// MonitorIdle means the current page is not protected and no deadline
	// is scheduled.
	MonitorIdle MonitorState = iota
	// MonitorActive means a deadline is scheduled.
	MonitorActive
	// MonitorExpired means the deadline passed and the session was cleared.
	MonitorExpired
)

func (s MonitorState) String() string {
	switch s {
	case MonitorActive:
		return "active"
	case MonitorExpired:
		return "expired"
	default:
		return "idle"
	}
}

// ActivityEvent is a kind of user input that counts as activity.
type ActivityEvent string

const (
	ActivityPointerMove ActivityEvent = "pointer_move"
	ActivityKeyPress    ActivityEvent = "key_press"
	ActivityScroll      ActivityEvent = "scroll"
	ActivityClick       ActivityEvent = "click"
)

// InactivityMonitor signs the user out after InactivityTimeout without
// activity on a protected page. The deadline is a single scheduled timer
// that is stopped and recreated on every reset, so at most one is pending.
type InactivityMonitor struct {
	sessions SessionService
	clock    utils.Clock
	timeout  time.Duration

	mu       sync.Mutex
	state    MonitorState
	deadline time.Time
	timer    utils.Timer
	// generation invalidates callbacks of timers that were already replaced.
	generation uint64
	onExpire   func(error)
}

// NewInactivityMonitor returns an idle monitor using InactivityTimeout.
func NewInactivityMonitor(sessions SessionService, clock utils.Clock) *InactivityMonitor {
	return &InactivityMonitor{
		sessions: sessions,
		clock:    clock,
		timeout:  InactivityTimeout,
	}
}

// OnExpire sets the function called with ErrSessionExpired after an expiry
// has cleared the session.
func (m *InactivityMonitor) OnExpire(fn func(error)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExpire = fn
}

// Enter arms the deadline when page is protected and disarms it otherwise.
func (m *InactivityMonitor) Enter(ctx context.Context, page models.PageKind) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !page.Protected() {
		m.disarm()
		m.state = MonitorIdle
		return
	}
	m.arm(ctx)
}

// Touch resets the deadline after user activity. It has no effect unless a
// deadline is scheduled.
func (m *InactivityMonitor) Touch(ctx context.Context, event ActivityEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != MonitorActive {
		return
	}
	m.arm(ctx)
}

// State returns the current state.
func (m *InactivityMonitor) State() MonitorState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Deadline returns the scheduled expiry. It is zero unless the monitor is
// active.
func (m *InactivityMonitor) Deadline() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != MonitorActive {
		return time.Time{}
	}
	return m.deadline
}

// Stop cancels any scheduled deadline and returns the monitor to idle.
func (m *InactivityMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.disarm()
	m.state = MonitorIdle
}

// arm must be called with mu held.
func (m *InactivityMonitor) arm(ctx context.Context) {
	m.disarm()

	m.generation++
	gen := m.generation
	m.state = MonitorActive
	m.deadline = m.clock.Now().Add(m.timeout)

	expireCtx := context.WithoutCancel(ctx)
	m.timer = m.clock.AfterFunc(m.timeout, func() {
		m.expire(expireCtx, gen)
	})
}

// disarm must be called with mu held.
func (m *InactivityMonitor) disarm() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.generation++
}

func (m *InactivityMonitor) expire(ctx context.Context, gen uint64) {
	m.mu.Lock()
	if gen != m.generation || m.state != MonitorActive {
		m.mu.Unlock()
		return
	}
	m.state = MonitorExpired
	m.timer = nil
	onExpire := m.onExpire
	m.mu.Unlock()

	log := logger.FromContext(ctx)
	if err := m.sessions.Logout(ctx); err != nil {
		log.Err(err).Msg("failed to clear expired session")
	}
	log.Info().Msg("session expired after inactivity")

	if onExpire != nil {
		onExpire(ErrSessionExpired)
	}
}
