package service

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/flow-bank/internal/utils"
)

// Form names a front-end form whose submissions are guarded.
type Form string

const (
	FormLogin    Form = "login"
	FormRegister Form = "register"
	FormTransfer Form = "transfer"
	FormReset    Form = "reset"
)

// delayed reports whether the simulated latency applies to the form.
func (f Form) delayed() bool {
	return f == FormLogin || f == FormRegister
}

// FormGuard serializes submissions per form and applies the simulated
// submit latency to login and registration.
type FormGuard struct {
	clock utils.Clock
	delay time.Duration

	mu       sync.Mutex
	inFlight map[Form]bool
}

// NewFormGuard returns a FormGuard that waits delay on the clock before
// running login and registration submissions.
func NewFormGuard(clock utils.Clock, delay time.Duration) *FormGuard {
	return &FormGuard{
		clock:    clock,
		delay:    delay,
		inFlight: make(map[Form]bool),
	}
}

// Submit runs fn unless a submission of the same form is still in flight,
// in which case it returns ErrSubmitInProgress without calling fn. Once
// accepted, the submission always runs to completion: cancelling ctx does
// not interrupt the latency or fn.
func (g *FormGuard) Submit(ctx context.Context, form Form, fn func(context.Context) error) error {
	g.mu.Lock()
	if g.inFlight[form] {
		g.mu.Unlock()
		return ErrSubmitInProgress
	}
	g.inFlight[form] = true
	g.mu.Unlock()

	defer func() {
		g.mu.Lock()
		delete(g.inFlight, form)
		g.mu.Unlock()
	}()

	if form.delayed() && g.delay > 0 {
		g.clock.Sleep(g.delay)
	}

	return fn(context.WithoutCancel(ctx))
}

// InFlight reports whether a submission of form is running.
func (g *FormGuard) InFlight(form Form) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.inFlight[form]
}
