package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/flow-bank/internal/utils"
)

func TestFormGuard_DelayAppliesToLoginAndRegister(t *testing.T) {
	tests := []struct {
		form Form
		want time.Duration
	}{
		{form: FormLogin, want: 1500 * time.Millisecond},
		{form: FormRegister, want: 1500 * time.Millisecond},
		{form: FormTransfer, want: 0},
		{form: FormReset, want: 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.form), func(t *testing.T) {
			clock := utils.NewFakeClock(testNow)
			g := NewFormGuard(clock, 1500*time.Millisecond)

			called := false
			err := g.Submit(context.Background(), tt.form, func(context.Context) error {
				called = true
				return nil
			})

			require.NoError(t, err)
			assert.True(t, called)
			assert.Equal(t, tt.want, clock.Slept())
		})
	}
}

func TestFormGuard_RejectsResubmission(t *testing.T) {
	g := NewFormGuard(utils.NewFakeClock(testNow), 0)
	ctx := context.Background()

	var inner error
	err := g.Submit(ctx, FormTransfer, func(ctx context.Context) error {
		assert.True(t, g.InFlight(FormTransfer))
		inner = g.Submit(ctx, FormTransfer, func(context.Context) error {
			t.Fatal("second submission must not run")
			return nil
		})
		// other forms are independent
		return g.Submit(ctx, FormReset, func(context.Context) error { return nil })
	})

	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrSubmitInProgress)
	assert.False(t, g.InFlight(FormTransfer))
}

func TestFormGuard_CancelledContextStillResolves(t *testing.T) {
	clock := utils.NewFakeClock(testNow)
	g := NewFormGuard(clock, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := g.Submit(ctx, FormLogin, func(ctx context.Context) error {
		return ctx.Err()
	})
	require.NoError(t, err)
	assert.Equal(t, time.Second, clock.Slept())
}

func TestFormGuard_ReturnsSubmissionError(t *testing.T) {
	g := NewFormGuard(utils.NewFakeClock(testNow), 0)
	want := errors.New("rejected")

	err := g.Submit(context.Background(), FormRegister, func(context.Context) error { return want })
	assert.ErrorIs(t, err, want)
	assert.False(t, g.InFlight(FormRegister))
}
