// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/flow-bank/internal/config"
	"github.com/MKhiriev/flow-bank/internal/mock"
	"github.com/MKhiriev/flow-bank/internal/service"
)

// mockWorker is a test implementation of the Worker interface
// that tracks how many times Run and Stop were called.
type mockWorker struct {
	runCount  int
	stopCount int
}

func (m *mockWorker) Run(context.Context) {
	m.runCount++
}

func (m *mockWorker) Stop() {
	m.stopCount++
}

func TestWorkers_Run_AllWorkersAreCalled(t *testing.T) {
	w1 := &mockWorker{}
	w2 := &mockWorker{}
	w3 := &mockWorker{}

	ws := &Workers{workers: []Worker{w1, w2, w3}}
	ws.Run(context.Background())

	for i, w := range []*mockWorker{w1, w2, w3} {
		if w.runCount != 1 {
			t.Errorf("worker[%d]: expected runCount=1, got %d", i, w.runCount)
		}
	}
}

func TestWorkers_Run_Empty(t *testing.T) {
	ws := &Workers{workers: []Worker{}}

	// Should not panic on empty workers list
	ws.Run(context.Background())
	ws.Stop()
}

func TestWorkers_Run_Nil(t *testing.T) {
	ws := &Workers{}

	// Should not panic when workers field is nil
	ws.Run(context.Background())
	ws.Stop()
}

func TestWorkers_Order(t *testing.T) {
	var order []string

	ws := &Workers{workers: []Worker{
		&orderWorker{id: "1", order: &order},
		&orderWorker{id: "2", order: &order},
		&orderWorker{id: "3", order: &order},
	}}
	ws.Run(context.Background())
	ws.Stop()

	expected := []string{"run 1", "run 2", "run 3", "stop 3", "stop 2", "stop 1"}
	if len(order) != len(expected) {
		t.Fatalf("expected %d events, got %v", len(expected), order)
	}
	for i, v := range expected {
		if order[i] != v {
			t.Errorf("expected order[%d]=%q, got %q", i, v, order[i])
		}
	}
}

func TestTokenCleanupWorker_DelegatesToJanitor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	janitor := mock.NewMockResetTokenJanitor(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		janitor.EXPECT().Start(ctx, 10*time.Minute),
		janitor.EXPECT().Stop(),
	)

	ws := NewWorkers(&service.Services{Janitor: janitor}, config.Workers{TokenCleanupInterval: 10 * time.Minute})
	ws.Run(ctx)
	ws.Stop()
}

// orderWorker is a helper that records its run and stop events into a
// shared slice.
type orderWorker struct {
	id    string
	order *[]string
}

func (o *orderWorker) Run(context.Context) {
	*o.order = append(*o.order, "run "+o.id)
}

func (o *orderWorker) Stop() {
	*o.order = append(*o.order, "stop "+o.id)
}
