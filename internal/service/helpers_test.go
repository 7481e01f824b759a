package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/MKhiriev/flow-bank/internal/store"
)

var testNow = time.Date(2026, time.March, 14, 10, 0, 0, 0, time.UTC)

// seqIDs returns "<prefix>-1", "<prefix>-2", ... in order.
type seqIDs struct {
	mu     sync.Mutex
	prefix string
	n      int
}

func (g *seqIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

func newMemoryStorages() *store.Storages {
	return store.NewTieredStorages(store.NewMemoryStore(), store.NewMemoryStore())
}
