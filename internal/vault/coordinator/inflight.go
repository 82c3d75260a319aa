package coordinator

import (
	"sync"

	"github.com/lightningnetwork/lnd/fn/v2"
)

// inflight is the local advisory lock set for records with external work
// outstanding.
type inflight[K comparable] struct {
	mu  sync.Mutex
	set fn.Set[K]
}

func newInflight[K comparable]() *inflight[K] {
	return &inflight[K]{set: fn.NewSet[K]()}
}

func (f *inflight[K]) tryAcquire(k K) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.set.Contains(k) {
		return false
	}
	f.set.Add(k)
	return true
}

func (f *inflight[K]) release(k K) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.set.Remove(k)
}

func (f *inflight[K]) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.set)
}
