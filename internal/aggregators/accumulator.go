package aggregators

import (
	"sync"

	"webstrate-analytics/internal/models"
)

// Accumulator holds the in-memory per-interval counters awaiting the next
// flush: webstrateId -> userId -> counters. Entries are created lazily on first
// activity and the whole structure is handed off at each flush boundary.
type Accumulator struct {
	mu       sync.Mutex
	counters map[string]map[string]*models.UserCounts
}

func NewAccumulator() *Accumulator {
	return &Accumulator{
		counters: make(map[string]map[string]*models.UserCounts),
	}
}

// Add increments the counter matching kind for the given webstrate and user.
// Kinds that are not counted are ignored without creating entries.
func (a *Accumulator) Add(webstrateID, userID string, kind models.EventKind) {
	if !kind.IsCounted() {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	users, ok := a.counters[webstrateID]
	if !ok {
		users = make(map[string]*models.UserCounts)
		a.counters[webstrateID] = users
	}

	counts, ok := users[userID]
	if !ok {
		counts = &models.UserCounts{}
		users[userID] = counts
	}

	switch kind {
	case models.KindDom:
		counts.Dom++
	case models.KindSignal:
		counts.Signal++
	}
}

// Swap atomically takes ownership of the current counters and installs a fresh
// empty structure. The replacement is a single pointer swap under the lock, so
// every concurrent Add lands entirely in either the returned structure or the
// new one, never split across both.
func (a *Accumulator) Swap() map[string]map[string]*models.UserCounts {
	a.mu.Lock()
	defer a.mu.Unlock()

	taken := a.counters
	a.counters = make(map[string]map[string]*models.UserCounts)
	return taken
}

// Size returns the number of webstrates with pending counters.
func (a *Accumulator) Size() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.counters)
}
