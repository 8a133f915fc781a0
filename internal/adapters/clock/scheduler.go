// Package clock implements the timer scheduler port with wall-clock one-shot
// timers.
package clock

import (
	"sync"
	"time"

	"github.com/verdant-labs/grove/internal/domain"
	"github.com/verdant-labs/grove/internal/ports"
)

// Scheduler arms one-shot timers backed by time.AfterFunc. Handles are drawn
// from a monotonically increasing counter, so no two scheduling calls ever
// share a handle. Completions run on the timer goroutine.
type Scheduler struct {
	mu       sync.Mutex
	next     domain.TimerHandle
	byEntity map[string]domain.TimerHandle
	pending  map[domain.TimerHandle]*pendingTimer
}

type pendingTimer struct {
	entityID string
	complete ports.CompletionFunc
	timer    *time.Timer
}

// NewScheduler creates a scheduler with no armed timers.
func NewScheduler() *Scheduler {
	return &Scheduler{
		byEntity: make(map[string]domain.TimerHandle),
		pending:  make(map[domain.TimerHandle]*pendingTimer),
	}
}

// Schedule arms a one-shot timer for entityID. Returns the zero handle if the
// entity already has an active timer.
func (s *Scheduler) Schedule(entityID string, d time.Duration, complete ports.CompletionFunc) domain.TimerHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, active := s.byEntity[entityID]; active {
		return 0
	}

	s.next++
	handle := s.next
	p := &pendingTimer{entityID: entityID, complete: complete}
	s.byEntity[entityID] = handle
	s.pending[handle] = p

	// The timer callback races with Cancel; fire() re-checks the pending
	// map under the lock before delivering the completion.
	p.timer = time.AfterFunc(d, func() { s.fire(handle) })

	return handle
}

// Cancel releases the timer identified by handle. Idempotent; cancelling an
// already fired or cancelled handle is a no-op.
func (s *Scheduler) Cancel(handle domain.TimerHandle) {
	if handle == 0 {
		return
	}

	s.mu.Lock()
	p, ok := s.pending[handle]
	if !ok {
		s.mu.Unlock()
		return
	}
	delete(s.pending, handle)
	delete(s.byEntity, p.entityID)
	s.mu.Unlock()

	p.timer.Stop()
}

// Active reports whether entityID currently has an armed timer.
func (s *Scheduler) Active(entityID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.byEntity[entityID]
	return ok
}

func (s *Scheduler) fire(handle domain.TimerHandle) {
	s.mu.Lock()
	p, ok := s.pending[handle]
	if !ok {
		// Cancelled between expiry and acquiring the lock.
		s.mu.Unlock()
		return
	}
	delete(s.pending, handle)
	delete(s.byEntity, p.entityID)
	s.mu.Unlock()

	if p.complete != nil {
		p.complete(p.entityID, handle)
	}
}

// Ensure Scheduler implements the port.
var _ ports.Scheduler = (*Scheduler)(nil)
