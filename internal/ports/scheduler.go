package ports

import (
	"time"

	"github.com/verdant-labs/grove/internal/domain"
)

// CompletionFunc receives a timer completion. The handle is the one returned
// by the Schedule call that armed the timer, letting callers discard stale
// completions after a re-arm.
type CompletionFunc func(entityID string, handle domain.TimerHandle)

// Scheduler arms one-shot growth timers and cancels them on demand.
//
// Schedule never blocks; completions are delivered asynchronously on an
// independent goroutine. A timer fires at most once, and never after a
// successful Cancel, even when cancellation and firing race.
type Scheduler interface {
	// Schedule arms a one-shot timer that invokes complete with entityID
	// and the returned handle after d elapses. Returns the zero handle,
	// arming nothing, if entityID already has an active timer; callers
	// must cancel first.
	Schedule(entityID string, d time.Duration, complete CompletionFunc) domain.TimerHandle

	// Cancel releases the timer identified by handle. Cancelling an
	// already fired, already cancelled or zero handle is a no-op.
	Cancel(handle domain.TimerHandle)
}
