package game

import (
	"sync"
	"time"
)

// Clock abstracts wall time so rounds can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a pending AfterFunc callback.
type Timer interface {
	Stop() bool
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// SystemClock is the real-time Clock.
var SystemClock Clock = systemClock{}

// SessionTimer calls fn once per interval until Stop is called.
type SessionTimer struct {
	clock    Clock
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	pending Timer
	stopped bool
}

// StartTimer arms a SessionTimer; the first call to fn happens one interval
// from now.
func StartTimer(clock Clock, interval time.Duration, fn func()) *SessionTimer {
	t := &SessionTimer{clock: clock, interval: interval, fn: fn}
	t.mu.Lock()
	t.pending = clock.AfterFunc(interval, t.fire)
	t.mu.Unlock()
	return t
}

func (t *SessionTimer) fire() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	t.pending = t.clock.AfterFunc(t.interval, t.fire)
	t.mu.Unlock()

	t.fn()
}

// Stop cancels the timer. It is safe to call more than once and from inside fn.
func (t *SessionTimer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	t.stopped = true
	if t.pending != nil {
		t.pending.Stop()
	}
}

// Stopped reports whether Stop has been called.
func (t *SessionTimer) Stopped() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopped
}
