package kernel

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
)

// Mutex serializes access to shared UI state with bounded-wait acquisition.
//
// Holders get a Guard; releasing it more than once is harmless, so
// `defer g.Release()` is correct on every return path.
type Mutex struct {
	sem *semaphore.Weighted
}

// NewMutex returns an unlocked mutex.
func NewMutex() *Mutex {
	return &Mutex{sem: semaphore.NewWeighted(1)}
}

// Guard is a held lock.
type Guard struct {
	m    *Mutex
	held bool
}

// Acquire waits up to wait for the lock. A non-positive wait only tries once.
// ok is false when the lock was not obtained; the returned Guard is then
// inert.
func (m *Mutex) Acquire(wait time.Duration) (g Guard, ok bool) {
	if m.sem.TryAcquire(1) {
		return Guard{m: m, held: true}, true
	}
	if wait <= 0 {
		return Guard{}, false
	}

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	if err := m.sem.Acquire(ctx, 1); err != nil {
		return Guard{}, false
	}
	return Guard{m: m, held: true}, true
}

// Held reports whether g still owns the lock.
func (g *Guard) Held() bool { return g.held }

// Release unlocks the mutex if g still holds it.
func (g *Guard) Release() {
	if !g.held {
		return
	}
	g.held = false
	g.m.sem.Release(1)
}
