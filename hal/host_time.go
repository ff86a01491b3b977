//go:build !tinygo

package hal

import (
	"sync"
	"time"
)

type timerEntry struct {
	period time.Duration
	acc    time.Duration
	fn     func()
}

// hostTimer is driven by the runner: each frame advances virtual time and
// fires every callback whose period elapsed. This keeps headless runs
// deterministic.
type hostTimer struct {
	mu      sync.Mutex
	entries []*timerEntry
}

func newHostTimer() *hostTimer { return &hostTimer{} }

func (t *hostTimer) Every(period time.Duration, fn func()) {
	if period <= 0 || fn == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = append(t.entries, &timerEntry{period: period, fn: fn})
}

// advance moves virtual time forward by d.
func (t *hostTimer) advance(d time.Duration) {
	t.mu.Lock()
	entries := append([]*timerEntry(nil), t.entries...)
	t.mu.Unlock()

	for _, e := range entries {
		e.acc += d
		for e.acc >= e.period {
			e.acc -= e.period
			e.fn()
		}
	}
}
