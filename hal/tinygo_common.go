//go:build tinygo

package hal

import (
	"math"
	"runtime"
	"time"
)

// tinyGoTimer runs each callback on its own goroutine ticker. TinyGo has no
// portable timer interrupt; the callback contract is the same.
type tinyGoTimer struct{}

func (t *tinyGoTimer) Every(period time.Duration, fn func()) {
	if period <= 0 || fn == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(period)
		defer ticker.Stop()
		for range ticker.C {
			fn()
		}
	}()
}

type tinyGoSensors struct {
	// temp is nil when the target has no temperature sensor.
	temp func() float32
}

func (s *tinyGoSensors) Sample() (Stats, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	st := Stats{UsedMemPercent: heapPercent(&ms), TemperatureC: float32(math.NaN())}
	if s.temp != nil {
		st.TemperatureC = s.temp()
	}
	return st, nil
}
