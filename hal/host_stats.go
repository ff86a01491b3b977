//go:build !tinygo

package hal

import (
	"math"
	"runtime"
	"sync"
)

// hostSensors reports Go heap usage and, where the platform exposes one,
// the first thermal zone.
type hostSensors struct {
	once  sync.Once
	therm thermometer
}

type thermometer interface {
	celsius() (float32, error)
}

func newHostSensors() *hostSensors { return &hostSensors{} }

func (s *hostSensors) Sample() (Stats, error) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	st := Stats{UsedMemPercent: heapPercent(&ms), TemperatureC: float32(math.NaN())}

	s.once.Do(func() { s.therm = openThermometer() })
	if s.therm == nil {
		return st, nil
	}
	c, err := s.therm.celsius()
	if err != nil {
		return st, err
	}
	st.TemperatureC = c
	return st, nil
}
