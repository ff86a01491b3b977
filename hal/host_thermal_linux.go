//go:build !tinygo && linux

package hal

import (
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
	"periph.io/x/host/v3/sysfs"
)

type sysfsThermometer struct {
	s *sysfs.ThermalSensor
}

// openThermometer returns nil when no thermal zone is present.
func openThermometer() thermometer {
	if _, err := host.Init(); err != nil {
		return nil
	}
	s, err := sysfs.ThermalSensorByName("thermal_zone0")
	if err != nil {
		return nil
	}
	return &sysfsThermometer{s: s}
}

func (t *sysfsThermometer) celsius() (float32, error) {
	var e physic.Env
	if err := t.s.Sense(&e); err != nil {
		return 0, err
	}
	return float32(float64(e.Temperature-physic.ZeroCelsius) / float64(physic.Celsius)), nil
}
