package ui

import (
	"fmt"
	"log/slog"
	"math"

	"oledwire/hal"
	"oledwire/internal/logging"
)

// FormatStatus renders a sample as the label text. Unknown readings show as
// "-".
func FormatStatus(st hal.Stats) string {
	mem := "-"
	if st.UsedMemPercent >= 0 {
		mem = fmt.Sprintf("%d", st.UsedMemPercent)
	}
	temp := "-"
	if t := float64(st.TemperatureC); !math.IsNaN(t) && !math.IsInf(t, 0) {
		temp = fmt.Sprintf("%.0f", t)
	}
	return "M: " + mem + "% T: " + temp + "C"
}

// Status samples the sensors and writes the result to the screen label.
type Status struct {
	screen  *Screen
	sensors hal.Sensors
	log     *slog.Logger
}

func NewStatus(screen *Screen, sensors hal.Sensors, log *slog.Logger) *Status {
	if log == nil {
		log = logging.Nop()
	}
	return &Status{screen: screen, sensors: sensors, log: log}
}

// Refresh takes one sample. Sensor errors and lock timeouts leave the label
// as it was.
func (s *Status) Refresh() error {
	if s.sensors == nil {
		return nil
	}
	st, err := s.sensors.Sample()
	if err != nil {
		s.log.Warn("sensor sample failed", "err", err)
		return nil
	}
	text := FormatStatus(st)
	if s.screen.SetStatus(text) {
		s.log.Debug("status", "text", text)
	}
	return nil
}
