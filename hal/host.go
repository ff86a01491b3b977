//go:build !tinygo

package hal

import (
	"fmt"
	"os"
	"sync"
)

// HostConfig selects the host backends.
type HostConfig struct {
	Width, Height int

	// Panel is "sim" (window/headless only) or "i2c" (a real SSD1306 on a
	// Linux I²C bus, mirrored to the simulator).
	Panel   string
	I2CBus  string
	Rotated bool
}

// DefaultHostConfig is a simulated 128×64 panel.
func DefaultHostConfig() HostConfig {
	return HostConfig{Width: 128, Height: 64, Panel: "sim"}
}

type hostHAL struct {
	logger  *hostLogger
	panel   *hostPanel
	timer   *hostTimer
	sensors *hostSensors
	closers []func() error
}

func newHost(cfg HostConfig) (*hostHAL, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Height%8 != 0 {
		return nil, fmt.Errorf("hal: bad panel size %dx%d", cfg.Width, cfg.Height)
	}
	h := &hostHAL{
		logger:  &hostLogger{w: os.Stdout},
		panel:   newHostPanel(cfg.Width, cfg.Height, cfg.Rotated),
		timer:   newHostTimer(),
		sensors: newHostSensors(),
	}

	switch cfg.Panel {
	case "", "sim":
	case "i2c":
		dev, err := openI2CPanel(cfg)
		if err != nil {
			return nil, err
		}
		h.panel.out = dev
		h.closers = append(h.closers, dev.Close)
	default:
		return nil, fmt.Errorf("hal: unknown panel %q", cfg.Panel)
	}
	return h, nil
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Panel() Panel     { return h.panel }
func (h *hostHAL) Timer() Timer     { return h.timer }
func (h *hostHAL) Sensors() Sensors { return h.sensors }

// Close releases hardware handles.
func (h *hostHAL) Close() error {
	var first error
	for _, c := range h.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	h.closers = nil
	return first
}

type hostLogger struct {
	mu sync.Mutex
	w  *os.File
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
