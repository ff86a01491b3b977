package hal

import (
	"errors"
	"time"
)

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

var ErrNotImplemented = errors.New("not implemented")

// Panel is a 1-bpp display with SSD1306 page layout: byte w*(y/8)+x holds
// rows y&^7 .. y|7 of column x, LSB on top.
type Panel interface {
	Width() int
	Height() int

	// Present pushes the region (x, y, w, h) to the glass. fb is always the
	// whole framebuffer.
	Present(x, y, w, h int, fb []byte) error
}

// Timer delivers periodic callbacks from the platform's tick context.
//
// Callbacks must not block: they run where an interrupt handler would.
type Timer interface {
	Every(period time.Duration, fn func())
}

// Stats is one sample of system health.
type Stats struct {
	// UsedMemPercent is heap in use relative to what the runtime holds,
	// 0..100, or -1 when unknown.
	UsedMemPercent int
	// TemperatureC is the die or board temperature; NaN when unknown.
	TemperatureC float32
}

// Sensors samples system health.
type Sensors interface {
	Sample() (Stats, error)
}

// HAL provides the only contact point between the program and the outside world.
type HAL interface {
	Logger() Logger
	Panel() Panel
	Timer() Timer
	Sensors() Sensors
}

// AppFactory builds the program on top of a HAL and returns its per-frame
// step function. Runners call it once.
type AppFactory func(HAL) (step func() error, err error)
