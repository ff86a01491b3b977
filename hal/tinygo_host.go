//go:build tinygo && !baremetal

package hal

type tinyGoHostHAL struct {
	logger  *tinyGoHostLogger
	panel   *memPanel
	timer   *tinyGoTimer
	sensors *tinyGoSensors
}

// New returns a TinyGo-on-host HAL implementation.
//
// This is used by `tinygo run` targets like linux/wasm where there is no MCU
// pin mapping; frames are kept in memory only.
func New() HAL {
	return &tinyGoHostHAL{
		logger:  &tinyGoHostLogger{},
		panel:   &memPanel{w: 128, h: 64, buf: make([]byte, 128*64/8)},
		timer:   &tinyGoTimer{},
		sensors: &tinyGoSensors{},
	}
}

func (h *tinyGoHostHAL) Logger() Logger   { return h.logger }
func (h *tinyGoHostHAL) Panel() Panel     { return h.panel }
func (h *tinyGoHostHAL) Timer() Timer     { return h.timer }
func (h *tinyGoHostHAL) Sensors() Sensors { return h.sensors }

type tinyGoHostLogger struct{}

func (l *tinyGoHostLogger) WriteLineString(s string) {
	println(s)
}

func (l *tinyGoHostLogger) WriteLineBytes(b []byte) {
	println(string(b))
}

type memPanel struct {
	w, h int
	buf  []byte
}

func (p *memPanel) Width() int  { return p.w }
func (p *memPanel) Height() int { return p.h }

func (p *memPanel) Present(_, _, _, _ int, fb []byte) error {
	copy(p.buf, fb)
	return nil
}
