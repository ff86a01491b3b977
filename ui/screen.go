// Package ui owns the shared screen state: the canvas the scene renders into,
// the status label and the draw buffers handed to the flush stage.
package ui

import (
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"oledwire/gfx"
	"oledwire/internal/logging"
	"oledwire/kernel"
	"oledwire/lcd"
	"oledwire/scene"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

// InitialStatus is shown until the first sensor sample arrives.
const InitialStatus = "M: -% T: -C"

// Label placement: top-left corner of the text box, and the distance from it
// to the font baseline.
const (
	LabelX        = 2
	LabelY        = 2
	labelBaseline = 7
)

// Config wires a Screen.
type Config struct {
	Width, Height int

	// Wait bounds every lock acquisition; normally the scheduler cadence.
	Wait  time.Duration
	Mutex *kernel.Mutex

	Scene  *scene.Scene
	Panel  lcd.Presenter
	Font   tinyfont.Fonter
	Logger *slog.Logger
}

// Stats counts screen activity since start.
type Stats struct {
	Rendered       uint64
	Flushed        uint64
	Ready          uint64
	DroppedRedraws uint64
	DroppedFlushes uint64
}

// Screen renders the scene and the status label and pushes frames to the
// panel. Redraw, Refresh and SetStatus may be called from different
// goroutines; they serialize on the shared mutex.
type Screen struct {
	mu   *kernel.Mutex
	wait time.Duration
	log  *slog.Logger

	w, h   int
	canvas *gfx.Canvas
	scene  *scene.Scene
	font   tinyfont.Fonter
	label  string

	bufs    [2]*lcd.Bitmap
	active  int
	flusher *lcd.Flusher

	rendered       atomic.Uint64
	ready          atomic.Uint64
	droppedRedraws atomic.Uint64
	droppedFlushes atomic.Uint64
}

// NewScreen allocates the canvas, both draw buffers and the panel
// framebuffer.
func NewScreen(cfg Config) (*Screen, error) {
	if cfg.Scene == nil {
		return nil, errors.New("ui: nil scene")
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.New("ui: empty screen")
	}
	if cfg.Mutex == nil {
		cfg.Mutex = kernel.NewMutex()
	}
	if cfg.Font == nil {
		cfg.Font = &proggy.TinySZ8pt7b
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}

	s := &Screen{
		mu:     cfg.Mutex,
		wait:   cfg.Wait,
		log:    cfg.Logger,
		w:      cfg.Width,
		h:      cfg.Height,
		canvas: gfx.NewCanvas(cfg.Width, cfg.Height),
		scene:  cfg.Scene,
		font:   cfg.Font,
		label:  InitialStatus,
	}
	s.bufs[0] = lcd.NewBitmap(cfg.Width, cfg.Height)
	s.bufs[1] = lcd.NewBitmap(cfg.Width, cfg.Height)

	f, err := lcd.NewFlusher(lcd.FlusherConfig{
		Mutex:   cfg.Mutex,
		Wait:    cfg.Wait,
		Panel:   cfg.Panel,
		Width:   cfg.Width,
		Height:  cfg.Height,
		OnReady: s.frameReady,
		Logger:  cfg.Logger,
	})
	if err != nil {
		return nil, err
	}
	s.flusher = f
	s.canvas.Fill(gfx.Black)
	return s, nil
}

// Canvas exposes the render target. Hold the mutex while reading it.
func (s *Screen) Canvas() *gfx.Canvas { return s.canvas }

// Flusher exposes the flush stage.
func (s *Screen) Flusher() *lcd.Flusher { return s.flusher }

// Redraw renders one frame of the scene into the canvas and advances the
// animation. When the lock is busy the frame is skipped and the canvas keeps
// its previous contents.
func (s *Screen) Redraw() error {
	g, ok := s.mu.Acquire(s.wait)
	if !ok {
		s.droppedRedraws.Add(1)
		s.log.Warn("lock timeout", "task", "redraw", "wait", s.wait)
		return nil
	}
	defer g.Release()

	s.canvas.Fill(gfx.Black)
	s.scene.Draw(s.canvas, gfx.White)
	s.scene.Animate()
	s.rendered.Add(1)
	return nil
}

// Refresh composes the canvas and the label into the next draw buffer and
// flushes it to the panel.
func (s *Screen) Refresh() error {
	g, ok := s.mu.Acquire(s.wait)
	if !ok {
		s.droppedFlushes.Add(1)
		s.log.Warn("lock timeout", "task", "refresh", "wait", s.wait)
		return nil
	}
	buf := s.bufs[s.active]
	s.active ^= 1
	buf.DrawImage(s.canvas.Image())
	tinyfont.WriteLine(buf, s.font, LabelX, LabelY+labelBaseline, s.label, gfx.White)
	g.Release()

	return s.flusher.Flush(lcd.Full(s.w, s.h), buf.Bytes())
}

// SetStatus replaces the label text. It reports false when the lock could not
// be taken in time; the old text stays.
func (s *Screen) SetStatus(text string) bool {
	g, ok := s.mu.Acquire(s.wait)
	if !ok {
		s.log.Warn("lock timeout", "task", "status", "wait", s.wait)
		return false
	}
	defer g.Release()
	s.label = text
	return true
}

// Status returns the current label text.
func (s *Screen) Status() string {
	g, ok := s.mu.Acquire(s.wait)
	if !ok {
		return ""
	}
	defer g.Release()
	return s.label
}

func (s *Screen) frameReady() { s.ready.Add(1) }

// Stats returns a snapshot of the frame counters.
func (s *Screen) Stats() Stats {
	return Stats{
		Rendered:       s.rendered.Load(),
		Flushed:        s.flusher.Flushed(),
		Ready:          s.ready.Load(),
		DroppedRedraws: s.droppedRedraws.Load(),
		DroppedFlushes: s.droppedFlushes.Load() + s.flusher.Dropped(),
	}
}
