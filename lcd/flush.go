package lcd

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"oledwire/internal/logging"
	"oledwire/kernel"
)

var (
	ErrBadArea     = errors.New("lcd: area outside panel")
	ErrShortBitmap = errors.New("lcd: bitmap shorter than area")
)

// Presenter pushes a region of the panel framebuffer to the hardware.
// fb is always the whole framebuffer in page layout.
type Presenter interface {
	Present(x, y, w, h int, fb []byte) error
}

// Flusher converts packed bitmaps into a Framebuffer and presents it.
type Flusher struct {
	mu      *kernel.Mutex
	wait    time.Duration
	fb      *Framebuffer
	panel   Presenter
	onReady func()
	log     *slog.Logger

	flushed atomic.Uint64
	dropped atomic.Uint64
}

// FlusherConfig wires a Flusher. Mutex is shared with every other writer of
// UI state; Wait bounds each acquisition.
type FlusherConfig struct {
	Mutex   *kernel.Mutex
	Wait    time.Duration
	Panel   Presenter
	Width   int
	Height  int
	OnReady func()
	Logger  *slog.Logger
}

// NewFlusher allocates the framebuffer for cfg.Width×cfg.Height.
func NewFlusher(cfg FlusherConfig) (*Flusher, error) {
	if cfg.Panel == nil {
		return nil, errors.New("lcd: nil panel")
	}
	fb, err := NewFramebuffer(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	mu := cfg.Mutex
	if mu == nil {
		mu = kernel.NewMutex()
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Nop()
	}
	return &Flusher{
		mu:      mu,
		wait:    cfg.Wait,
		fb:      fb,
		panel:   cfg.Panel,
		onReady: cfg.OnReady,
		log:     log,
	}, nil
}

// Framebuffer exposes the converted frame. Read it only while no flush runs.
func (f *Flusher) Framebuffer() *Framebuffer { return f.fb }

// Flushed and Dropped count presented and skipped frames.
func (f *Flusher) Flushed() uint64 { return f.flushed.Load() }
func (f *Flusher) Dropped() uint64 { return f.dropped.Load() }

// Flush converts px, a Bitmap covering exactly area, into the framebuffer and
// presents it. When the lock cannot be taken in time the frame is dropped:
// frame-ready still fires and Flush returns nil. A present failure is
// returned.
func (f *Flusher) Flush(area Area, px []byte) error {
	fw, fh := f.fb.Size()
	if !area.Within(fw, fh) {
		return fmt.Errorf("%w: %+v", ErrBadArea, area)
	}
	w, h := area.Width(), area.Height()
	stride := Stride(w)
	if len(px) < PaletteSize+stride*h {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrShortBitmap, len(px), w, h)
	}

	g, ok := f.mu.Acquire(f.wait)
	if !ok {
		f.dropped.Add(1)
		f.ready()
		f.log.Warn("lock timeout", "task", "flush", "wait", f.wait)
		return nil
	}
	defer g.Release()

	rows := px[PaletteSize:]
	for y := 0; y < h; y++ {
		row := rows[y*stride : (y+1)*stride]
		for x := 0; x < w; x++ {
			on := row[x/8]&(0x80>>uint(x%8)) != 0
			f.fb.Set(area.X1+x, area.Y1+y, on)
		}
	}

	if err := f.panel.Present(area.X1, area.Y1, w, h, f.fb.Bytes()); err != nil {
		return fmt.Errorf("lcd: present: %w", err)
	}
	f.flushed.Add(1)
	g.Release()
	f.ready()
	return nil
}

func (f *Flusher) ready() {
	if f.onReady != nil {
		f.onReady()
	}
}
