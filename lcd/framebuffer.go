package lcd

import "fmt"

// Framebuffer is the panel's native 1-bpp buffer. Each byte holds a vertical
// strip of 8 rows: byte w*(y/8)+x, bit y%8, LSB on top.
type Framebuffer struct {
	w, h int
	buf  []byte
}

// NewFramebuffer allocates a cleared w×h framebuffer. h must be a multiple
// of 8.
func NewFramebuffer(w, h int) (*Framebuffer, error) {
	if w <= 0 || h <= 0 || h%8 != 0 {
		return nil, fmt.Errorf("lcd: framebuffer %dx%d: %w", w, h, ErrBadArea)
	}
	return &Framebuffer{w: w, h: h, buf: make([]byte, w*h/8)}, nil
}

func (f *Framebuffer) Size() (w, h int) { return f.w, f.h }

// Bytes returns the backing buffer in panel order.
func (f *Framebuffer) Bytes() []byte { return f.buf }

// Set turns the pixel at (x, y) on or off. Out-of-range writes are ignored.
func (f *Framebuffer) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return
	}
	i := f.w*(y/8) + x
	mask := byte(1) << uint(y%8)
	if on {
		f.buf[i] |= mask
	} else {
		f.buf[i] &^= mask
	}
}

// Get reports whether the pixel at (x, y) is on.
func (f *Framebuffer) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= f.w || y >= f.h {
		return false
	}
	return f.buf[f.w*(y/8)+x]&(1<<uint(y%8)) != 0
}

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	for i := range f.buf {
		f.buf[i] = 0
	}
}
