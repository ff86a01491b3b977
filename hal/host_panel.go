//go:build !tinygo

package hal

import "sync"

// i2cPanel is a physical panel the host mirrors frames to.
type i2cPanel interface {
	Present(x, y, w, h int, fb []byte) error
	Close() error
}

// hostPanel keeps the last presented frame for the simulator and forwards
// it to real hardware when one is attached.
type hostPanel struct {
	mu       sync.Mutex
	width    int
	height   int
	rotated  bool
	buf      []byte
	presents uint64

	out i2cPanel
}

func newHostPanel(width, height int, rotated bool) *hostPanel {
	return &hostPanel{
		width:   width,
		height:  height,
		rotated: rotated,
		buf:     make([]byte, width*height/8),
	}
}

func (p *hostPanel) Width() int  { return p.width }
func (p *hostPanel) Height() int { return p.height }

func (p *hostPanel) Present(x, y, w, h int, fb []byte) error {
	p.mu.Lock()
	if p.rotated {
		mirrorPages(p.buf, fb, p.width, p.height)
	} else {
		copy(p.buf, fb)
	}
	p.presents++
	p.mu.Unlock()

	if p.out != nil {
		return p.out.Present(x, y, w, h, fb)
	}
	return nil
}

// Presents reports how many frames reached the panel.
func (p *hostPanel) Presents() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.presents
}

// snapshotRGBA renders the last frame as RGBA into dst (width*height*4).
func (p *hostPanel) snapshotRGBA(dst []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	expandPages(dst, p.buf, p.width, p.height)
}
