//go:build !tinygo && cgo

package hal

import (
	"time"

	"oledwire/internal/buildinfo"

	"github.com/hajimehoshi/ebiten/v2"
)

const windowTPS = 60

// WindowConfig controls the desktop simulator.
type WindowConfig struct {
	Scale int
	Host  HostConfig
}

// RunWindow starts a desktop window that shows the panel. It blocks until
// the window closes.
func RunWindow(newApp AppFactory, cfg WindowConfig) error {
	if cfg.Scale <= 0 {
		cfg.Scale = 4
	}
	h, err := newHost(cfg.Host)
	if err != nil {
		return err
	}
	defer h.Close()

	step, err := newApp(h)
	if err != nil {
		return err
	}

	g := &hostGame{h: h, step: step}
	ebiten.SetWindowTitle("oledwire (" + buildinfo.Short() + ")")
	ebiten.SetWindowSize(h.panel.width*cfg.Scale, h.panel.height*cfg.Scale)
	ebiten.SetTPS(windowTPS)
	return ebiten.RunGame(g)
}

type hostGame struct {
	h     *hostHAL
	pix   []byte
	fbImg *ebiten.Image
	step  func() error
}

func (g *hostGame) Update() error {
	g.h.timer.advance(time.Second / windowTPS)
	if g.step != nil {
		if err := g.step(); err != nil {
			return err
		}
	}
	return nil
}

func (g *hostGame) Draw(screen *ebiten.Image) {
	p := g.h.panel
	if g.fbImg == nil {
		g.pix = make([]byte, p.width*p.height*4)
		g.fbImg = ebiten.NewImage(p.width, p.height)
	}
	p.snapshotRGBA(g.pix)
	g.fbImg.WritePixels(g.pix)
	screen.DrawImage(g.fbImg, nil)
}

func (g *hostGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.h.panel.width, g.h.panel.height
}
