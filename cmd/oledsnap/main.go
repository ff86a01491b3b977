// Command oledsnap renders frames offline and writes the last one to disk,
// for docs and for diffing firmware changes without hardware.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"

	"oledwire/app"
	"oledwire/lcd"
	"oledwire/scene"
	"oledwire/ui"
)

func main() {
	var (
		outPath = flag.String("out", "", "Output file.")
		format  = flag.String("format", "png", "png|pbm|fb.")
		frames  = flag.Int("frames", 1, "Frames to render before capturing.")
		scale   = flag.Int("scale", 1, "Pixel scale (png only).")
		fov     = flag.Float64("fov", float64(scene.DefaultFOV), "Field-of-view scalar.")
		tangent = flag.Bool("tangent-fov", false, "Use tangent-based perspective.")
		status  = flag.String("status", ui.InitialStatus, "Status label text.")
	)
	flag.Parse()

	if *outPath == "" {
		fatalf("usage: oledsnap -out frame.png [-format png|pbm|fb] [-frames N] [-scale N] [-fov 75] [-tangent-fov] [-status text]")
	}
	if *frames <= 0 {
		fatalf("frames must be positive: %d", *frames)
	}

	cfg := app.DefaultConfig()
	fb, err := render(cfg, *frames, float32(*fov), *tangent, *status)
	if err != nil {
		fatalf("render: %v", err)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fatalf("%v", err)
	}
	w := bufio.NewWriter(out)
	switch strings.ToLower(*format) {
	case "png":
		err = png.Encode(w, toImage(fb, *scale))
	case "pbm":
		err = writePBM(w, fb)
	case "fb":
		_, err = w.Write(fb.Bytes())
	default:
		err = fmt.Errorf("unknown format: %s", *format)
	}
	if err == nil {
		err = w.Flush()
	}
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		fatalf("write %s: %v", *outPath, err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(2)
}

// capturePanel accepts every frame; the flusher's framebuffer is the result.
type capturePanel struct{ w, h int }

func (p capturePanel) Width() int                             { return p.w }
func (p capturePanel) Height() int                            { return p.h }
func (p capturePanel) Present(_, _, _, _ int, _ []byte) error { return nil }

func render(cfg app.Config, frames int, fov float32, tangent bool, status string) (*lcd.Framebuffer, error) {
	sc := scene.NewDefault(cfg.Width, cfg.Height)
	sc.FOV = scene.Scalar(fov)
	if tangent {
		sc.Projection = scene.ProjectTangent
	}
	s, err := ui.NewScreen(ui.Config{
		Width:  cfg.Width,
		Height: cfg.Height,
		Wait:   cfg.Cadence,
		Scene:  sc,
		Panel:  capturePanel{w: cfg.Width, h: cfg.Height},
	})
	if err != nil {
		return nil, err
	}
	s.SetStatus(status)
	for i := 0; i < frames; i++ {
		if err := s.Redraw(); err != nil {
			return nil, err
		}
		if err := s.Refresh(); err != nil {
			return nil, err
		}
	}
	return s.Flusher().Framebuffer(), nil
}

func toImage(fb *lcd.Framebuffer, scale int) *image.Gray {
	if scale <= 0 {
		scale = 1
	}
	w, h := fb.Size()
	img := image.NewGray(image.Rect(0, 0, w*scale, h*scale))
	for y := 0; y < h*scale; y++ {
		for x := 0; x < w*scale; x++ {
			if fb.Get(x/scale, y/scale) {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img
}

// writePBM emits a binary PBM (P4). Its rows are the same MSB-first packing
// as lcd.Bitmap, with 1 meaning black ink, so lit pixels are written as 0.
func writePBM(w io.Writer, fb *lcd.Framebuffer) error {
	fw, fh := fb.Size()
	bm := lcd.NewBitmap(fw, fh)
	for y := 0; y < fh; y++ {
		for x := 0; x < fw; x++ {
			bm.Set(x, y, !fb.Get(x, y))
		}
	}
	if _, err := fmt.Fprintf(w, "P4\n%d %d\n", fw, fh); err != nil {
		return err
	}
	_, err := w.Write(bm.Bytes()[lcd.PaletteSize:])
	return err
}
