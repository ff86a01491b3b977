// Package gfx holds the RGBA canvas the scene is rasterized into and the
// line primitive used for wireframes.
//
// Canvas implements drivers.Displayer, so tinyfont and any other TinyGo
// drawing code can target it directly.
package gfx

import (
	"image"
	"image/color"
)

var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 0xFF}
	White = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

// Canvas is a fixed-size RGBA pixel buffer, 4 bytes per pixel.
type Canvas struct {
	img *image.RGBA
}

// NewCanvas allocates a w×h canvas cleared to transparent black.
func NewCanvas(w, h int) *Canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Canvas{img: image.NewRGBA(image.Rect(0, 0, w, h))}
}

// Image exposes the backing image. Callers must hold whatever lock guards
// the canvas while reading it.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Pix returns the raw RGBA bytes.
func (c *Canvas) Pix() []byte { return c.img.Pix }

func (c *Canvas) Bounds() image.Rectangle { return c.img.Rect }

func (c *Canvas) Size() (x, y int16) {
	r := c.img.Rect
	return int16(r.Dx()), int16(r.Dy())
}

func (c *Canvas) SetPixel(x, y int16, col color.RGBA) {
	ix, iy := int(x), int(y)
	r := c.img.Rect
	if ix < r.Min.X || iy < r.Min.Y || ix >= r.Max.X || iy >= r.Max.Y {
		return
	}
	off := c.img.PixOffset(ix, iy)
	p := c.img.Pix[off : off+4 : off+4]
	p[0] = col.R
	p[1] = col.G
	p[2] = col.B
	p[3] = col.A
}

// At returns the pixel at (x, y); out-of-bounds reads are transparent.
func (c *Canvas) At(x, y int) color.RGBA {
	return c.img.RGBAAt(x, y)
}

// Display is a no-op: the canvas is presented by the flush stage.
func (c *Canvas) Display() error { return nil }

// Fill paints every pixel with col.
func (c *Canvas) Fill(col color.RGBA) {
	pix := c.img.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		pix[i] = col.R
		pix[i+1] = col.G
		pix[i+2] = col.B
		pix[i+3] = col.A
	}
}
