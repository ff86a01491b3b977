package lcd

import (
	"image"
	"image/color"
)

// PaletteSize is the length of the two-entry BGRA palette that precedes the
// pixel rows of a Bitmap.
const PaletteSize = 8

// palette entries: index 0 black, index 1 white.
var palette = [PaletteSize]byte{
	0x00, 0x00, 0x00, 0xFF,
	0xFF, 0xFF, 0xFF, 0xFF,
}

// Stride returns the byte length of one row of a w-pixel-wide bitmap.
func Stride(w int) int { return (w + 7) / 8 }

// BitmapSize returns the byte length of a w×h bitmap including its palette.
func BitmapSize(w, h int) int { return PaletteSize + Stride(w)*h }

// Bitmap is a packed 1-bpp image: palette header, then row-major rows with
// the leftmost pixel in the most significant bit.
//
// Bitmap implements drivers.Displayer so text can be drawn straight into it.
type Bitmap struct {
	w, h   int
	stride int
	buf    []byte
}

// NewBitmap allocates a cleared w×h bitmap with its palette written.
func NewBitmap(w, h int) *Bitmap {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	b := &Bitmap{w: w, h: h, stride: Stride(w), buf: make([]byte, BitmapSize(w, h))}
	copy(b.buf, palette[:])
	return b
}

// Bytes returns the palette header followed by the pixel rows.
func (b *Bitmap) Bytes() []byte { return b.buf }

func (b *Bitmap) Size() (x, y int16) { return int16(b.w), int16(b.h) }

// Set turns the pixel at (x, y) on or off.
func (b *Bitmap) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return
	}
	i := PaletteSize + y*b.stride + x/8
	mask := byte(0x80) >> uint(x%8)
	if on {
		b.buf[i] |= mask
	} else {
		b.buf[i] &^= mask
	}
}

// Get reports whether the pixel at (x, y) is on.
func (b *Bitmap) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= b.w || y >= b.h {
		return false
	}
	return b.buf[PaletteSize+y*b.stride+x/8]&(0x80>>uint(x%8)) != 0
}

func (b *Bitmap) SetPixel(x, y int16, c color.RGBA) {
	b.Set(int(x), int(y), lit(c.R, c.G, c.B, c.A))
}

func (b *Bitmap) Display() error { return nil }

// DrawImage thresholds src into the bitmap, pixel for pixel from src's
// origin. Pixels outside src are turned off.
func (b *Bitmap) DrawImage(src image.Image) {
	r := src.Bounds()
	rgba, _ := src.(*image.RGBA)
	for y := 0; y < b.h; y++ {
		for x := 0; x < b.w; x++ {
			sx, sy := r.Min.X+x, r.Min.Y+y
			on := false
			if sx < r.Max.X && sy < r.Max.Y {
				if rgba != nil {
					c := rgba.RGBAAt(sx, sy)
					on = lit(c.R, c.G, c.B, c.A)
				} else {
					c := color.RGBAModel.Convert(src.At(sx, sy)).(color.RGBA)
					on = lit(c.R, c.G, c.B, c.A)
				}
			}
			b.Set(x, y, on)
		}
	}
}

// lit is the monochrome threshold: transparent pixels are off, the rest are
// on when their luma exceeds half scale.
func lit(r, g, b, a uint8) bool {
	if a == 0 {
		return false
	}
	return (77*uint32(r)+151*uint32(g)+28*uint32(b))>>8 > 127
}
