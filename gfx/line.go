package gfx

import (
	"image/color"

	"tinygo.org/x/drivers"
)

// DrawLine draws a one-pixel solid line from (x0, y0) to (x1, y1) inclusive.
// The segment is clipped to the displayer's bounds first; a segment entirely
// outside is skipped.
func DrawLine(d drivers.Displayer, x0, y0, x1, y1 int, c color.RGBA) {
	if d == nil {
		return
	}
	w, h := d.Size()
	x0, y0, x1, y1, ok := clipLine(x0, y0, x1, y1, int(w)-1, int(h)-1)
	if !ok {
		return
	}

	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		d.SetPixel(int16(x0), int16(y0), c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

const (
	outLeft = 1 << iota
	outRight
	outBottom
	outTop
)

func outCode(x, y, maxX, maxY int) int {
	code := 0
	if x < 0 {
		code |= outLeft
	} else if x > maxX {
		code |= outRight
	}
	if y < 0 {
		code |= outTop
	} else if y > maxY {
		code |= outBottom
	}
	return code
}

// clipLine is Cohen–Sutherland against [0, maxX]×[0, maxY].
func clipLine(x0, y0, x1, y1, maxX, maxY int) (int, int, int, int, bool) {
	if maxX < 0 || maxY < 0 {
		return 0, 0, 0, 0, false
	}
	c0 := outCode(x0, y0, maxX, maxY)
	c1 := outCode(x1, y1, maxX, maxY)
	for {
		if c0|c1 == 0 {
			return x0, y0, x1, y1, true
		}
		if c0&c1 != 0 {
			return 0, 0, 0, 0, false
		}

		out := c0
		if out == 0 {
			out = c1
		}
		var x, y int
		switch {
		case out&outBottom != 0:
			x = lerp(x0, x1, maxY-y0, y1-y0)
			y = maxY
		case out&outTop != 0:
			x = lerp(x0, x1, -y0, y1-y0)
			y = 0
		case out&outRight != 0:
			y = lerp(y0, y1, maxX-x0, x1-x0)
			x = maxX
		default:
			y = lerp(y0, y1, -x0, x1-x0)
			x = 0
		}

		if out == c0 {
			x0, y0 = x, y
			c0 = outCode(x0, y0, maxX, maxY)
		} else {
			x1, y1 = x, y
			c1 = outCode(x1, y1, maxX, maxY)
		}
	}
}

// lerp returns a + (b-a)*num/den in 64-bit so int16-range inputs cannot
// overflow a 32-bit int.
func lerp(a, b, num, den int) int {
	return a + int(int64(b-a)*int64(num)/int64(den))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
