// Package lcd converts rendered frames into the SSD1306 page layout and
// hands them to the panel.
package lcd

// Area is an inclusive pixel rectangle, (X1, Y1) to (X2, Y2).
type Area struct {
	X1, Y1 int
	X2, Y2 int
}

// Full returns the area covering a w×h panel.
func Full(w, h int) Area {
	return Area{X2: w - 1, Y2: h - 1}
}

func (a Area) Width() int  { return a.X2 - a.X1 + 1 }
func (a Area) Height() int { return a.Y2 - a.Y1 + 1 }

// Empty reports whether the area covers no pixels.
func (a Area) Empty() bool { return a.X2 < a.X1 || a.Y2 < a.Y1 }

// Within reports whether the area lies inside a w×h panel.
func (a Area) Within(w, h int) bool {
	return !a.Empty() && a.X1 >= 0 && a.Y1 >= 0 && a.X2 < w && a.Y2 < h
}
