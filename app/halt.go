package app

import (
	"log/slog"
	"strings"

	"oledwire/gfx"
	"oledwire/hal"
	"oledwire/lcd"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const haltLineHeight = 10

// showHalt paints an error screen straight to the panel, bypassing the UI
// lock: whatever held it is not coming back.
func showHalt(p hal.Panel, err error) error {
	w, h := p.Width(), p.Height()
	bm := lcd.NewBitmap(w, h)
	font := &proggy.TinySZ8pt7b

	lines := []string{"HALT"}
	if err != nil {
		lines = append(lines, wrap(font, err.Error(), w-4)...)
	}
	for i, l := range lines {
		y := int16(haltLineHeight * (i + 1))
		if int(y) > h {
			break
		}
		tinyfont.WriteLine(bm, font, 2, y, l, gfx.White)
	}

	f, ferr := lcd.NewFlusher(lcd.FlusherConfig{Panel: p, Width: w, Height: h})
	if ferr != nil {
		return ferr
	}
	return f.Flush(lcd.Full(w, h), bm.Bytes())
}

// wrap splits s into lines no wider than maxW pixels, breaking at spaces
// where possible.
func wrap(font tinyfont.Fonter, s string, maxW int) []string {
	var out []string
	var cur string
	for _, word := range strings.Fields(s) {
		next := word
		if cur != "" {
			next = cur + " " + word
		}
		if w, _ := tinyfont.LineWidth(font, next); int(w) <= maxW || cur == "" {
			cur = next
			continue
		}
		out = append(out, cur)
		cur = word
	}
	if cur != "" {
		out = append(out, cur)
	}
	return out
}

func logStack(log *slog.Logger, stack []byte) {
	for _, line := range strings.Split(string(stack), "\n") {
		if line == "" {
			continue
		}
		log.Error("stack", "line", line)
	}
}
