package hal

// OLED colors used when a panel framebuffer is shown on a color screen.
var (
	pixelOn  = [3]uint8{0xE8, 0xF4, 0xFF}
	pixelOff = [3]uint8{0x04, 0x06, 0x0A}
)

// expandPages converts a w×h page-layout framebuffer into RGBA bytes.
// dst must hold w*h*4 bytes.
func expandPages(dst, fb []byte, w, h int) {
	for y := 0; y < h; y++ {
		page := w * (y / 8)
		mask := byte(1) << uint(y%8)
		for x := 0; x < w; x++ {
			c := pixelOff
			if i := page + x; i < len(fb) && fb[i]&mask != 0 {
				c = pixelOn
			}
			j := (y*w + x) * 4
			if j+3 >= len(dst) {
				return
			}
			dst[j+0] = c[0]
			dst[j+1] = c[1]
			dst[j+2] = c[2]
			dst[j+3] = 0xFF
		}
	}
}

// mirrorPages rotates a page-layout framebuffer by 180 degrees into dst.
func mirrorPages(dst, fb []byte, w, h int) {
	for i := range dst {
		dst[i] = 0
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if fb[w*(y/8)+x]&(1<<uint(y%8)) == 0 {
				continue
			}
			mx, my := w-1-x, h-1-y
			dst[w*(my/8)+mx] |= 1 << uint(my%8)
		}
	}
}
