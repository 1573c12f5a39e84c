package hal

// RGB565 packs an 8-bit RGB triple.
func RGB565(r, g, b uint8) uint16 {
	rr := uint16(r>>3) & 0x1F
	gg := uint16(g>>2) & 0x3F
	bb := uint16(b>>3) & 0x1F
	return (rr << 11) | (gg << 5) | bb
}

// RGB888From565 expands a packed pixel.
func RGB888From565(p uint16) (r, g, b uint8) {
	rr := (p >> 11) & 0x1F
	gg := (p >> 5) & 0x3F
	bb := p & 0x1F

	r = uint8((rr * 255) / 31)
	g = uint8((gg * 255) / 63)
	b = uint8((bb * 255) / 31)
	return r, g, b
}

// PixelAt reads the pixel at (x, y) from a little-endian RGB565 buffer.
func PixelAt(buf []byte, stride, x, y int) uint16 {
	i := y*stride + x*2
	if x < 0 || y < 0 || i+1 >= len(buf) {
		return 0
	}
	return uint16(buf[i]) | uint16(buf[i+1])<<8
}
