package image

// RGB565 packs an 8 bit per channel RGB triple into a 16-bit RGB565 value;
// red occupies bits 15-11, green bits 10-5 and blue bits 4-0. Channels are
// truncated, not rounded.
func RGB565(r, g, b byte) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}

func unpack565(p uint16) (r, g, b byte) {
	r = byte(p >> 11 & 0x1f)
	g = byte(p >> 5 & 0x3f)
	b = byte(p & 0x1f)

	// Expand back to 8 bits per channel so that pure RGB565 colours
	// survive a round trip.
	return r<<3 | r>>2, g<<2 | g>>4, b<<3 | b>>2
}
