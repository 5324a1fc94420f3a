/*
Package image implements an LVGL v9 binary image decoder and encoder.

The format is a fixed 12 byte little-endian header followed by the pixel
payload. The header carries a magic byte, the colour format, a flags word,
the image width, height and row stride in bytes, and a reserved word. The
only colour format supported is RGB565; each pixel is stored as a packed
little-endian 16-bit value, rows top to bottom with no padding between
them, so the payload is exactly width*height*2 bytes. There is no
compression.
*/
package image

const (
	magic        = 0x19
	formatRGB565 = 0x12
	headerSize   = 12
	bitsPerPixel = 16
	maxDimension = 0xffff
)
