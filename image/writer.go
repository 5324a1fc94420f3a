package image

import (
	"encoding/binary"
	"errors"
	"image"
	"io"
)

var errTooBig = errors.New("lvtile: image dimensions do not fit in 16 bits")

type encoder struct {
	w io.Writer
}

func (e *encoder) writeHeader(width, height int) error {
	var hdr [headerSize]byte

	hdr[0] = magic
	hdr[1] = formatRGB565
	binary.LittleEndian.PutUint16(hdr[2:], 0) // flags: no compression, no premultiplied alpha
	binary.LittleEndian.PutUint16(hdr[4:], uint16(width))
	binary.LittleEndian.PutUint16(hdr[6:], uint16(height))
	binary.LittleEndian.PutUint16(hdr[8:], uint16((width*bitsPerPixel+7)>>3))
	binary.LittleEndian.PutUint16(hdr[10:], 0) // reserved

	_, err := e.w.Write(hdr[:])
	return err
}

func (e *encoder) encode(m image.Image) error {
	bounds := m.Bounds()

	if err := e.writeHeader(bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	var tmp [2]byte
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := m.At(x, y).RGBA()

			binary.LittleEndian.PutUint16(tmp[:], RGB565(byte(r>>8), byte(g>>8), byte(b>>8)))

			if _, err := e.w.Write(tmp[:]); err != nil {
				return err
			}
		}
	}

	return nil
}

// Encode writes the Image m to w in LVGL binary image format.
func Encode(w io.Writer, m image.Image) error {
	b := m.Bounds()
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		return errTooBig
	}

	e := encoder{w: w}

	return e.encode(m)
}
