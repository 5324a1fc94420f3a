package image

import (
	"encoding/binary"
	"errors"
	"image"
	"image/color"
	"io"
)

var (
	errBadMagic  = errors.New("lvtile: bad magic byte")
	errBadFormat = errors.New("lvtile: unsupported colour format")
	errBadStride = errors.New("lvtile: stride does not match width")
	errNotEnough = errors.New("lvtile: not enough image data")
	errTooMuch   = errors.New("lvtile: too much image data")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

type decoder struct {
	r io.Reader

	width  int
	height int

	image *image.RGBA
}

func (d *decoder) readHeader() error {
	var hdr [headerSize]byte
	if err := readFull(d.r, hdr[:]); err != nil {
		if err == io.ErrUnexpectedEOF {
			return errNotEnough
		}
		return err
	}

	if hdr[0] != magic {
		return errBadMagic
	}
	if hdr[1] != formatRGB565 {
		return errBadFormat
	}

	d.width = int(binary.LittleEndian.Uint16(hdr[4:]))
	d.height = int(binary.LittleEndian.Uint16(hdr[6:]))

	if int(binary.LittleEndian.Uint16(hdr[8:])) != (d.width*bitsPerPixel+7)>>3 {
		return errBadStride
	}

	return nil
}

func (d *decoder) readPixels() error {
	d.image = image.NewRGBA(image.Rect(0, 0, d.width, d.height))

	var tmp [2]byte
	for y := 0; y < d.height; y++ {
		for x := 0; x < d.width; x++ {
			if err := readFull(d.r, tmp[:]); err != nil {
				if err == io.ErrUnexpectedEOF {
					return errNotEnough
				}
				return err
			}

			r, g, b := unpack565(binary.LittleEndian.Uint16(tmp[:]))
			d.image.SetRGBA(x, y, color.RGBA{r, g, b, 0xff})
		}
	}

	return nil
}

func (d *decoder) decode(r io.Reader, configOnly bool) error {
	d.r = r

	if err := d.readHeader(); err != nil {
		return err
	}

	if configOnly {
		return nil
	}

	if err := d.readPixels(); err != nil {
		return err
	}

	var tmp [1]byte
	if n, err := r.Read(tmp[:]); n != 0 || (err != io.EOF && err != io.ErrUnexpectedEOF) {
		if err != nil && err != io.EOF {
			return err
		}
		return errTooMuch
	}

	return nil
}

// Decode reads an LVGL binary image from r and returns it as an
// image.Image.
func Decode(r io.Reader) (image.Image, error) {
	var d decoder
	if err := d.decode(r, false); err != nil {
		return nil, err
	}
	return d.image, nil
}

// DecodeConfig returns the color model and dimensions of an LVGL binary
// image without decoding the pixel payload.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var d decoder
	if err := d.decode(r, true); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.RGBAModel,
		Width:      d.width,
		Height:     d.height,
	}, nil
}
