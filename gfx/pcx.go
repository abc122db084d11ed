package gfx

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
)

const pcxHeaderSize = 128

var ErrPCXFormat = errors.New("gfx: bad or unsupported pcx")

func init() {
	image.RegisterFormat("pcx", "\x0a?\x01", DecodePCX, DecodePCXConfig)
}

type pcxHeader struct {
	bitsPerPixel int
	planes       int
	bytesPerLine int
	width        int
	height       int
}

func readPCXHeader(r io.Reader) (pcxHeader, error) {
	var h pcxHeader
	var b [pcxHeaderSize]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return h, fmt.Errorf("gfx: pcx header: %w", err)
	}
	if b[0] != 0x0a || b[2] != 1 {
		return h, ErrPCXFormat
	}
	xmin, ymin := int(u16(b[4:])), int(u16(b[6:]))
	xmax, ymax := int(u16(b[8:])), int(u16(b[10:]))
	h.bitsPerPixel = int(b[3])
	h.planes = int(b[65])
	h.bytesPerLine = int(u16(b[66:]))
	h.width = xmax - xmin + 1
	h.height = ymax - ymin + 1
	if h.width <= 0 || h.height <= 0 || h.bytesPerLine < h.width {
		return h, fmt.Errorf("gfx: pcx dimensions %dx%d: %w", h.width, h.height, ErrPCXFormat)
	}
	if h.bitsPerPixel != 8 || (h.planes != 1 && h.planes != 3) {
		return h, fmt.Errorf("gfx: pcx with %d bits and %d planes: %w", h.bitsPerPixel, h.planes, ErrPCXFormat)
	}
	return h, nil
}

// DecodePCXConfig reads the dimensions and colour model of a PCX image.
func DecodePCXConfig(r io.Reader) (image.Config, error) {
	h, err := readPCXHeader(r)
	if err != nil {
		return image.Config{}, err
	}
	model := color.RGBAModel
	if h.planes == 1 {
		model = color.Palette(make([]color.Color, 256))
	}
	return image.Config{ColorModel: model, Width: h.width, Height: h.height}, nil
}

// DecodePCX decodes a run-length encoded PCX image. 8-bit images become
// *image.Paletted using the trailing 256 colour palette, 24-bit images
// stored as three planes become *image.RGBA.
func DecodePCX(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	h, err := readPCXHeader(br)
	if err != nil {
		return nil, err
	}

	line := make([]byte, h.planes*h.bytesPerLine)
	rect := image.Rect(0, 0, h.width, h.height)

	if h.planes == 3 {
		img := image.NewRGBA(rect)
		for y := 0; y < h.height; y++ {
			if err := readPCXLine(br, line); err != nil {
				return nil, err
			}
			row := img.Pix[y*img.Stride:]
			for x := 0; x < h.width; x++ {
				row[4*x] = line[x]
				row[4*x+1] = line[h.bytesPerLine+x]
				row[4*x+2] = line[2*h.bytesPerLine+x]
				row[4*x+3] = 0xff
			}
		}
		return img, nil
	}

	img := image.NewPaletted(rect, nil)
	for y := 0; y < h.height; y++ {
		if err := readPCXLine(br, line); err != nil {
			return nil, err
		}
		copy(img.Pix[y*img.Stride:], line[:h.width])
	}

	// The palette follows the image data, introduced by a 0x0c marker.
	marker, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("gfx: pcx palette: %w", ErrPCXFormat)
	}
	for marker != 0x0c {
		if marker, err = br.ReadByte(); err != nil {
			return nil, fmt.Errorf("gfx: pcx palette: %w", ErrPCXFormat)
		}
	}
	var raw [768]byte
	if _, err := io.ReadFull(br, raw[:]); err != nil {
		return nil, fmt.Errorf("gfx: pcx palette: %w", ErrPCXFormat)
	}
	img.Palette = make(color.Palette, 256)
	for i := range img.Palette {
		img.Palette[i] = color.RGBA{R: raw[3*i], G: raw[3*i+1], B: raw[3*i+2], A: 0xff}
	}
	return img, nil
}

func readPCXLine(br *bufio.Reader, line []byte) error {
	for i := 0; i < len(line); {
		c, err := br.ReadByte()
		if err != nil {
			return fmt.Errorf("gfx: pcx scanline: %w", ErrPCXFormat)
		}
		n := 1
		if c&0xc0 == 0xc0 {
			n = int(c & 0x3f)
			if c, err = br.ReadByte(); err != nil {
				return fmt.Errorf("gfx: pcx scanline: %w", ErrPCXFormat)
			}
		}
		// Runs may spill into the next plane but never past the line.
		for ; n > 0 && i < len(line); n-- {
			line[i] = c
			i++
		}
	}
	return nil
}

func u16(b []byte) uint16 {
	return uint16(b[0]) | uint16(b[1])<<8
}
