// Package gfx loads background bitmaps and prepares them for GDI blitting.
package gfx

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/png"
	"io"
	"log"
	"sync"

	_ "golang.org/x/image/bmp"
)

// ColorConversion selects how Load treats paletted images.
type ColorConversion int

const (
	// ConvTotal converts every image to 32-bit RGBA.
	ConvTotal ColorConversion = iota
	// ConvNone keeps paletted images as 8-bit index data plus palette.
	ConvNone
)

func (c ColorConversion) String() string {
	switch c {
	case ConvTotal:
		return "total"
	case ConvNone:
		return "none"
	}
	return fmt.Sprintf("ColorConversion(%d)", int(c))
}

// Bitmap is an immutable in-memory image, either 8-bit paletted or 32-bit.
type Bitmap struct {
	paletted *image.Paletted
	rgba     *image.RGBA

	dibOnce sync.Once
	dib     *DIB
}

func (b *Bitmap) Bounds() image.Rectangle {
	if b.paletted != nil {
		return b.paletted.Bounds()
	}
	return b.rgba.Bounds()
}

func (b *Bitmap) Width() int  { return b.Bounds().Dx() }
func (b *Bitmap) Height() int { return b.Bounds().Dy() }

// Depth is 8 for paletted bitmaps and 32 otherwise.
func (b *Bitmap) Depth() int {
	if b.paletted != nil {
		return 8
	}
	return 32
}

func (b *Bitmap) Image() image.Image {
	if b.paletted != nil {
		return b.paletted
	}
	return b.rgba
}

// Load decodes a PCX, BMP, PNG or GIF image. The returned palette is the
// image's own palette for paletted sources and nil otherwise.
func Load(r io.Reader, conv ColorConversion) (*Bitmap, color.Palette, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, nil, fmt.Errorf("gfx: %w", err)
	}

	var pal color.Palette
	if p, ok := img.(*image.Paletted); ok {
		pal = p.Palette
		if conv == ConvNone {
			return &Bitmap{paletted: normalize(p)}, pal, nil
		}
	}
	log.Printf("gfx: converted %s image to 32-bit", format)
	return &Bitmap{rgba: toRGBA(img)}, pal, nil
}

// normalize moves the image origin to (0,0).
func normalize(p *image.Paletted) *image.Paletted {
	if p.Rect.Min == (image.Point{}) {
		return p
	}
	out := image.NewPaletted(image.Rect(0, 0, p.Rect.Dx(), p.Rect.Dy()), p.Palette)
	for y := 0; y < out.Rect.Dy(); y++ {
		copy(out.Pix[y*out.Stride:], p.Pix[p.PixOffset(p.Rect.Min.X, p.Rect.Min.Y+y):][:out.Rect.Dx()])
	}
	return out
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Rect, img, b.Min, draw.Src)
	return out
}

func (b *Bitmap) cachedDIB() *DIB {
	b.dibOnce.Do(func() { b.dib = b.DIB() })
	return b.dib
}
