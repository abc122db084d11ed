package gfx

import (
	"encoding/binary"
	"image/color"
)

const biRGB = 0

// BitmapInfoHeader mirrors the Win32 BITMAPINFOHEADER.
type BitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// RGBQuad mirrors the Win32 RGBQUAD colour table entry.
type RGBQuad struct {
	Blue, Green, Red, Reserved uint8
}

// DIB is a device-independent bitmap: bottom-up rows padded to 4 bytes.
type DIB struct {
	Header BitmapInfoHeader
	Colors []RGBQuad
	Bits   []byte
}

// Info returns the BITMAPINFO block (header followed by the colour table)
// in the little-endian layout GDI expects.
func (d *DIB) Info() []byte {
	buf := make([]byte, 0, 40+4*len(d.Colors))
	buf = binary.LittleEndian.AppendUint32(buf, d.Header.Size)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(d.Header.Width))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(d.Header.Height))
	buf = binary.LittleEndian.AppendUint16(buf, d.Header.Planes)
	buf = binary.LittleEndian.AppendUint16(buf, d.Header.BitCount)
	buf = binary.LittleEndian.AppendUint32(buf, d.Header.Compression)
	buf = binary.LittleEndian.AppendUint32(buf, d.Header.SizeImage)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(d.Header.XPelsPerMeter))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(d.Header.YPelsPerMeter))
	buf = binary.LittleEndian.AppendUint32(buf, d.Header.ClrUsed)
	buf = binary.LittleEndian.AppendUint32(buf, d.Header.ClrImportant)
	for _, c := range d.Colors {
		buf = append(buf, c.Blue, c.Green, c.Red, c.Reserved)
	}
	return buf
}

// Stride is the padded length of one row in bytes.
func (d *DIB) Stride() int {
	return stride(int(d.Header.Width), int(d.Header.BitCount))
}

func stride(width, bits int) int {
	return (width*bits/8 + 3) &^ 3
}

// DIB converts the bitmap for SetDIBitsToDevice. Paletted bitmaps keep
// their indices and carry the palette as colour table.
func (b *Bitmap) DIB() *DIB {
	w, h := b.Width(), b.Height()
	d := &DIB{Header: BitmapInfoHeader{
		Size:        40,
		Width:       int32(w),
		Height:      int32(h),
		Planes:      1,
		BitCount:    uint16(b.Depth()),
		Compression: biRGB,
	}}
	s := d.Stride()
	d.Bits = make([]byte, s*h)
	d.Header.SizeImage = uint32(len(d.Bits))

	if p := b.paletted; p != nil {
		d.Colors = colorTable(p.Palette)
		d.Header.ClrUsed = uint32(len(d.Colors))
		for y := 0; y < h; y++ {
			copy(d.Bits[(h-1-y)*s:], p.Pix[y*p.Stride:y*p.Stride+w])
		}
		return d
	}

	img := b.rgba
	for y := 0; y < h; y++ {
		src := img.Pix[y*img.Stride:]
		dst := d.Bits[(h-1-y)*s:]
		for x := 0; x < w; x++ {
			dst[4*x] = src[4*x+2]
			dst[4*x+1] = src[4*x+1]
			dst[4*x+2] = src[4*x]
		}
	}
	return d
}

func colorTable(pal color.Palette) []RGBQuad {
	table := make([]RGBQuad, len(pal))
	for i, c := range pal {
		r, g, b, _ := c.RGBA()
		table[i] = RGBQuad{Blue: uint8(b >> 8), Green: uint8(g >> 8), Red: uint8(r >> 8)}
	}
	return table
}
