package winsound

import (
	"bytes"
	"fmt"
	"image/color"
	"log"

	"github.com/Lundis/go-winsound/gfx"
)

// LoadBitmap reads an image using the current colour conversion.
func (l *Library) LoadBitmap(path string) (*gfx.Bitmap, color.Palette, error) {
	raw, err := l.readFile(path)
	if err != nil {
		return nil, nil, err
	}
	bmp, pal, err := gfx.Load(bytes.NewReader(raw), l.ColorConversion())
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	log.Printf("winsound: loaded %s (%dx%d, %d-bit)", path, bmp.Width(), bmp.Height(), bmp.Depth())
	return bmp, pal, nil
}
