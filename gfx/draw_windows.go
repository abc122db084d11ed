//go:build windows

package gfx

import (
	"image/color"
	"sync"
	"unsafe"

	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var (
	gdi32 = windows.NewLazySystemDLL("gdi32.dll")

	procCreatePalette     = gdi32.NewProc("CreatePalette")
	procSelectPalette     = gdi32.NewProc("SelectPalette")
	procRealizePalette    = gdi32.NewProc("RealizePalette")
	procDeleteObject      = gdi32.NewProc("DeleteObject")
	procSetDIBitsToDevice = gdi32.NewProc("SetDIBitsToDevice")
)

const dibRGBColors = 0

type paletteEntry struct {
	Red, Green, Blue, Flags uint8
}

type logPalette struct {
	Version    uint16
	NumEntries uint16
	Entries    [256]paletteEntry
}

var (
	paletteMu sync.Mutex
	hpalette  windows.Handle
)

// SetPaletteToHDC selects pal into hdc and realizes it. The previously
// created palette is released.
func SetPaletteToHDC(hdc windows.Handle, pal color.Palette) error {
	if len(pal) == 0 {
		return nil
	}
	lp := logPalette{Version: 0x300, NumEntries: uint16(min(len(pal), 256))}
	for i := 0; i < int(lp.NumEntries); i++ {
		r, g, b, _ := pal[i].RGBA()
		lp.Entries[i] = paletteEntry{Red: uint8(r >> 8), Green: uint8(g >> 8), Blue: uint8(b >> 8)}
	}
	h, _, err := procCreatePalette.Call(uintptr(unsafe.Pointer(&lp)))
	if h == 0 {
		return errors.Wrap(err, "CreatePalette")
	}

	paletteMu.Lock()
	defer paletteMu.Unlock()
	procSelectPalette.Call(uintptr(hdc), h, 0)
	procRealizePalette.Call(uintptr(hdc))
	if hpalette != 0 {
		procDeleteObject.Call(uintptr(hpalette))
	}
	hpalette = windows.Handle(h)
	return nil
}

// DrawToHDC blits the whole bitmap with its top-left corner at (x, y).
func DrawToHDC(hdc windows.Handle, b *Bitmap, x, y int) error {
	d := b.cachedDIB()
	info := d.Info()
	h := int(d.Header.Height)
	lines, _, err := procSetDIBitsToDevice.Call(
		uintptr(hdc),
		uintptr(x), uintptr(y),
		uintptr(d.Header.Width), uintptr(h),
		0, 0,
		0, uintptr(h),
		uintptr(unsafe.Pointer(&d.Bits[0])),
		uintptr(unsafe.Pointer(&info[0])),
		dibRGBColors,
	)
	if lines == 0 {
		return errors.Wrap(err, "SetDIBitsToDevice")
	}
	return nil
}
