package win32

import (
	"encoding/binary"
	"unicode/utf16"
)

// DialogItem describes one control of an in-memory dialog.
type DialogItem struct {
	Class      uint16
	Text       string
	ID         uint16
	Style      uint32
	X, Y, W, H int16
}

// DialogTemplate describes a modal dialog without a resource script.
// Coordinates are in dialog units.
type DialogTemplate struct {
	Title      string
	Style      uint32
	X, Y, W, H int16
	Font       string
	PointSize  uint16
	Items      []DialogItem
}

// Bytes encodes t as a DLGTEMPLATE followed by its DLGITEMTEMPLATEs, ready
// for DialogBoxIndirectParamW. Every template starts on a DWORD boundary.
func (t DialogTemplate) Bytes() []byte {
	style := t.Style
	if t.Font != "" {
		style |= DS_SETFONT
	}

	var b []byte
	b = binary.LittleEndian.AppendUint32(b, style)
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = binary.LittleEndian.AppendUint16(b, uint16(len(t.Items)))
	b = appendRect(b, t.X, t.Y, t.W, t.H)
	b = binary.LittleEndian.AppendUint16(b, 0) // no menu
	b = binary.LittleEndian.AppendUint16(b, 0) // default dialog class
	b = appendString(b, t.Title)
	if t.Font != "" {
		b = binary.LittleEndian.AppendUint16(b, t.PointSize)
		b = appendString(b, t.Font)
	}

	for _, it := range t.Items {
		for len(b)%4 != 0 {
			b = append(b, 0)
		}
		b = binary.LittleEndian.AppendUint32(b, it.Style|WS_CHILD|WS_VISIBLE)
		b = binary.LittleEndian.AppendUint32(b, 0)
		b = appendRect(b, it.X, it.Y, it.W, it.H)
		b = binary.LittleEndian.AppendUint16(b, it.ID)
		b = binary.LittleEndian.AppendUint16(b, 0xFFFF)
		b = binary.LittleEndian.AppendUint16(b, it.Class)
		b = appendString(b, it.Text)
		b = binary.LittleEndian.AppendUint16(b, 0) // no creation data
	}
	return b
}

func appendRect(b []byte, x, y, w, h int16) []byte {
	for _, v := range [...]int16{x, y, w, h} {
		b = binary.LittleEndian.AppendUint16(b, uint16(v))
	}
	return b
}

func appendString(b []byte, s string) []byte {
	for _, c := range utf16.Encode([]rune(s)) {
		b = binary.LittleEndian.AppendUint16(b, c)
	}
	return binary.LittleEndian.AppendUint16(b, 0)
}
