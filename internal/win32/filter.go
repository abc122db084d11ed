package win32

import (
	"strings"
	"unicode/utf16"
)

// FileFilter is one entry of an open-file dialog filter list.
type FileFilter struct {
	Name    string
	Pattern string
}

// EncodeFilters builds the lpstrFilter buffer of OPENFILENAMEW: pairs of
// NUL-terminated strings ending with an extra NUL.
func EncodeFilters(filters []FileFilter) []uint16 {
	var sb strings.Builder
	for _, f := range filters {
		sb.WriteString(f.Name)
		sb.WriteByte(0)
		sb.WriteString(f.Pattern)
		sb.WriteByte(0)
	}
	sb.WriteByte(0)
	return utf16.Encode([]rune(sb.String()))
}
