// Package win32 wraps the user32, gdi32, kernel32 and comdlg32 calls needed
// to host a classic Win32 window: class registration, menus, accelerators,
// the message loop, common dialogs and in-memory dialog templates.
package win32

// Window messages.
const (
	WM_DESTROY    = 0x0002
	WM_PAINT      = 0x000F
	WM_CLOSE      = 0x0010
	WM_INITDIALOG = 0x0110
	WM_COMMAND    = 0x0111
)

// Window and class styles.
const (
	CS_VREDRAW = 0x0001
	CS_HREDRAW = 0x0002

	WS_OVERLAPPEDWINDOW = 0x00CF0000
	WS_POPUP            = 0x80000000
	WS_CHILD            = 0x40000000
	WS_VISIBLE          = 0x10000000
	WS_CAPTION          = 0x00C00000
	WS_SYSMENU          = 0x00080000
	WS_TABSTOP          = 0x00010000

	CW_USEDEFAULT = -0x80000000

	COLOR_WINDOW = 5

	SW_SHOWDEFAULT = 10
)

// Dialog styles and control classes.
const (
	DS_SETFONT       = 0x0040
	DS_MODALFRAME    = 0x0080
	DS_CENTER        = 0x0800
	SS_CENTER        = 0x0001
	BS_DEFPUSHBUTTON = 0x0001

	ClassButton uint16 = 0x0080
	ClassStatic uint16 = 0x0082

	IDOK     = 1
	IDCANCEL = 2
	// IDC_STATIC is the conventional id of controls that are never addressed.
	IDC_STATIC = 0xFFFF
)

// MessageBox flags.
const (
	MB_OK          = 0x00000000
	MB_ICONERROR   = 0x00000010
	MB_SYSTEMMODAL = 0x00001000
)

// Menu flags.
const (
	MF_STRING    = 0x0000
	MF_POPUP     = 0x0010
	MF_SEPARATOR = 0x0800
)

// Accelerator flags and virtual keys.
const (
	FVIRTKEY = 0x01
	FCONTROL = 0x08

	VK_F1 = 0x70
)

// GetOpenFileName flags.
const (
	OFN_HIDEREADONLY  = 0x00000004
	OFN_FILEMUSTEXIST = 0x00001000
)

const (
	IDI_APPLICATION = 32512
	IDC_ARROW       = 32512
)

// LOWORD returns the low 16 bits of a message parameter.
func LOWORD(v uintptr) uint16 {
	return uint16(v & 0xFFFF)
}
