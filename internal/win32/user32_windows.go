//go:build windows

package win32

import (
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/pkg/errors"
	"golang.org/x/sys/windows"
)

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")
	comdlg32 = windows.NewLazySystemDLL("comdlg32.dll")

	procRegisterClassExW        = user32.NewProc("RegisterClassExW")
	procCreateWindowExW         = user32.NewProc("CreateWindowExW")
	procDefWindowProcW          = user32.NewProc("DefWindowProcW")
	procDestroyWindow           = user32.NewProc("DestroyWindow")
	procShowWindow              = user32.NewProc("ShowWindow")
	procUpdateWindow            = user32.NewProc("UpdateWindow")
	procPostMessageW            = user32.NewProc("PostMessageW")
	procPostQuitMessage         = user32.NewProc("PostQuitMessage")
	procGetMessageW             = user32.NewProc("GetMessageW")
	procTranslateMessage        = user32.NewProc("TranslateMessage")
	procDispatchMessageW        = user32.NewProc("DispatchMessageW")
	procTranslateAcceleratorW   = user32.NewProc("TranslateAcceleratorW")
	procCreateAcceleratorTableW = user32.NewProc("CreateAcceleratorTableW")
	procDestroyAcceleratorTable = user32.NewProc("DestroyAcceleratorTable")
	procCreateMenu              = user32.NewProc("CreateMenu")
	procCreatePopupMenu         = user32.NewProc("CreatePopupMenu")
	procAppendMenuW             = user32.NewProc("AppendMenuW")
	procGetUpdateRect           = user32.NewProc("GetUpdateRect")
	procBeginPaint              = user32.NewProc("BeginPaint")
	procEndPaint                = user32.NewProc("EndPaint")
	procMessageBoxW             = user32.NewProc("MessageBoxW")
	procLoadIconW               = user32.NewProc("LoadIconW")
	procLoadCursorW             = user32.NewProc("LoadCursorW")
	procDialogBoxIndirectParamW = user32.NewProc("DialogBoxIndirectParamW")
	procEndDialog               = user32.NewProc("EndDialog")
	procGetModuleHandleW        = kernel32.NewProc("GetModuleHandleW")
	procGetOpenFileNameW        = comdlg32.NewProc("GetOpenFileNameW")
	procCommDlgExtendedError    = comdlg32.NewProc("CommDlgExtendedError")
)

// WindowProc is the Go form of a WNDPROC or DLGPROC.
type WindowProc func(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr

// NewCallback turns fn into a function pointer Windows can call. Callbacks
// are never released, so create them once per procedure.
func NewCallback(fn WindowProc) uintptr {
	return purego.NewCallback(func(hwnd, msg, wParam, lParam uintptr) uintptr {
		return fn(HWND(hwnd), uint32(msg), wParam, lParam)
	})
}

// Instance returns the module handle of the running executable.
func Instance() HINSTANCE {
	h, _, _ := procGetModuleHandleW.Call(0)
	return HINSTANCE(h)
}

// RegisterClass registers a window class with the given procedure. A class
// that is already registered is not an error.
func RegisterClass(instance HINSTANCE, name string, wndProc uintptr) error {
	className, err := windows.UTF16PtrFromString(name)
	if err != nil {
		return errors.Wrap(err, "RegisterClassExW")
	}
	icon, _, _ := procLoadIconW.Call(0, IDI_APPLICATION)
	cursor, _, _ := procLoadCursorW.Call(0, IDC_ARROW)
	wc := WNDCLASSEXW{
		Style:         CS_HREDRAW | CS_VREDRAW,
		LpfnWndProc:   wndProc,
		HInstance:     instance,
		HIcon:         windows.Handle(icon),
		HCursor:       windows.Handle(cursor),
		HbrBackground: windows.Handle(COLOR_WINDOW + 1),
		LpszClassName: className,
	}
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	atom, _, e := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc)))
	if atom == 0 {
		if e == windows.ERROR_CLASS_ALREADY_EXISTS {
			return nil
		}
		return errors.Wrapf(e, "RegisterClassExW %q", name)
	}
	return nil
}

// CreateWindow creates an overlapped top-level window with the given menu.
func CreateWindow(instance HINSTANCE, class, title string, width, height int, menu HMENU) (HWND, error) {
	className, err := windows.UTF16PtrFromString(class)
	if err != nil {
		return 0, errors.Wrap(err, "CreateWindowExW")
	}
	windowName, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return 0, errors.Wrap(err, "CreateWindowExW")
	}
	useDefault := CW_USEDEFAULT
	hwnd, _, e := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(windowName)),
		WS_OVERLAPPEDWINDOW,
		uintptr(useDefault), uintptr(useDefault),
		uintptr(width), uintptr(height),
		0,
		uintptr(menu),
		uintptr(instance),
		0,
	)
	if hwnd == 0 {
		return 0, errors.Wrapf(e, "CreateWindowExW %q", title)
	}
	return HWND(hwnd), nil
}

func DefWindowProc(hwnd HWND, msg uint32, wParam, lParam uintptr) uintptr {
	r, _, _ := procDefWindowProcW.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	return r
}

func DestroyWindow(hwnd HWND) error {
	r, _, e := procDestroyWindow.Call(uintptr(hwnd))
	if r == 0 {
		return errors.Wrap(e, "DestroyWindow")
	}
	return nil
}

func ShowWindow(hwnd HWND, cmdShow int32) {
	procShowWindow.Call(uintptr(hwnd), uintptr(cmdShow))
}

func UpdateWindow(hwnd HWND) {
	procUpdateWindow.Call(uintptr(hwnd))
}

func PostMessage(hwnd HWND, msg uint32, wParam, lParam uintptr) error {
	r, _, e := procPostMessageW.Call(uintptr(hwnd), uintptr(msg), wParam, lParam)
	if r == 0 {
		return errors.Wrap(e, "PostMessageW")
	}
	return nil
}

func PostQuitMessage(exitCode int32) {
	procPostQuitMessage.Call(uintptr(exitCode))
}

// GetMessage blocks for the next message. It returns false once WM_QUIT
// has been retrieved.
func GetMessage(msg *MSG) (bool, error) {
	r, _, e := procGetMessageW.Call(uintptr(unsafe.Pointer(msg)), 0, 0, 0)
	switch int32(r) {
	case -1:
		return false, errors.Wrap(e, "GetMessageW")
	case 0:
		return false, nil
	}
	return true, nil
}

func TranslateMessage(msg *MSG) {
	procTranslateMessage.Call(uintptr(unsafe.Pointer(msg)))
}

func DispatchMessage(msg *MSG) {
	procDispatchMessageW.Call(uintptr(unsafe.Pointer(msg)))
}

// TranslateAccelerator turns accelerator keystrokes into WM_COMMAND messages
// sent straight to hwnd. It reports whether msg was consumed.
func TranslateAccelerator(hwnd HWND, accel HACCEL, msg *MSG) bool {
	if accel == 0 {
		return false
	}
	r, _, _ := procTranslateAcceleratorW.Call(uintptr(hwnd), uintptr(accel), uintptr(unsafe.Pointer(msg)))
	return r != 0
}

func CreateAcceleratorTable(entries []ACCEL) (HACCEL, error) {
	if len(entries) == 0 {
		return 0, errors.New("CreateAcceleratorTableW: empty table")
	}
	h, _, e := procCreateAcceleratorTableW.Call(uintptr(unsafe.Pointer(&entries[0])), uintptr(len(entries)))
	if h == 0 {
		return 0, errors.Wrap(e, "CreateAcceleratorTableW")
	}
	return HACCEL(h), nil
}

func DestroyAcceleratorTable(accel HACCEL) {
	procDestroyAcceleratorTable.Call(uintptr(accel))
}

func CreateMenu() (HMENU, error) {
	h, _, e := procCreateMenu.Call()
	if h == 0 {
		return 0, errors.Wrap(e, "CreateMenu")
	}
	return HMENU(h), nil
}

func CreatePopupMenu() (HMENU, error) {
	h, _, e := procCreatePopupMenu.Call()
	if h == 0 {
		return 0, errors.Wrap(e, "CreatePopupMenu")
	}
	return HMENU(h), nil
}

// AppendMenu adds an item to menu. For MF_POPUP, id is the submenu handle.
func AppendMenu(menu HMENU, flags uint32, id uintptr, text string) error {
	var p *uint16
	if flags&MF_SEPARATOR == 0 {
		var err error
		if p, err = windows.UTF16PtrFromString(text); err != nil {
			return errors.Wrap(err, "AppendMenuW")
		}
	}
	r, _, e := procAppendMenuW.Call(uintptr(menu), uintptr(flags), id, uintptr(unsafe.Pointer(p)))
	if r == 0 {
		return errors.Wrapf(e, "AppendMenuW %q", text)
	}
	return nil
}

// GetUpdateRect reports whether hwnd has a non-empty update region.
func GetUpdateRect(hwnd HWND) bool {
	var rc RECT
	r, _, _ := procGetUpdateRect.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&rc)), 0)
	return r != 0
}

func BeginPaint(hwnd HWND, ps *PAINTSTRUCT) HDC {
	hdc, _, _ := procBeginPaint.Call(uintptr(hwnd), uintptr(unsafe.Pointer(ps)))
	return HDC(hdc)
}

func EndPaint(hwnd HWND, ps *PAINTSTRUCT) {
	procEndPaint.Call(uintptr(hwnd), uintptr(unsafe.Pointer(ps)))
}

// MessageBox shows a blocking message box and returns the pressed button.
func MessageBox(owner HWND, text, caption string, flags uint32) int {
	t, _ := windows.UTF16PtrFromString(text)
	c, _ := windows.UTF16PtrFromString(caption)
	r, _, _ := procMessageBoxW.Call(uintptr(owner), uintptr(unsafe.Pointer(t)), uintptr(unsafe.Pointer(c)), uintptr(flags))
	return int(r)
}

// DialogBoxIndirect runs a modal dialog built from an in-memory template and
// returns the value passed to EndDialog.
func DialogBoxIndirect(instance HINSTANCE, template []byte, owner HWND, dlgProc uintptr) (int, error) {
	r, _, e := procDialogBoxIndirectParamW.Call(
		uintptr(instance),
		uintptr(unsafe.Pointer(&template[0])),
		uintptr(owner),
		dlgProc,
		0,
	)
	if int32(r) == -1 {
		return 0, errors.Wrap(e, "DialogBoxIndirectParamW")
	}
	return int(r), nil
}

func EndDialog(hwnd HWND, result int) {
	procEndDialog.Call(uintptr(hwnd), uintptr(result))
}

const maxPath = 512

// GetOpenFileName shows the common open-file dialog. It returns false
// without an error when the user cancels.
func GetOpenFileName(owner HWND, filters []FileFilter, flags uint32) (string, bool, error) {
	filter := EncodeFilters(filters)
	file := make([]uint16, maxPath)
	ofn := OPENFILENAMEW{
		HwndOwner:    owner,
		LpstrFilter:  &filter[0],
		NFilterIndex: 1,
		LpstrFile:    &file[0],
		NMaxFile:     uint32(len(file)),
		Flags:        flags,
	}
	ofn.LStructSize = uint32(unsafe.Sizeof(ofn))
	r, _, _ := procGetOpenFileNameW.Call(uintptr(unsafe.Pointer(&ofn)))
	if r == 0 {
		if code, _, _ := procCommDlgExtendedError.Call(); code != 0 {
			return "", false, errors.Errorf("GetOpenFileNameW: common dialog error %#x", code)
		}
		return "", false, nil
	}
	return windows.UTF16ToString(file), true, nil
}
