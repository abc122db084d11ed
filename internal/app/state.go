// Package app is the platform-independent core of the dibsound example: the
// main window's event dispatcher, the open-sample helper, the About dialog
// state machine and the startup sequence. The Win32 side implements the
// Window, Canvas, Host and MessagePump interfaces.
package app

import (
	"image/color"

	"github.com/Lundis/go-winsound/audio"
	"github.com/Lundis/go-winsound/gfx"
)

// Sample is a decoded sound owned by State.
type Sample interface {
	Path() string
}

// Library is the multimedia library the application drives.
type Library interface {
	SetWindow(hwnd uintptr)
	Init() error
	InstallSound(digi audio.DigiDriver, midi audio.MidiDriver) error
	RemoveSound()
	SetColorConversion(conv gfx.ColorConversion)
	LoadBitmap(path string) (*gfx.Bitmap, color.Palette, error)
	LoadSample(path string) (Sample, error)
	PlaySample(s Sample, vol, pan, freq int, loop bool)
	// DestroySample must accept nil.
	DestroySample(s Sample)
}

// MessageStyle holds MessageBox flags. The values match Win32.
type MessageStyle uint32

const (
	MessageOK          MessageStyle = 0x0000
	MessageIconError   MessageStyle = 0x0010
	MessageSystemModal MessageStyle = 0x1000
)

// Canvas is a device context obtained by Window.BeginPaint.
type Canvas interface {
	SetPalette(pal color.Palette) error
	Draw(bmp *gfx.Bitmap, x, y int) error
}

// Window is the main window as seen by the dispatcher.
type Window interface {
	Handle() uintptr
	Show()
	Update()

	// OpenFileDialog blocks until the user picks a file or cancels.
	OpenFileDialog(filters []Filter) (path string, ok bool)
	MessageBox(text, title string, style MessageStyle)
	RunAboutDialog(dlg *AboutDialog)

	// PostClose queues a close request; Destroy destroys the window now.
	PostClose()
	Destroy()
	PostQuit(code int)

	HasUpdateRegion() bool
	BeginPaint() Canvas
	EndPaint(c Canvas)
}

// State is everything the main window owns for the life of the process.
type State struct {
	// Sample is nil until the first successful open.
	Sample  Sample
	Bitmap  *gfx.Bitmap
	Palette color.Palette
}

type EventKind int

const (
	EventCommand EventKind = iota
	EventPaint
	EventClose
	EventDestroy
)

func (k EventKind) String() string {
	switch k {
	case EventCommand:
		return "command"
	case EventPaint:
		return "paint"
	case EventClose:
		return "close"
	case EventDestroy:
		return "destroy"
	}
	return "unknown"
}

// Event is a window message the dispatcher may handle. Command is only
// meaningful for EventCommand.
type Event struct {
	Kind    EventKind
	Command uint16
}

// EventHandler receives the main window's events. Handle reports whether the
// event was consumed; unconsumed events get default processing.
type EventHandler interface {
	Handle(ev Event) bool
}
