package app

import (
	"log"
	"path/filepath"

	"github.com/Lundis/go-winsound/audio"
	"github.com/Lundis/go-winsound/gfx"
)

// User-visible error texts.
const (
	ErrorTitle             = "Error!"
	NotSoundFileText       = "This is not a standard sound file."
	WindowCreationFailText = "Window Creation Failed."
	cantLoadPrefix         = "Can't load "
)

// AcceleratorTable is a native accelerator table handle.
type AcceleratorTable uintptr

// MessagePump is the thread's message queue.
type MessagePump interface {
	// Get blocks for the next message. ok is false once the quit message
	// arrives, with its payload as exit code.
	Get() (exitCode int, ok bool)
	// TranslateAccelerator converts the current message into a command when
	// it matches the accelerator table, and reports whether it did.
	TranslateAccelerator() bool
	Translate()
	Dispatch()
}

// Host creates the native resources of the application.
type Host interface {
	// RegisterClass registers the window class. A class that already exists
	// is not an error.
	RegisterClass(name string) error
	CreateWindow(class, title string, width, height int, menu []MenuItem, h EventHandler) (Window, error)
	// MessageBox shows a box without an owner window.
	MessageBox(text, title string, style MessageStyle)
	LoadAccelerators(table []Accelerator) (AcceleratorTable, error)
	MessagePump(win Window, accel AcceleratorTable) MessagePump
}

// Run performs the startup sequence and runs the message loop. It returns
// the process exit code: the quit payload, or 0 after a fatal startup error.
func Run(cfg Config, host Host, lib Library) int {
	if err := host.RegisterClass(cfg.Title); err != nil {
		log.Printf("dibsound: %v", err)
	}

	state := &State{}
	d := NewDispatcher(state, lib, cfg)
	win, err := host.CreateWindow(cfg.Title, cfg.Title, cfg.Width, cfg.Height, MainMenu, d)
	if err != nil {
		log.Printf("dibsound: %v", err)
		host.MessageBox(WindowCreationFailText, ErrorTitle, MessageIconError|MessageOK|MessageSystemModal)
		return 0
	}
	d.Attach(win)

	// The window has to be known before Init.
	lib.SetWindow(win.Handle())
	if err := lib.Init(); err != nil {
		log.Printf("dibsound: %v", err)
	}
	if err := lib.InstallSound(audio.DigiAutodetect, audio.MidiNone); err != nil {
		log.Printf("dibsound: %v", err)
	}

	lib.SetColorConversion(gfx.ConvNone)

	bmp, pal, err := lib.LoadBitmap(cfg.BitmapPath)
	if err != nil {
		log.Printf("dibsound: %v", err)
		// Shown with the separators of the host OS.
		win.MessageBox(cantLoadPrefix+filepath.FromSlash(cfg.BitmapPath), ErrorTitle, MessageIconError|MessageOK)
		return 0
	}
	state.Bitmap = bmp
	state.Palette = pal

	accel, err := host.LoadAccelerators(Accelerators)
	if err != nil {
		log.Printf("dibsound: accelerators: %v", err)
	}
	win.Show()
	win.Update()

	return RunMessageLoop(host.MessagePump(win, accel))
}

// RunMessageLoop pumps messages until quit. Accelerator keystrokes are
// turned into commands and never translated or dispatched.
func RunMessageLoop(p MessagePump) int {
	for {
		code, ok := p.Get()
		if !ok {
			return code
		}
		if p.TranslateAccelerator() {
			continue
		}
		p.Translate()
		p.Dispatch()
	}
}
