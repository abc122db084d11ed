// Package winsound is a small multimedia library for native Windows
// programs: it binds to a window, mixes decoded samples through the audio
// package and loads palettized background bitmaps.
//
// A typical program calls SetWindow, Init and InstallSound in that order,
// loads its samples and bitmaps, and calls RemoveSound before the window is
// destroyed.
package winsound

import (
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/tools/godoc/vfs"

	"github.com/Lundis/go-winsound/audio"
	"github.com/Lundis/go-winsound/gfx"
)

var ErrNotInitialized = errors.New("winsound: library not initialized")

// Options configures a Library.
type Options struct {
	// SampleRate of the mixer. Zero selects audio.DefaultSampleRate.
	SampleRate int
	// BufferSize of the output device. Zero selects the driver default.
	BufferSize time.Duration
	// FS is used to read sample and bitmap files. When nil, paths are
	// resolved against the OS file system.
	FS vfs.Opener
}

// Library holds the window binding and the settings shared by the loaders.
type Library struct {
	opts Options

	m           sync.Mutex
	window      uintptr
	initialized bool
	conv        gfx.ColorConversion
}

func New(opts Options) *Library {
	return &Library{opts: opts, conv: gfx.ConvTotal}
}

// SetWindow binds the library to a native window handle. It must be called
// before Init for the binding to take effect.
func (l *Library) SetWindow(hwnd uintptr) {
	l.m.Lock()
	defer l.m.Unlock()
	if l.initialized {
		log.Printf("winsound: window %#x set after Init", hwnd)
	}
	l.window = hwnd
}

func (l *Library) Window() uintptr {
	l.m.Lock()
	defer l.m.Unlock()
	return l.window
}

// Init prepares the library. Calling it again is a no-op.
func (l *Library) Init() error {
	l.m.Lock()
	defer l.m.Unlock()
	if l.initialized {
		return nil
	}
	if l.window == 0 {
		log.Println("winsound: initializing without a window")
	}
	l.initialized = true
	return nil
}

func (l *Library) Initialized() bool {
	l.m.Lock()
	defer l.m.Unlock()
	return l.initialized
}

// InstallSound creates the mixer and opens the output device. It blocks
// until the device is ready.
func (l *Library) InstallSound(digi audio.DigiDriver, midi audio.MidiDriver) error {
	if !l.Initialized() {
		return ErrNotInitialized
	}
	ready, err := audio.InitContext(&audio.NewContextOptions{
		SampleRate: l.opts.SampleRate,
		BufferSize: l.opts.BufferSize,
		Driver:     digi,
		Midi:       midi,
	})
	if err != nil {
		return fmt.Errorf("winsound: install sound: %w", err)
	}
	<-ready
	log.Printf("winsound: sound installed (%s driver, %s output, %d Hz)",
		digi, audio.DriverName(), audio.SampleRate())
	return nil
}

// RemoveSound stops all sounds and closes the output device.
func (l *Library) RemoveSound() {
	audio.Remove()
}

// SetColorConversion controls how LoadBitmap treats paletted images.
func (l *Library) SetColorConversion(conv gfx.ColorConversion) {
	l.m.Lock()
	defer l.m.Unlock()
	l.conv = conv
}

func (l *Library) ColorConversion() gfx.ColorConversion {
	l.m.Lock()
	defer l.m.Unlock()
	return l.conv
}

func (l *Library) readFile(path string) (data []byte, err error) {
	fs := l.opts.FS
	if fs == nil {
		fs = vfs.OS(filepath.Dir(path))
		path = filepath.Base(path)
	}
	file, err := fs.Open(path)
	if err != nil {
		return
	}
	data, err = io.ReadAll(file)
	_ = file.Close()
	return
}
