package app

import (
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/Lundis/go-winsound/gfx"
)

func newHost(rec *recorder, msgs ...fakeMessage) *fakeHost {
	return &fakeHost{
		rec:  rec,
		win:  &fakeWindow{rec: rec},
		pump: &fakePump{rec: rec, msgs: msgs},
	}
}

func TestRunStartupOrder(t *testing.T) {
	rec := &recorder{}
	host := newHost(rec, fakeMessage{}, fakeMessage{quit: true, code: 7})
	lib := newFakeLibrary(rec)

	if code := Run(DefaultConfig(), host, lib); code != 7 {
		t.Fatalf("exit code %d, want the quit payload 7", code)
	}
	want := []string{
		"register-class Sound Player",
		"create-window Sound Player 320x240",
		"set-window 0xbeef",
		"init",
		"install-sound autodetect 0",
		"color-conversion none",
		"load-bitmap ../../examples/allegro.pcx",
		"load-accelerators 3",
		"show",
		"update",
		"message-pump",
		"get", "translate", "dispatch",
		"get",
	}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Fatalf("calls\n got %q\nwant %q", rec.calls, want)
	}
	if lib.conv != gfx.ConvNone {
		t.Fatalf("colour conversion should be disabled")
	}
	if host.handler == nil {
		t.Fatalf("the window should route events to the dispatcher")
	}
}

func TestRunToleratesRegisteredClass(t *testing.T) {
	rec := &recorder{}
	host := newHost(rec, fakeMessage{quit: true})
	host.registerErr = errors.New("class already exists")

	if code := Run(DefaultConfig(), host, newFakeLibrary(rec)); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !host.win.shown {
		t.Fatalf("startup should continue")
	}
}

func TestRunWindowCreationFails(t *testing.T) {
	rec := &recorder{}
	host := newHost(rec)
	host.createErr = errors.New("no desktop")
	lib := newFakeLibrary(rec)

	if code := Run(DefaultConfig(), host, lib); code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}
	if len(host.boxes) != 1 {
		t.Fatalf("%d boxes, want 1", len(host.boxes))
	}
	want := box{WindowCreationFailText, ErrorTitle, MessageIconError | MessageOK | MessageSystemModal}
	if host.boxes[0] != want {
		t.Fatalf("box %+v, want %+v", host.boxes[0], want)
	}
	for _, c := range rec.calls {
		if strings.HasPrefix(c, "init") || strings.HasPrefix(c, "install-sound") || c == "message-pump" {
			t.Fatalf("nothing may run after a failed window creation: %q", rec.calls)
		}
	}
}

func TestRunMissingBitmap(t *testing.T) {
	rec := &recorder{}
	host := newHost(rec)
	lib := newFakeLibrary(rec)
	lib.bitmapErr = errors.New("file does not exist")

	if code := Run(DefaultConfig(), host, lib); code != 0 {
		t.Fatalf("exit code %d, want 0", code)
	}
	if len(host.win.boxes) != 1 || len(host.boxes) != 0 {
		t.Fatalf("want exactly one error box, got %d owned and %d ownerless", len(host.win.boxes), len(host.boxes))
	}
	if got, want := host.win.boxes[0].text, "Can't load "+filepath.Join("..", "..", "examples", "allegro.pcx"); got != want {
		t.Fatalf("box text %q", got)
	}
	if lib.loads != 0 || len(lib.live) != 0 {
		t.Fatalf("no sample may be created")
	}
	if host.win.shown {
		t.Fatalf("window should not be shown")
	}
	for _, c := range rec.calls {
		if c == "message-pump" || c == "load-accelerators 3" {
			t.Fatalf("startup should stop at the bitmap: %q", rec.calls)
		}
	}
}

func TestRunUsesConfiguredBitmap(t *testing.T) {
	rec := &recorder{}
	host := newHost(rec)
	lib := newFakeLibrary(rec)
	lib.bitmapErr = errors.New("missing")
	cfg := DefaultConfig()
	cfg.BitmapPath = "bg.bmp"

	Run(cfg, host, lib)
	if got := host.win.boxes[0].text; got != "Can't load bg.bmp" {
		t.Fatalf("box text %q", got)
	}
}

func TestRunBitmapErrorUsesNativeSeparators(t *testing.T) {
	rec := &recorder{}
	host := newHost(rec)
	lib := newFakeLibrary(rec)
	lib.bitmapErr = errors.New("missing")
	cfg := DefaultConfig()
	cfg.BitmapPath = "art/backgrounds/bg.pcx"

	Run(cfg, host, lib)
	want := "Can't load " + filepath.Join("art", "backgrounds", "bg.pcx")
	if got := host.win.boxes[0].text; got != want {
		t.Fatalf("box text %q, want %q", got, want)
	}
	// the library still gets the configured path
	if !strings.Contains(strings.Join(rec.calls, "\n"), "load-bitmap art/backgrounds/bg.pcx") {
		t.Fatalf("bitmap path not passed through: %q", rec.calls)
	}
}

func TestMessageLoopSkipsAccelerators(t *testing.T) {
	rec := &recorder{}
	p := &fakePump{rec: rec, msgs: []fakeMessage{{accel: true}, {}, {accel: true}, {quit: true, code: 3}}}

	if code := RunMessageLoop(p); code != 3 {
		t.Fatalf("exit code %d", code)
	}
	want := []string{"get", "get", "translate", "dispatch", "get", "get"}
	if !reflect.DeepEqual(rec.calls, want) {
		t.Fatalf("calls %q, want %q", rec.calls, want)
	}
}

func TestAcceleratorTable(t *testing.T) {
	want := map[uint16]bool{CmdFileOpen: true, CmdFilePlay: true, CmdHelpAbout: true}
	for _, a := range Accelerators {
		if !want[a.Command] {
			t.Fatalf("unexpected accelerator %+v", a)
		}
		delete(want, a.Command)
	}
	if len(want) != 0 {
		t.Fatalf("commands without accelerator: %v", want)
	}
}

func TestMainMenu(t *testing.T) {
	var commands []uint16
	var walk func(items []MenuItem)
	walk = func(items []MenuItem) {
		for _, it := range items {
			if len(it.Items) > 0 {
				walk(it.Items)
			} else if !it.Separator() {
				commands = append(commands, it.Command)
			}
		}
	}
	walk(MainMenu)
	want := []uint16{CmdFileOpen, CmdFilePlay, CmdFileExit, CmdHelpAbout}
	if !reflect.DeepEqual(commands, want) {
		t.Fatalf("menu commands %v, want %v", commands, want)
	}
}
