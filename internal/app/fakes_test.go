package app

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/Lundis/go-winsound/audio"
	"github.com/Lundis/go-winsound/gfx"
)

var errDecode = errors.New("not a sound")

type recorder struct {
	calls []string
}

func (r *recorder) add(format string, args ...any) {
	r.calls = append(r.calls, fmt.Sprintf(format, args...))
}

type fakeSample struct {
	path      string
	destroyed bool
}

func (s *fakeSample) Path() string { return s.path }

type playCall struct {
	path           string
	vol, pan, freq int
	loop           bool
}

type fakeLibrary struct {
	rec *recorder

	// bad lists paths that fail to decode.
	bad       map[string]bool
	bitmapErr error
	live      map[*fakeSample]bool
	loads     int
	plays     []playCall
	window    uintptr
	conv      gfx.ColorConversion
}

func newFakeLibrary(rec *recorder, bad ...string) *fakeLibrary {
	l := &fakeLibrary{rec: rec, bad: map[string]bool{}, live: map[*fakeSample]bool{}, conv: gfx.ConvTotal}
	for _, b := range bad {
		l.bad[b] = true
	}
	return l
}

func (l *fakeLibrary) SetWindow(hwnd uintptr) {
	l.window = hwnd
	l.rec.add("set-window %#x", hwnd)
}

func (l *fakeLibrary) Init() error {
	l.rec.add("init")
	return nil
}

func (l *fakeLibrary) InstallSound(digi audio.DigiDriver, midi audio.MidiDriver) error {
	l.rec.add("install-sound %s %d", digi, midi)
	return nil
}

func (l *fakeLibrary) RemoveSound() {
	l.rec.add("remove-sound")
}

func (l *fakeLibrary) SetColorConversion(conv gfx.ColorConversion) {
	l.conv = conv
	l.rec.add("color-conversion %s", conv)
}

func (l *fakeLibrary) LoadBitmap(path string) (*gfx.Bitmap, color.Palette, error) {
	l.rec.add("load-bitmap %s", path)
	if l.bitmapErr != nil {
		return nil, nil, l.bitmapErr
	}
	return &gfx.Bitmap{}, color.Palette{color.Black}, nil
}

func (l *fakeLibrary) LoadSample(path string) (Sample, error) {
	l.loads++
	l.rec.add("load-sample %s", path)
	if l.bad[path] {
		return nil, errDecode
	}
	s := &fakeSample{path: path}
	l.live[s] = true
	return s, nil
}

func (l *fakeLibrary) PlaySample(s Sample, vol, pan, freq int, loop bool) {
	l.rec.add("play %s", s.Path())
	l.plays = append(l.plays, playCall{s.Path(), vol, pan, freq, loop})
}

func (l *fakeLibrary) DestroySample(s Sample) {
	if s == nil {
		l.rec.add("destroy-sample nil")
		return
	}
	fs := s.(*fakeSample)
	fs.destroyed = true
	delete(l.live, fs)
	l.rec.add("destroy-sample %s", fs.path)
}

type box struct {
	text, title string
	style       MessageStyle
}

type fakeCanvas struct {
	rec *recorder
}

func (c *fakeCanvas) SetPalette(pal color.Palette) error {
	c.rec.add("set-palette %d", len(pal))
	return nil
}

func (c *fakeCanvas) Draw(bmp *gfx.Bitmap, x, y int) error {
	c.rec.add("draw %d,%d", x, y)
	return nil
}

type fakeWindow struct {
	rec *recorder

	// answers feeds OpenFileDialog; an empty string cancels.
	answers      []string
	dialogs      int
	boxes        []box
	aboutCommand uint16
	aboutDialogs []*AboutDialog
	updateRegion bool
	shown        bool
}

func (w *fakeWindow) Handle() uintptr { return 0xbeef }

func (w *fakeWindow) Show() {
	w.shown = true
	w.rec.add("show")
}

func (w *fakeWindow) Update() { w.rec.add("update") }

func (w *fakeWindow) OpenFileDialog(filters []Filter) (string, bool) {
	w.dialogs++
	w.rec.add("file-dialog %d", len(filters))
	if len(w.answers) == 0 {
		return "", false
	}
	path := w.answers[0]
	w.answers = w.answers[1:]
	return path, path != ""
}

func (w *fakeWindow) MessageBox(text, title string, style MessageStyle) {
	w.boxes = append(w.boxes, box{text, title, style})
	w.rec.add("message-box %s", text)
}

func (w *fakeWindow) RunAboutDialog(dlg *AboutDialog) {
	w.aboutDialogs = append(w.aboutDialogs, dlg)
	w.rec.add("about")
	dlg.Handle(DialogEvent{Kind: DialogInit})
	dlg.Handle(DialogEvent{Kind: DialogCommand, Command: w.aboutCommand})
}

func (w *fakeWindow) PostClose()        { w.rec.add("post-close") }
func (w *fakeWindow) Destroy()          { w.rec.add("destroy-window") }
func (w *fakeWindow) PostQuit(code int) { w.rec.add("post-quit %d", code) }

func (w *fakeWindow) HasUpdateRegion() bool { return w.updateRegion }

func (w *fakeWindow) BeginPaint() Canvas {
	w.rec.add("begin-paint")
	return &fakeCanvas{rec: w.rec}
}

func (w *fakeWindow) EndPaint(c Canvas) { w.rec.add("end-paint") }

type fakeMessage struct {
	accel bool
	quit  bool
	code  int
}

type fakePump struct {
	rec  *recorder
	msgs []fakeMessage
	cur  fakeMessage
}

func (p *fakePump) Get() (int, bool) {
	p.rec.add("get")
	if len(p.msgs) == 0 {
		return -1, false
	}
	p.cur = p.msgs[0]
	p.msgs = p.msgs[1:]
	if p.cur.quit {
		return p.cur.code, false
	}
	return 0, true
}

func (p *fakePump) TranslateAccelerator() bool { return p.cur.accel }
func (p *fakePump) Translate()                 { p.rec.add("translate") }
func (p *fakePump) Dispatch()                  { p.rec.add("dispatch") }

type fakeHost struct {
	rec *recorder

	registerErr error
	createErr   error
	win         *fakeWindow
	handler     EventHandler
	boxes       []box
	accel       []Accelerator
	pump        *fakePump
}

func (h *fakeHost) RegisterClass(name string) error {
	h.rec.add("register-class %s", name)
	return h.registerErr
}

func (h *fakeHost) CreateWindow(class, title string, width, height int, menu []MenuItem, handler EventHandler) (Window, error) {
	h.rec.add("create-window %s %dx%d", title, width, height)
	if h.createErr != nil {
		return nil, h.createErr
	}
	h.handler = handler
	return h.win, nil
}

func (h *fakeHost) MessageBox(text, title string, style MessageStyle) {
	h.boxes = append(h.boxes, box{text, title, style})
	h.rec.add("message-box %s", text)
}

func (h *fakeHost) LoadAccelerators(table []Accelerator) (AcceleratorTable, error) {
	h.accel = table
	h.rec.add("load-accelerators %d", len(table))
	return 1, nil
}

func (h *fakeHost) MessagePump(win Window, accel AcceleratorTable) MessagePump {
	h.rec.add("message-pump")
	return h.pump
}
