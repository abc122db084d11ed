package app

import "log"

// Dispatcher is the main window procedure.
type Dispatcher struct {
	state *State
	lib   Library
	cfg   Config
	win   Window
}

func NewDispatcher(state *State, lib Library, cfg Config) *Dispatcher {
	return &Dispatcher{state: state, lib: lib, cfg: cfg}
}

// Attach binds the dispatcher to its window. Events arriving earlier are
// left to default processing.
func (d *Dispatcher) Attach(win Window) {
	d.win = win
}

func (d *Dispatcher) Handle(ev Event) bool {
	if d.win == nil {
		return false
	}
	switch ev.Kind {
	case EventCommand:
		d.command(ev.Command)
		return true
	case EventPaint:
		d.paint()
		return true
	case EventClose:
		// The sample goes first and the engine before the window it is bound to.
		d.lib.DestroySample(d.state.Sample)
		d.state.Sample = nil
		d.lib.RemoveSound()
		d.win.Destroy()
		return true
	case EventDestroy:
		d.win.PostQuit(0)
		return true
	}
	return false
}

func (d *Dispatcher) command(id uint16) {
	switch id {
	case CmdFileOpen:
		OpenNewSample(d.state, d.win, d.lib, d.cfg.Filters)
	case CmdFilePlay:
		if d.state.Sample == nil && !OpenNewSample(d.state, d.win, d.lib, d.cfg.Filters) {
			return
		}
		d.lib.PlaySample(d.state.Sample, d.cfg.Volume, d.cfg.Pan, d.cfg.Frequency, false)
	case CmdFileExit:
		d.win.PostClose()
	case CmdHelpAbout:
		dlg := NewAboutDialog()
		d.win.RunAboutDialog(dlg)
		log.Printf("dibsound: about dialog closed with %d", dlg.Result())
	}
}

func (d *Dispatcher) paint() {
	if !d.win.HasUpdateRegion() {
		return
	}
	c := d.win.BeginPaint()
	defer d.win.EndPaint(c)
	if d.state.Bitmap == nil {
		return
	}
	if err := c.SetPalette(d.state.Palette); err != nil {
		log.Printf("dibsound: palette: %v", err)
	}
	if err := c.Draw(d.state.Bitmap, 0, 0); err != nil {
		log.Printf("dibsound: draw: %v", err)
	}
}

// OpenNewSample asks the user for a sound file and loads it into state,
// destroying the previous sample. Cancelling changes nothing. A file that
// does not decode is reported once and leaves the current sample in place.
func OpenNewSample(state *State, win Window, lib Library, filters []Filter) bool {
	path, ok := win.OpenFileDialog(filters)
	if !ok {
		return false
	}
	s, err := lib.LoadSample(path)
	if err != nil {
		log.Printf("dibsound: %s not loaded: %v", path, err)
		win.MessageBox(NotSoundFileText, ErrorTitle, MessageIconError|MessageOK)
		return false
	}
	if state.Sample != nil {
		lib.DestroySample(state.Sample)
	}
	state.Sample = s
	return true
}
