package app

// Dialog result and command identifiers, as in Win32.
const (
	DialogOK     = 1
	DialogCancel = 2
)

// AboutLines are the text lines of the About box.
var AboutLines = []string{
	"Sound Player",
	"Example program showing how to use",
	"the library as a pure sound library.",
}

type DialogState int

const (
	DialogOpen DialogState = iota
	DialogClosed
)

type DialogMessage int

const (
	DialogInit DialogMessage = iota
	DialogCommand
	DialogOther
)

type DialogEvent struct {
	Kind    DialogMessage
	Command uint16
}

// AboutDialog is the About box procedure: it starts open and closes on OK
// or Cancel with that id as result.
type AboutDialog struct {
	state  DialogState
	result int
}

func NewAboutDialog() *AboutDialog {
	return &AboutDialog{}
}

// Handle reports whether ev was handled. The caller ends the dialog once
// State is DialogClosed.
func (a *AboutDialog) Handle(ev DialogEvent) bool {
	if a.state == DialogClosed {
		return false
	}
	switch ev.Kind {
	case DialogInit:
		return true
	case DialogCommand:
		switch ev.Command {
		case DialogOK, DialogCancel:
			a.state = DialogClosed
			a.result = int(ev.Command)
			return true
		}
	}
	return false
}

func (a *AboutDialog) State() DialogState {
	return a.state
}

// Result is the id that closed the dialog, or 0 while it is open.
func (a *AboutDialog) Result() int {
	return a.result
}
