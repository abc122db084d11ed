package app

// Menu command identifiers carried by EventCommand.
const (
	CmdFileOpen  uint16 = 101
	CmdFilePlay  uint16 = 102
	CmdFileExit  uint16 = 103
	CmdHelpAbout uint16 = 104
)

// Virtual key codes used by the accelerator table.
const (
	vkO  = 'O'
	vkP  = 'P'
	vkF1 = 0x70
)

// MenuItem is a menu entry. Items with children are popups; an item without
// a label is a separator.
type MenuItem struct {
	Label   string
	Command uint16
	Items   []MenuItem
}

func (m MenuItem) Separator() bool {
	return m.Label == "" && len(m.Items) == 0
}

// Accelerator maps a virtual key, optionally with Ctrl, to a command.
type Accelerator struct {
	Key     uint16
	Ctrl    bool
	Command uint16
}

// MainMenu is the menu bar of the main window.
var MainMenu = []MenuItem{
	{Label: "&File", Items: []MenuItem{
		{Label: "&Open...\tCtrl+O", Command: CmdFileOpen},
		{Label: "&Play\tCtrl+P", Command: CmdFilePlay},
		{},
		{Label: "E&xit", Command: CmdFileExit},
	}},
	{Label: "&Help", Items: []MenuItem{
		{Label: "&About...\tF1", Command: CmdHelpAbout},
	}},
}

var Accelerators = []Accelerator{
	{Key: vkO, Ctrl: true, Command: CmdFileOpen},
	{Key: vkP, Ctrl: true, Command: CmdFilePlay},
	{Key: vkF1, Command: CmdHelpAbout},
}
