package shell

// Event is a window, menu or tray notification delivered to the shell.
type Event int

const (
	// CloseRequested is sent when the user closes the main window.
	CloseRequested Event = iota + 1
	// TrayActivated is sent when the tray icon (or its Show item) is used.
	TrayActivated
	// MenuShow is sent by the Show menu entry.
	MenuShow
	// MenuQuit is sent by the Quit menu entry.
	MenuQuit
	// SecondInstance is sent when another launch of the app is detected by
	// the host.
	SecondInstance
)

func (e Event) String() string {
	switch e {
	case CloseRequested:
		return "close-requested"
	case TrayActivated:
		return "tray-activated"
	case MenuShow:
		return "menu-show"
	case MenuQuit:
		return "menu-quit"
	case SecondInstance:
		return "second-instance"
	default:
		return "unknown"
	}
}
