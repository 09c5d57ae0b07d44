package tui

// Results of controller calls run as tea.Cmd.
type (
	authDoneMsg struct{ err error }
	loadedMsg   struct{ err error }
	savedMsg    struct{ err error }
	deletedMsg  struct{ err error }
)
