package tui

import "github.com/charmbracelet/bubbles/key"

// Key bindings for the install prompt.
var (
	confirmYesKey = key.NewBinding(
		key.WithKeys("y", "Y"),
		key.WithHelp("y", "install"),
	)
	confirmNoKey = key.NewBinding(
		key.WithKeys("n", "N"),
		key.WithHelp("n", "cancel"),
	)
	// Enter accepts the default answer, which is yes.
	confirmEnterKey = key.NewBinding(
		key.WithKeys("enter"),
	)
	confirmQuitKey = key.NewBinding(
		key.WithKeys("esc", "ctrl+c", "q"),
	)
)
