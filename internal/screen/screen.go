package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/nazolab/mogi/internal/ui/layout"
)

// Screen defines the interface for all application screens.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show live
// status (name, countdown) on the right of the header.
type StatusProvider interface {
	Status() string
}

// EscapeHandler is implemented by screens that handle Esc themselves
// instead of letting the app pop them off the stack.
type EscapeHandler interface {
	HandlesEscape() bool
}

// ContentSizeMsg carries the area available to the active screen. The app
// sends it on every resize and whenever a screen becomes active. Mouse
// coordinates the screen receives are relative to this area.
type ContentSizeMsg struct {
	Width, Height int
}
