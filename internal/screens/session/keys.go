package session

import (
	"charm.land/bubbles/v2/key"

	"github.com/nazolab/mogi/internal/ui/layout"
)

// KeyMap defines the exam screen's key bindings.
type KeyMap struct {
	// Navigation
	Prev key.Binding
	Next key.Binding

	// Answering
	Submit key.Binding
	Type   key.Binding
	Reset  key.Binding
	Mark   key.Binding
	Finish key.Binding

	// Typing
	Done key.Binding

	// Annotation
	Pencil     key.Binding
	Line       key.Binding
	Eraser     key.Binding
	Black      key.Binding
	Red        key.Binding
	Blue       key.Binding
	Undo       key.Binding
	Redo       key.Binding
	Clear      key.Binding
	ToggleTool key.Binding

	// Confirmation
	Yes key.Binding
	No  key.Binding
}

// DefaultKeyMap provides the default exam bindings.
var DefaultKeyMap = KeyMap{
	Prev:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev")),
	Next:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
	Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Submit")),
	Type:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Type")),
	Reset:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "Reset")),
	Mark:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "Mark")),
	Finish: key.NewBinding(key.WithKeys("F", "esc"), key.WithHelp("F", "Finish")),

	Done: key.NewBinding(key.WithKeys("esc", "tab"), key.WithHelp("Esc", "Stop typing")),

	Pencil:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pencil")),
	Line:       key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "line")),
	Eraser:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "eraser")),
	Black:      key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "black")),
	Red:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "red")),
	Blue:       key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "blue")),
	Undo:       key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
	Redo:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "redo")),
	Clear:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "clear")),
	ToggleTool: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "tools")),

	Yes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "Yes")),
	No:  key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "No")),
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}
