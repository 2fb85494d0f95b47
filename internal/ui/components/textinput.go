package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nazolab/mogi/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with mogi styling. A locked input
// shows its value read-only with a lock marker.
type TextInput struct {
	Model  textinput.Model
	Locked bool
}

// NewTextInput creates a new styled, unfocused text input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	return TextInput{Model: ti}
}

// Focus gives the input keyboard focus unless it is locked.
func (t *TextInput) Focus() tea.Cmd {
	if t.Locked {
		return nil
	}
	return t.Model.Focus()
}

// Blur removes keyboard focus.
func (t *TextInput) Blur() {
	t.Model.Blur()
}

// Focused reports whether the input has keyboard focus.
func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

// Update handles messages. Locked inputs ignore them.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Locked {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	if t.Locked {
		return lipgloss.NewStyle().Foreground(theme.TextDim).Render(t.Model.Value()) +
			" " + theme.Locked.Render("🔒")
	}
	return t.Model.View()
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Load replaces the value and lock state, e.g. when switching questions.
func (t *TextInput) Load(value string, locked bool) {
	t.Model.SetValue(value)
	t.Model.CursorEnd()
	t.Locked = locked
	if locked {
		t.Model.Blur()
	}
}
