package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nazolab/mogi/internal/ui/theme"
)

// Button is a toolbar toggle with a one-key shortcut.
type Button struct {
	Key      string
	Label    string
	Selected bool
	Swatch   lipgloss.Style // optional colour chip drawn before the label
	HasChip  bool
}

// NewButton creates a new button.
func NewButton(key, label string, selected bool) Button {
	return Button{Key: key, Label: label, Selected: selected}
}

// WithSwatch returns a copy of b with a colour chip.
func (b Button) WithSwatch(c lipgloss.Style) Button {
	b.Swatch = c
	b.HasChip = true
	return b
}

// View renders the button.
func (b Button) View() string {
	label := b.Label
	if b.HasChip {
		label = b.Swatch.Render("●") + " " + label
	}
	label = "[" + b.Key + "] " + label
	if b.Selected {
		return theme.ButtonActive.Render(label)
	}
	return theme.ButtonInactive.Render(label)
}

// ButtonRow joins buttons with a single space.
func ButtonRow(buttons ...Button) string {
	parts := make([]string, len(buttons))
	for i, b := range buttons {
		parts[i] = b.View()
	}
	return strings.Join(parts, " ")
}
