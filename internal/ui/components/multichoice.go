package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nazolab/mogi/internal/ui/theme"
)

// ChoicePicker renders a numbered single-choice answer row. Chosen is -1
// when nothing is picked; a locked picker greys out everything but the
// chosen option.
type ChoicePicker struct {
	Options []string
	Chosen  int
	Locked  bool
}

// NewChoicePicker creates a picker with nothing chosen.
func NewChoicePicker(options []string) ChoicePicker {
	return ChoicePicker{Options: options, Chosen: -1}
}

// IndexForKey maps the keys "1".."9" onto option indexes.
func (c ChoicePicker) IndexForKey(key string) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	i := int(key[0] - '1')
	if i >= len(c.Options) {
		return 0, false
	}
	return i, true
}

// View renders the options on one line.
func (c ChoicePicker) View() string {
	parts := make([]string, 0, len(c.Options))
	for i, opt := range c.Options {
		line := fmt.Sprintf("%d) %s", i+1, opt)
		switch {
		case i == c.Chosen && c.Locked:
			parts = append(parts, theme.Locked.Bold(true).Render("▸ "+line))
		case i == c.Chosen:
			parts = append(parts, theme.Selected.Render("▸ "+line))
		case c.Locked:
			parts = append(parts, lipgloss.NewStyle().Foreground(theme.Border).Render("  "+line))
		default:
			parts = append(parts, theme.Unselected.Render("  "+line))
		}
	}
	return strings.Join(parts, "   ")
}
