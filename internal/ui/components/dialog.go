package components

import (
	"charm.land/lipgloss/v2"

	"github.com/nazolab/mogi/internal/ui/theme"
)

// Dialog renders a yes/no confirmation box centred in width×height.
func Dialog(prompt string, width, height int) string {
	body := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(prompt) +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] Yes") +
		"    " +
		lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No")

	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Accent).
		Align(lipgloss.Center).
		Padding(1, 4).
		Render(body)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
