package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nazolab/mogi/internal/ui/layout"
	"github.com/nazolab/mogi/internal/ui/theme"
)

// Countdown displays the remaining exam time as MM:SS followed by a bar
// that drains as time runs out. The last WarnBelow seconds render in the
// warning colour.
type Countdown struct {
	Remaining int
	Total     int
	WarnBelow int
	Width     int
}

// NewCountdown creates a countdown that warns in the final five minutes.
func NewCountdown(remaining, total, width int) Countdown {
	return Countdown{
		Remaining: remaining,
		Total:     total,
		WarnBelow: 5 * 60,
		Width:     width,
	}
}

// Fraction returns the remaining share of the total in [0, 1].
func (c Countdown) Fraction() float64 {
	if c.Total <= 0 {
		return 0
	}
	f := float64(c.Remaining) / float64(c.Total)
	return max(0, min(1, f))
}

// View renders the countdown.
func (c Countdown) View() string {
	clockStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	fill := theme.ProgressFilled
	if c.Remaining <= c.WarnBelow {
		clockStyle = clockStyle.Foreground(theme.Accent)
		fill = lipgloss.NewStyle().Background(theme.Accent)
	}

	result := clockStyle.Render(layout.FormatClock(c.Remaining))

	barWidth := c.Width - lipgloss.Width(result) - 2
	if barWidth < 4 {
		return result
	}

	filled := int(float64(barWidth) * c.Fraction())
	empty := barWidth - filled

	return result + "  " +
		fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))
}
