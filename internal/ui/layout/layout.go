package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nazolab/mogi/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3
)

// KeyHint is one "key description" pair shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal cannot hold the exam layout.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// ContentHeight is what remains of totalHeight between header and footer.
func ContentHeight(totalHeight int) int {
	return max(totalHeight-HeaderHeight-FooterHeight, 0)
}

// FormatClock renders a second count as MM:SS. Minutes are not wrapped at 60.
func FormatClock(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The exam needs a bigger window.\n\nResize to at least %d x %d\n(now %d x %d)",
			MinWidth, MinHeight, width, height,
		))
}

// bar is the rounded, single-line box used for both header and footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader renders the application name on the left, title centred and
// status on the right. status may be empty.
func RenderHeader(title, status string, width int) string {
	brand := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("  mogi")
	mid := lipgloss.NewStyle().Foreground(theme.Text).Render(title)
	tail := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)

	inner := max(width-4, 0)
	bw, mw, tw := lipgloss.Width(brand), lipgloss.Width(mid), lipgloss.Width(tail)

	gapL := max((inner-mw)/2-bw, 1)
	gapR := max(inner-bw-gapL-mw-tw, 1)

	return bar(brand+strings.Repeat(" ", gapL)+mid+strings.Repeat(" ", gapR)+tail, width)
}

// RenderFooter renders key hints separated by wide gaps.
func RenderFooter(hints []KeyHint, width int) string {
	keyStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var b strings.Builder
	b.WriteString("  ")
	for i, h := range hints {
		if i > 0 {
			b.WriteString("   ")
		}
		b.WriteString(keyStyle.Render(h.Key))
		b.WriteByte(' ')
		b.WriteString(descStyle.Render(h.Description))
	}
	return bar(b.String(), width)
}

// RenderFrame stacks header, content and footer, padding the content to fill
// whatever height the two bars leave.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return strings.Join([]string{
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	}, "\n")
}
