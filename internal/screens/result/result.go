// Package result shows the graded score table of a finished exam.
package result

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nazolab/mogi/internal/grading"
	"github.com/nazolab/mogi/internal/router"
	"github.com/nazolab/mogi/internal/screen"
	"github.com/nazolab/mogi/internal/session"
	"github.com/nazolab/mogi/internal/ui/layout"
	"github.com/nazolab/mogi/internal/ui/theme"
)

// headerRows is the number of lines above the table.
const headerRows = 6

// ResultScreen displays the graded exam.
type ResultScreen struct {
	handle  string
	report  grading.Report
	outcome session.Outcome
	saveErr error
	offset  int
	height  int
}

var _ screen.Screen = (*ResultScreen)(nil)
var _ screen.KeyHintProvider = (*ResultScreen)(nil)

// New creates a new ResultScreen. saveErr reports a failed archive write and
// may be nil.
func New(handle string, report grading.Report, outcome session.Outcome, saveErr error) *ResultScreen {
	return &ResultScreen{handle: handle, report: report, outcome: outcome, saveErr: saveErr}
}

func (s *ResultScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultScreen) Title() string {
	return "Results"
}

func (s *ResultScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Back to start"},
		{Key: "Esc", Description: "Back to start"},
	}
}

func (s *ResultScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ContentSizeMsg:
		s.height = msg.Height
		s.clampOffset()
	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "esc":
			// The exam screen was replaced by this one, so a single pop
			// lands on the start form.
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.offset--
			s.clampOffset()
		case "down", "j":
			s.offset++
			s.clampOffset()
		case "pgdown", "space":
			s.offset += s.visibleRows()
			s.clampOffset()
		case "pgup":
			s.offset -= s.visibleRows()
			s.clampOffset()
		}
	}
	return s, nil
}

func (s *ResultScreen) visibleRows() int {
	return max(s.height-headerRows, 1)
}

func (s *ResultScreen) clampOffset() {
	limit := max(len(s.report.Rows)-s.visibleRows(), 0)
	s.offset = max(0, min(s.offset, limit))
}

func (s *ResultScreen) View(width, height int) string {
	var b strings.Builder

	title := "Exam complete"
	if s.outcome.Reason == session.TimedOut {
		title = "Time is up"
	}
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(title))
	b.WriteString("\n")

	score := fmt.Sprintf("%s   Score %d / %d   Correct %d / %d   Time left %s",
		s.handle, s.report.TotalScore, s.report.MaxScore,
		s.report.Correct, len(s.report.Rows), layout.FormatClock(s.outcome.RemainingSeconds))
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(score))
	b.WriteString("\n")

	if s.saveErr != nil {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.Error).
			Render("Result not archived: " + s.saveErr.Error()))
	}
	b.WriteString("\n\n")

	tableWidth := min(width-4, 72)
	answerWidth := (tableWidth - 16) / 2
	head := fmt.Sprintf("%4s  %s  %s  %s", "No.", pad("Your answer", answerWidth), pad("Correct answer", answerWidth), "  Pts")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true).Render(head)))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", tableWidth))))
	b.WriteString("\n")

	rows := height - headerRows
	end := min(s.offset+max(rows, 1), len(s.report.Rows))
	for _, r := range s.report.Rows[s.offset:end] {
		mark := theme.Incorrect.Render("✗")
		if r.Correct {
			mark = theme.Correct.Render("✓")
		}
		answer := truncate(r.AnswerLabel, answerWidth)
		answerStyle := lipgloss.NewStyle().Foreground(theme.Text)
		if r.Answer.IsAbsent() {
			answerStyle = answerStyle.Foreground(theme.TextDim).Italic(true)
		}
		line := fmt.Sprintf("%4d  %s  %s  %s %2d",
			r.QuestionID,
			answerStyle.Render(pad(answer, answerWidth)),
			pad(truncate(r.CorrectLabel, answerWidth), answerWidth),
			mark, r.AwardedPoints)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	return b.String()
}

func truncate(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && lipgloss.Width(string(r))+1 > w {
		r = r[:len(r)-1]
	}
	return string(r) + "…"
}

// pad right-pads s to w display cells; fmt widths count runes, not cells.
func pad(s string, w int) string {
	if n := lipgloss.Width(s); n < w {
		return s + strings.Repeat(" ", w-n)
	}
	return s
}
