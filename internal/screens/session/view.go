package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/nazolab/mogi/internal/assets"
	"github.com/nazolab/mogi/internal/drawing"
	"github.com/nazolab/mogi/internal/exam"
	"github.com/nazolab/mogi/internal/grading"
	sess "github.com/nazolab/mogi/internal/session"
	"github.com/nazolab/mogi/internal/ui/components"
	"github.com/nazolab/mogi/internal/ui/theme"
)

func (s *SessionScreen) View(width, height int) string {
	switch {
	case s.ctrl == nil:
		return s.renderError(width, height)
	case s.dialogOpen():
		req, _ := s.gate.Pending()
		return components.Dialog(req.Prompt, width, height)
	case !s.ctrl.Active():
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Grading..."))
	}

	bodyRows := max(height-infoRows-bottomRows, 0)
	canvas := components.Canvas{Cols: max(width-listWidth-1, 0), Rows: bodyRows}

	var b strings.Builder
	b.WriteString(s.renderInfoLine(width))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width, 0))))
	b.WriteString("\n")

	if bodyRows > 0 {
		sep := lipgloss.NewStyle().Foreground(theme.Border).
			Render(strings.TrimSuffix(strings.Repeat("│\n", bodyRows), "\n"))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
			s.renderCanvas(canvas), sep, s.renderList(bodyRows)))
		b.WriteString("\n")
	}

	b.WriteString(s.renderAnswerRow(width))
	b.WriteString("\n")
	b.WriteString(s.renderToolbar(width))
	return b.String()
}

func (s *SessionScreen) renderError(width, height int) string {
	msg := lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Cannot start the exam") +
		"\n\n" +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.errMsg)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, msg)
}

func (s *SessionScreen) renderInfoLine(width int) string {
	q := s.ctrl.Current()
	st := s.ctrl.State()

	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf(" Q %d/%d", st.CurrentIndex+1, s.ctrl.Set().Len()))
	left += lipgloss.NewStyle().Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %s · %d pts", kindLabel(q.Kind), q.Points))
	if s.ctrl.Bookmarks().IsMarked(q.ID) {
		left += "  " + theme.Bookmarked.Render("★ marked")
	}

	barWidth := min(32, max(width-lipgloss.Width(left)-2, 0))
	total := int(s.ctrl.TimeLimit().Seconds())
	right := components.NewCountdown(st.RemainingSeconds, total, barWidth).View()

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}

func kindLabel(k exam.Kind) string {
	if k == exam.SingleChoice {
		return "choice"
	}
	return "written"
}

// renderCanvas draws the question image with its annotations. The cell
// string is reused until the question, its strokes or the grid size change.
func (s *SessionScreen) renderCanvas(c components.Canvas) string {
	if c.Cols <= 0 || c.Rows <= 0 {
		return ""
	}
	q := s.ctrl.Current()
	engine := s.ctrl.Engine()
	key := canvasKey{qid: q.ID, rev: engine.Revision(), cols: c.Cols, rows: c.Rows}
	if key == s.canvasKey {
		return s.canvasView
	}

	if s.bg == nil || s.bgRef != q.ImageRef {
		s.bgRef = q.ImageRef
		if s.deps.Images != nil {
			s.bg = s.deps.Images.Background(q.ImageRef, components.LogicalWidth, components.LogicalHeight)
		} else {
			s.bg = assets.Placeholder(q.ImageRef, components.LogicalWidth, components.LogicalHeight)
		}
	}

	ink := engine.Render(q.ID, components.LogicalWidth, components.LogicalHeight)
	s.canvasKey = key
	s.canvasView = c.Render(s.bg, ink)
	return s.canvasView
}

// renderList draws the question navigation list, rows lines tall.
func (s *SessionScreen) renderList(rows int) string {
	items := s.ctrl.Overview()
	end := min(s.listOffset+rows, len(items))

	lines := make([]string, 0, rows)
	for _, it := range items[s.listOffset:end] {
		lines = append(lines, s.renderListItem(it))
	}
	for len(lines) < rows {
		lines = append(lines, strings.Repeat(" ", listWidth))
	}
	return strings.Join(lines, "\n")
}

func (s *SessionScreen) renderListItem(it sess.ListItem) string {
	cursor := "  "
	numStyle := theme.Unselected
	if it.IsActive {
		cursor = theme.Selected.Render("▸ ")
		numStyle = theme.Selected
	}

	mark := " "
	if it.IsBookmarked {
		mark = theme.Bookmarked.Render("★")
	}
	lock := " "
	answer := ""
	if it.IsLocked {
		lock = theme.Locked.Render("✓")
		if q, ok := s.ctrl.Set().Question(it.QuestionID); ok {
			answer = grading.AnswerLabel(q, it.Value)
		}
	}

	line := cursor + numStyle.Render(fmt.Sprintf("%2d", it.Index+1)) + " " + mark + lock + " "
	room := listWidth - lipgloss.Width(line)
	if room > 0 && answer != "" {
		line += lipgloss.NewStyle().Foreground(theme.TextDim).MaxWidth(room).Render(answer)
	}
	if w := lipgloss.Width(line); w < listWidth {
		line += strings.Repeat(" ", listWidth-w)
	}
	return line
}

func (s *SessionScreen) renderAnswerRow(width int) string {
	q := s.ctrl.Current()
	label := lipgloss.NewStyle().Foreground(theme.TextDim).Render(" Answer: ")

	var field string
	if q.Kind == exam.SingleChoice {
		field = s.picker.View()
	} else {
		field = s.input.View()
	}

	row := label + field
	if s.ctrl.Ledger().IsLocked(q.ID) {
		row += "  " + theme.Hint.Render("[R] reset")
	} else if q.Kind == exam.FreeText && !s.input.Focused() {
		row += "  " + theme.Hint.Render("[Tab] type")
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(row)
}

func (s *SessionScreen) renderToolbar(width int) string {
	if !s.showTools {
		return lipgloss.NewStyle().MaxWidth(width).
			Render(" " + theme.Hint.Render("tools hidden · [v] show"))
	}
	engine := s.ctrl.Engine()

	tools := components.ButtonRow(
		components.NewButton("p", "Pencil", engine.Tool() == drawing.Pencil),
		components.NewButton("l", "Line", engine.Tool() == drawing.StraightLine),
		components.NewButton("e", "Eraser", engine.Tool() == drawing.Eraser),
	)

	colorKeys := map[drawing.Color]string{drawing.Black: "k", drawing.Red: "r", drawing.Blue: "b"}
	swatches := make([]components.Button, 0, len(drawing.Colors))
	for _, c := range drawing.Colors {
		btn := components.NewButton(colorKeys[c], colorName(c), engine.Color() == c).
			WithSwatch(lipgloss.NewStyle().Foreground(c.RGBA()))
		swatches = append(swatches, btn)
	}

	row := " " + tools + "  " + components.ButtonRow(swatches...) +
		"  " + theme.Hint.Render("[x] clear [v] hide")
	return lipgloss.NewStyle().MaxWidth(width).Render(row)
}

func colorName(c drawing.Color) string {
	name := c.String()
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
