package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/nazolab/mogi/internal/router"
	"github.com/nazolab/mogi/internal/screen"
	"github.com/nazolab/mogi/internal/store"
	"github.com/nazolab/mogi/internal/ui/layout"
	"github.com/nazolab/mogi/internal/ui/theme"
)

// pageSize is how many archived results the screen loads.
const pageSize = 50

type historyLoadedMsg struct {
	Results []store.ResultRecord
	Err     error
}

// HistoryScreen lists archived exam results, newest first.
type HistoryScreen struct {
	repo     store.ResultRepo
	results  []store.ResultRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.ResultRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		results, err := s.repo.Query(context.Background(), store.QueryOpts{Limit: pageSize})
		return historyLoadedMsg{Results: results, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.results = msg.Results
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.results)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.results) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No exams yet. Finish one to see it here.")
	}

	var lines []string
	for i, r := range s.results {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %-12s  %3d / %-3d  %2d correct  %s",
			prefix, r.FinishedAt.Local().Format("Jan 02 15:04"), r.HandleName,
			r.TotalScore, r.MaxScore, r.Correct, reasonLabel(r.Reason))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		lines = append(lines, style.Render(line))

		if s.expanded[i] {
			lines = append(lines, answerLines(r)...)
		}
	}

	// Keep the selected row on screen.
	start := 0
	if selLine := s.lineOf(s.selected); height > 2 && selLine >= height-2 {
		start = selLine - (height - 3)
	}
	lines = lines[min(start, len(lines)):]

	block := lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(lines, "\n"))
	return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

// lineOf returns the line index of result i, counting expanded rows above it.
func (s *HistoryScreen) lineOf(i int) int {
	n := i
	for j := 0; j < i && j < len(s.results); j++ {
		if s.expanded[j] {
			n += len(s.results[j].Answers)
			if len(s.results[j].Answers) == 0 {
				n++
			}
		}
	}
	return n
}

func answerLines(r store.ResultRecord) []string {
	if len(r.Answers) == 0 {
		return []string{lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
			Render("      No answers archived")}
	}
	out := make([]string, 0, len(r.Answers))
	for _, a := range r.Answers {
		mark, c := "✗", color.Color(theme.Error)
		if a.Correct {
			mark, c = "✓", theme.Success
		}
		answer := a.Answer
		if answer == "" {
			answer = "-"
		}
		out = append(out, lipgloss.NewStyle().Foreground(c).Render(
			fmt.Sprintf("      %s Q%-3d %-16s (%s)  %d pts", mark, a.QuestionID, answer, a.Expected, a.Points)))
	}
	return out
}

func reasonLabel(reason string) string {
	if reason == "timed_out" {
		return lipgloss.NewStyle().Foreground(theme.Accent).Render("time up")
	}
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render("finished")
}
