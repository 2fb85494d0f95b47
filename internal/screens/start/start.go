// Package start implements the start form: the test-taker enters a display
// name and starts the exam.
package start

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nazolab/mogi/internal/router"
	"github.com/nazolab/mogi/internal/screen"
	"github.com/nazolab/mogi/internal/ui/components"
	"github.com/nazolab/mogi/internal/ui/layout"
	"github.com/nazolab/mogi/internal/ui/theme"
)

// MaxNameLength caps the handle name.
const MaxNameLength = 32

const (
	itemStart = iota
	itemHistory
	itemQuit
)

// StartScreen collects the handle name and offers the main actions.
type StartScreen struct {
	name     components.TextInput
	menu     components.Menu
	setLabel string
	errMsg   string

	examFactory func(handle string) screen.Screen
}

var _ screen.Screen = (*StartScreen)(nil)
var _ screen.KeyHintProvider = (*StartScreen)(nil)

// New creates the start form. examFactory builds the exam screen for a
// handle name; historyFactory may be nil when no archive is available.
func New(setLabel, presetName string, examFactory func(handle string) screen.Screen, historyFactory func() screen.Screen) *StartScreen {
	s := &StartScreen{
		name:        components.NewTextInput("your name", MaxNameLength),
		setLabel:    setLabel,
		examFactory: examFactory,
	}
	s.name.Load(presetName, false)

	items := []components.MenuItem{
		itemStart: {Label: "Start exam", Action: s.start},
		itemHistory: {Label: "History", Disabled: historyFactory == nil, Action: func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: historyFactory()} }
		}},
		itemQuit: {Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
	if historyFactory == nil {
		items[itemHistory].Note = "archive unavailable"
	}
	s.menu = components.NewMenu(items)
	return s
}

func (s *StartScreen) Init() tea.Cmd {
	return s.name.Focus()
}

func (s *StartScreen) Title() string {
	return "Start"
}

func (s *StartScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// HandleName returns the trimmed name as typed.
func (s *StartScreen) HandleName() string {
	return strings.TrimSpace(s.name.Value())
}

func (s *StartScreen) start() tea.Cmd {
	handle := s.HandleName()
	if handle == "" {
		s.errMsg = "Enter a name to start."
		return nil
	}
	s.errMsg = ""
	exam := s.examFactory(handle)
	return func() tea.Msg { return router.PushScreenMsg{Screen: exam} }
}

func (s *StartScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		var cmd tea.Cmd
		s.name, cmd = s.name.Update(msg)
		return s, cmd
	}

	switch kmsg.String() {
	case "up", "down", "enter":
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.name, cmd = s.name.Update(msg)
	if s.HandleName() != "" {
		s.errMsg = ""
	}
	return s, cmd
}

func (s *StartScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Render("Mock exam"))
	if s.setLabel != "" {
		sections = append(sections, theme.Subtitle.Render("Question set: "+s.setLabel))
	}
	sections = append(sections, "")

	nameLine := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Name  ") + s.name.View()
	sections = append(sections, nameLine)
	if s.errMsg != "" {
		sections = append(sections, lipgloss.NewStyle().Foreground(theme.Error).Render(s.errMsg))
	}
	sections = append(sections, "", s.menu.View())

	card := theme.Card.Width(min(width-4, 56)).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
