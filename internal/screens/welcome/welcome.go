package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/nazolab/mogi/internal/router"
	"github.com/nazolab/mogi/internal/screen"
	"github.com/nazolab/mogi/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	phase1End    = 500 * time.Millisecond
	phase2End    = 1200 * time.Millisecond
	totalDur     = 2000 * time.Millisecond
)

const sheetArt = `  ┌──────────────┐
  │ Q1  ________ │
  │ Q2  ________ │
  │ Q3  (1)(2)(3)│
  │ ...       ✎  │
  └──────────────┘`

// the pencil blinks while the sheet is on screen
var pencilFrames = []string{"✎", " "}

type tickMsg time.Time

// WelcomeScreen shows a short splash before the start form.
type WelcomeScreen struct {
	nextFactory  func() screen.Screen
	setLabel     string
	elapsed      time.Duration
	tickCount    int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen that will transition to the screen produced by
// nextFactory. setLabel names the loaded question set.
func New(nextFactory func() screen.Screen, setLabel string) *WelcomeScreen {
	return &WelcomeScreen{
		nextFactory: nextFactory,
		setLabel:    setLabel,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		if w.elapsed < totalDur {
			w.elapsed += tickInterval
		}
		w.tickCount++
		return w, tick()

	case tea.KeyPressMsg:
		// Any key skips the rest of the splash.
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.nextFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: next}
	}
}

func (w *WelcomeScreen) View(width, height int) string {
	var sections []string

	art := sheetArt
	if w.elapsed >= phase1End {
		art = strings.Replace(art, "✎", pencilFrames[w.tickCount%len(pencilFrames)], 1)
	}
	sections = append(sections, lipgloss.NewStyle().Foreground(theme.Secondary).Render(art))

	if w.elapsed >= phase1End {
		sections = append(sections, "", RenderBanner(width), "")
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Render("A timed riddle exam for your terminal"))
	}

	if w.elapsed >= phase2End {
		if w.setLabel != "" {
			sections = append(sections, lipgloss.NewStyle().
				Foreground(theme.TextDim).
				Render("Question set: "+w.setLabel))
		}
		sections = append(sections, "", lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Italic(true).
			Render("press any key to continue"))
	}

	content := strings.Join(sections, "\n")

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}
