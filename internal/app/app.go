// Package app hosts the root Bubble Tea model: the screen stack, the header
// and footer chrome, and resize and mouse plumbing.
package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/nazolab/mogi/internal/assets"
	"github.com/nazolab/mogi/internal/exam"
	"github.com/nazolab/mogi/internal/grading"
	"github.com/nazolab/mogi/internal/router"
	"github.com/nazolab/mogi/internal/screen"
	"github.com/nazolab/mogi/internal/screens/history"
	sessionscreen "github.com/nazolab/mogi/internal/screens/session"
	"github.com/nazolab/mogi/internal/screens/start"
	"github.com/nazolab/mogi/internal/screens/welcome"
	"github.com/nazolab/mogi/internal/store"
	"github.com/nazolab/mogi/internal/ui/layout"
)

// Options configures a run of the application. Results and Images may be nil.
type Options struct {
	Set          *exam.Set
	Results      store.ResultRepo
	Images       *assets.Resolver
	HandleName   string
	TimeLimit    time.Duration
	AdvanceDelay time.Duration
	Logger       zerolog.Logger
	SkipSplash   bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel showing initial.
func newAppModel(initial screen.Screen) AppModel {
	return AppModel{
		router: router.New(initial),
	}
}

// initialScreen wires the screen graph: splash, start form, exam, history.
func initialScreen(opts Options) screen.Screen {
	grader := grading.New()
	examFactory := func(handle string) screen.Screen {
		return sessionscreen.New(sessionscreen.Deps{
			Set:          opts.Set,
			Results:      opts.Results,
			Images:       opts.Images,
			Grader:       grader,
			TimeLimit:    opts.TimeLimit,
			AdvanceDelay: opts.AdvanceDelay,
			Logger:       opts.Logger,
		}, handle)
	}

	var historyFactory func() screen.Screen
	if opts.Results != nil {
		historyFactory = func() screen.Screen { return history.New(opts.Results) }
	}

	label := opts.Set.Title
	if label == "" {
		label = opts.Set.Name
	}
	startFactory := func() screen.Screen {
		return start.New(label, opts.HandleName, examFactory, historyFactory)
	}
	if opts.SkipSplash {
		return startFactory()
	}
	return welcome.New(startFactory, label)
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, m.resizeActive()

	case router.PushScreenMsg, router.PopScreenMsg, router.ReplaceScreenMsg:
		cmd := m.router.Update(msg)
		return m, tea.Batch(cmd, m.resizeActive())

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	// Screens see mouse coordinates relative to their content area.
	case tea.MouseClickMsg:
		msg.Y -= layout.HeaderHeight
		return m, m.router.Update(msg)
	case tea.MouseMotionMsg:
		msg.Y -= layout.HeaderHeight
		return m, m.router.Update(msg)
	case tea.MouseReleaseMsg:
		msg.Y -= layout.HeaderHeight
		return m, m.router.Update(msg)
	case tea.MouseWheelMsg:
		msg.Y -= layout.HeaderHeight
		return m, m.router.Update(msg)
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// resizeActive tells the active screen how much room it has.
func (m AppModel) resizeActive() tea.Cmd {
	if m.width == 0 || m.height == 0 {
		return nil
	}
	return m.router.Update(screen.ContentSizeMsg{
		Width:  m.width,
		Height: layout.ContentHeight(m.height),
	})
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}

// render draws the frame: header, active screen, footer.
func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title, status := "", ""
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			status = sp.Status()
		}
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if hp, ok := active.(screen.KeyHintProvider); ok {
		if hints := hp.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	if opts.Set == nil {
		return fmt.Errorf("no question set")
	}
	opts.Logger.Info().Str("question_set", opts.Set.Name).Msg("app started")

	p := tea.NewProgram(newAppModel(initialScreen(opts)))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
