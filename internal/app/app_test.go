package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/nazolab/mogi/internal/exam"
	"github.com/nazolab/mogi/internal/router"
	"github.com/nazolab/mogi/internal/screen"
	"github.com/nazolab/mogi/internal/screens/start"
	"github.com/nazolab/mogi/internal/screens/welcome"
	"github.com/nazolab/mogi/internal/ui/layout"
)

// recorder is a screen that records what it receives.
type recorder struct {
	title  string
	escape bool
	status string
	sizes  []screen.ContentSizeMsg
	clicks []tea.MouseClickMsg
	keys   []string
	inited int
}

func (r *recorder) Init() tea.Cmd       { r.inited++; return nil }
func (r *recorder) Title() string       { return r.title }
func (r *recorder) Status() string      { return r.status }
func (r *recorder) HandlesEscape() bool { return r.escape }
func (r *recorder) View(width, height int) string {
	return r.title + " body"
}
func (r *recorder) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ContentSizeMsg:
		r.sizes = append(r.sizes, msg)
	case tea.MouseClickMsg:
		r.clicks = append(r.clicks, msg)
	case tea.KeyPressMsg:
		r.keys = append(r.keys, msg.String())
	}
	return r, nil
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return am, cmd
}

func TestApp_ResizeForwardsContentSize(t *testing.T) {
	r := &recorder{title: "one"}
	m := newAppModel(r)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if len(r.sizes) != 1 {
		t.Fatalf("expected 1 size message, got %d", len(r.sizes))
	}
	want := screen.ContentSizeMsg{Width: 100, Height: 40 - layout.HeaderHeight - layout.FooterHeight}
	if r.sizes[0] != want {
		t.Errorf("size = %+v, want %+v", r.sizes[0], want)
	}
}

func TestApp_NavigationResizesNewScreen(t *testing.T) {
	base := &recorder{title: "base"}
	m := newAppModel(base)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 90, Height: 30})

	top := &recorder{title: "top"}
	m, _ = update(t, m, router.PushScreenMsg{Screen: top})
	if top.inited != 1 || len(top.sizes) != 1 {
		t.Errorf("pushed screen inited=%d sizes=%d, want 1 and 1", top.inited, len(top.sizes))
	}

	repl := &recorder{title: "repl"}
	m, _ = update(t, m, router.ReplaceScreenMsg{Screen: repl})
	if m.router.Depth() != 2 || m.router.Active() != screen.Screen(repl) {
		t.Fatal("expected replace to keep depth and swap the top")
	}
	if len(repl.sizes) != 1 {
		t.Error("replacement screen should get its size")
	}

	m, _ = update(t, m, router.PopScreenMsg{})
	if len(base.sizes) != 2 {
		t.Errorf("uncovered screen should be resized again, got %d", len(base.sizes))
	}
}

func TestApp_MouseIsContentRelative(t *testing.T) {
	r := &recorder{title: "one"}
	m := newAppModel(r)

	update(t, m, tea.MouseClickMsg{X: 7, Y: 10, Button: tea.MouseLeft})
	if len(r.clicks) != 1 {
		t.Fatalf("expected 1 click, got %d", len(r.clicks))
	}
	if got := r.clicks[0]; got.X != 7 || got.Y != 10-layout.HeaderHeight {
		t.Errorf("click at (%d,%d), want (7,%d)", got.X, got.Y, 10-layout.HeaderHeight)
	}
}

func TestApp_EscapePopsUnlessHandled(t *testing.T) {
	base := &recorder{title: "base"}
	top := &recorder{title: "top"}
	m := newAppModel(base)
	m, _ = update(t, m, router.PushScreenMsg{Screen: top})

	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}

	top.escape = true
	_, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("a screen handling esc should not be popped")
	}
	if len(top.keys) != 1 || top.keys[0] != "esc" {
		t.Errorf("expected esc forwarded to the screen, got %v", top.keys)
	}
}

func TestApp_CtrlCQuits(t *testing.T) {
	m := newAppModel(&recorder{})
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected QuitMsg")
	}
}

func TestApp_ViewShowsStatus(t *testing.T) {
	r := &recorder{title: "Exam", status: "kana  59:59"}
	m := newAppModel(r)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	content := m.render()
	for _, want := range []string{"mogi", "Exam", "kana  59:59", "Exam body"} {
		if !strings.Contains(content, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestApp_TooSmall(t *testing.T) {
	m := newAppModel(&recorder{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 10})
	if !strings.Contains(m.render(), "needs a bigger window") {
		t.Error("expected the minimum size message")
	}
}

func TestInitialScreen(t *testing.T) {
	set := &exam.Set{Name: "sample", Questions: []exam.Question{{ID: 1, Kind: exam.FreeText}}}

	s := initialScreen(Options{Set: set, Logger: zerolog.Nop()})
	if _, ok := s.(*welcome.WelcomeScreen); !ok {
		t.Errorf("expected the splash screen, got %T", s)
	}

	s = initialScreen(Options{Set: set, Logger: zerolog.Nop(), SkipSplash: true})
	if _, ok := s.(*start.StartScreen); !ok {
		t.Errorf("expected the start form, got %T", s)
	}
}
