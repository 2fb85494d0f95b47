// Package session implements the exam screen: question canvas, answer
// input, question list and the countdown.
package session

import (
	"context"
	"image"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/nazolab/mogi/internal/answers"
	"github.com/nazolab/mogi/internal/assets"
	"github.com/nazolab/mogi/internal/confirm"
	"github.com/nazolab/mogi/internal/drawing"
	"github.com/nazolab/mogi/internal/exam"
	"github.com/nazolab/mogi/internal/grading"
	"github.com/nazolab/mogi/internal/router"
	"github.com/nazolab/mogi/internal/screen"
	"github.com/nazolab/mogi/internal/screens/result"
	sess "github.com/nazolab/mogi/internal/session"
	"github.com/nazolab/mogi/internal/store"
	"github.com/nazolab/mogi/internal/ui/components"
	"github.com/nazolab/mogi/internal/ui/layout"
)

// Screen regions, in cells.
const (
	infoRows   = 2
	bottomRows = 2
	listWidth  = 24
)

// Deps are the collaborators of the exam screen. Results and Images may be nil.
// A zero AdvanceDelay advances on the next event loop turn; a negative one
// keeps the controller default.
type Deps struct {
	Set          *exam.Set
	Results      store.ResultRepo
	Images       *assets.Resolver
	Grader       *grading.Grader
	TimeLimit    time.Duration
	AdvanceDelay time.Duration
	Logger       zerolog.Logger
	Clock        func() time.Time
}

// SessionScreen implements screen.Screen for a running exam.
type SessionScreen struct {
	deps   Deps
	handle string
	log    zerolog.Logger

	ctrl *sess.Controller
	gate *confirm.Gate

	input     components.TextInput
	picker    components.ChoicePicker
	showTools bool

	width, height int
	listOffset    int

	outcome   *sess.Outcome
	handedOff bool
	errMsg    string

	canvasKey  canvasKey
	canvasView string
	bgRef      string
	bg         image.Image
}

type canvasKey struct {
	qid        int
	rev        uint64
	cols, rows int
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)
var _ screen.EscapeHandler = (*SessionScreen)(nil)

// New starts an exam for handle.
func New(deps Deps, handle string) *SessionScreen {
	if deps.Grader == nil {
		deps.Grader = grading.New()
	}
	s := &SessionScreen{
		deps:      deps,
		handle:    handle,
		log:       deps.Logger.With().Str("component", "exam_screen").Logger(),
		gate:      &confirm.Gate{},
		input:     components.NewTextInput("Type your answer...", 0),
		showTools: true,
		canvasKey: canvasKey{qid: -1},
	}

	opts := []sess.Option{sess.WithLogger(deps.Logger)}
	if deps.TimeLimit > 0 {
		opts = append(opts, sess.WithTimeLimit(deps.TimeLimit))
	}
	if deps.AdvanceDelay >= 0 {
		opts = append(opts, sess.WithAdvanceDelay(deps.AdvanceDelay))
	}
	if deps.Clock != nil {
		opts = append(opts, sess.WithClock(deps.Clock))
	}

	sink := sess.SinkFunc(func(o sess.Outcome) { s.outcome = &o })
	ctrl, err := sess.New(deps.Set, s.gate, sink, opts...)
	if err != nil {
		s.errMsg = err.Error()
		return s
	}
	s.ctrl = ctrl
	s.syncAnswer()
	return s
}

// Controller exposes the running session.
func (s *SessionScreen) Controller() *sess.Controller {
	return s.ctrl
}

func (s *SessionScreen) Init() tea.Cmd {
	if s.ctrl == nil {
		return nil
	}
	return tickCmd()
}

func (s *SessionScreen) Title() string {
	return "Exam"
}

func (s *SessionScreen) HandlesEscape() bool {
	return s.ctrl != nil
}

func (s *SessionScreen) Status() string {
	if s.ctrl == nil {
		return s.handle
	}
	return s.handle + "  " + layout.FormatClock(s.ctrl.State().RemainingSeconds)
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	km := DefaultKeyMap
	switch {
	case s.ctrl == nil:
		return []layout.KeyHint{{Key: "any key", Description: "Back"}}
	case s.dialogOpen():
		return []layout.KeyHint{hint(km.Yes), hint(km.No)}
	case !s.ctrl.Active():
		return nil
	case s.input.Focused():
		return []layout.KeyHint{hint(km.Submit), hint(km.Done)}
	}
	return []layout.KeyHint{
		{Key: "←→", Description: "Move"},
		hint(km.Submit),
		{Key: "u/y", Description: "Undo/Redo"},
		hint(km.Mark),
		hint(km.Finish),
	}
}

func (s *SessionScreen) dialogOpen() bool {
	_, ok := s.gate.Pending()
	return ok
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.ContentSizeMsg:
		s.width, s.height = msg.Width, msg.Height
		s.ensureListVisible()
		return s, nil

	case timerTickMsg:
		if s.ctrl == nil || !s.ctrl.Active() {
			return s, nil
		}
		s.ctrl.Tick()
		if s.ctrl.Active() {
			return s, tickCmd()
		}
		return s, s.handOff()

	case advanceMsg:
		if s.ctrl != nil && s.ctrl.CompleteAdvance(msg.Ticket) {
			s.syncAnswer()
		}
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)

	case tea.MouseClickMsg:
		s.handlePress(msg.Mouse())
		return s, nil

	case tea.MouseMotionMsg:
		s.handleDrag(msg.Mouse())
		return s, nil

	case tea.MouseReleaseMsg:
		if s.ctrl != nil {
			s.ctrl.Engine().EndStroke()
		}
		return s, nil
	}

	// Cursor blink and other input internals.
	if s.input.Focused() {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.ctrl == nil {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	km := DefaultKeyMap

	if s.dialogOpen() {
		switch {
		case key.Matches(msg, km.Yes):
			s.gate.Accept()
		case key.Matches(msg, km.No):
			s.gate.Cancel()
		}
		return s, s.handOff()
	}

	if !s.ctrl.Active() {
		return s, nil
	}
	if s.input.Focused() {
		return s.handleInputKey(msg)
	}

	q := s.ctrl.Current()

	switch {
	case key.Matches(msg, km.Prev):
		if s.ctrl.Navigate(sess.Prev) {
			s.syncAnswer()
		}
	case key.Matches(msg, km.Next):
		if s.ctrl.Navigate(sess.Next) {
			s.syncAnswer()
		}
	case key.Matches(msg, km.Submit):
		return s.submit()
	case key.Matches(msg, km.Type):
		if q.Kind == exam.FreeText {
			return s, s.input.Focus()
		}
	case key.Matches(msg, km.Reset):
		s.ctrl.Reset(q.ID)
		s.syncAnswer()
	case key.Matches(msg, km.Mark):
		s.ctrl.ToggleBookmark(q.ID)
	case key.Matches(msg, km.ToggleTool):
		s.showTools = !s.showTools
		if !s.showTools {
			s.ctrl.Engine().EndStroke()
		}
	case key.Matches(msg, km.Finish):
		s.ctrl.RequestFinish()
	case s.showTools && s.handleToolKey(msg):
	case q.Kind == exam.SingleChoice:
		if i, ok := s.picker.IndexForKey(msg.String()); ok && s.ctrl.SetAnswer(q.ID, answers.Choice(i)) {
			s.picker.Chosen = i
		}
	}
	return s, nil
}

// handleToolKey applies drawing shortcuts and reports whether msg was one.
func (s *SessionScreen) handleToolKey(msg tea.KeyPressMsg) bool {
	km := DefaultKeyMap
	engine := s.ctrl.Engine()
	switch {
	case key.Matches(msg, km.Pencil):
		engine.SetTool(drawing.Pencil)
	case key.Matches(msg, km.Line):
		engine.SetTool(drawing.StraightLine)
	case key.Matches(msg, km.Eraser):
		engine.SetTool(drawing.Eraser)
	case key.Matches(msg, km.Black):
		engine.SetColor(drawing.Black)
	case key.Matches(msg, km.Red):
		engine.SetColor(drawing.Red)
	case key.Matches(msg, km.Blue):
		engine.SetColor(drawing.Blue)
	case key.Matches(msg, km.Undo):
		engine.Undo()
	case key.Matches(msg, km.Redo):
		engine.Redo()
	case key.Matches(msg, km.Clear):
		engine.Clear(s.ctrl.Current().ID)
	default:
		return false
	}
	return true
}

func (s *SessionScreen) handleInputKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	km := DefaultKeyMap
	switch {
	case key.Matches(msg, km.Done):
		s.input.Blur()
		return s, nil
	case key.Matches(msg, km.Submit):
		s.input.Blur()
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.ctrl.SetAnswer(s.ctrl.Current().ID, answers.Text(s.input.Value()))
	return s, cmd
}

func (s *SessionScreen) submit() (screen.Screen, tea.Cmd) {
	ticket, ok := s.ctrl.Submit(s.ctrl.Current().ID)
	if !ok {
		return s, nil
	}
	s.syncAnswer()
	return s, advanceCmd(ticket)
}

// syncAnswer loads the answer widgets from the ledger for the current question.
func (s *SessionScreen) syncAnswer() {
	q := s.ctrl.Current()
	e := s.ctrl.Ledger().Entry(q.ID)
	s.input.Blur()
	if q.Kind == exam.SingleChoice {
		s.picker = components.NewChoicePicker(q.Options)
		if i, ok := e.Value.Choice(); ok {
			s.picker.Chosen = i
		}
		s.picker.Locked = e.Locked
	} else {
		text, _ := e.Value.Text()
		s.input.Load(text, e.Locked)
	}
	s.ensureListVisible()
}

// geometry returns the canvas grid and the question list rows for the
// current content size.
func (s *SessionScreen) geometry() (components.Canvas, int) {
	rows := max(s.height-infoRows-bottomRows, 0)
	cols := max(s.width-listWidth-1, 0)
	return components.Canvas{Cols: cols, Rows: rows}, rows
}

func (s *SessionScreen) ensureListVisible() {
	if s.ctrl == nil {
		return
	}
	_, rows := s.geometry()
	if rows <= 0 {
		return
	}
	idx := s.ctrl.State().CurrentIndex
	if idx < s.listOffset {
		s.listOffset = idx
	}
	if idx >= s.listOffset+rows {
		s.listOffset = idx - rows + 1
	}
	s.listOffset = max(0, min(s.listOffset, s.ctrl.Set().Len()-rows))
}

func (s *SessionScreen) pointerLive() bool {
	return s.ctrl != nil && s.ctrl.Active() && !s.dialogOpen()
}

func (s *SessionScreen) handlePress(m tea.Mouse) {
	if !s.pointerLive() || m.Button != tea.MouseLeft {
		return
	}
	canvas, rows := s.geometry()
	col, row := m.X, m.Y-infoRows

	if canvas.Contains(col, row) {
		if s.showTools {
			s.ctrl.Engine().BeginStroke(canvas.ToLogical(col, row))
		}
		return
	}
	if col > canvas.Cols && row >= 0 && row < rows {
		if s.ctrl.JumpTo(s.listOffset + row) {
			s.syncAnswer()
		}
	}
}

func (s *SessionScreen) handleDrag(m tea.Mouse) {
	if !s.pointerLive() {
		return
	}
	engine := s.ctrl.Engine()
	if !engine.Dragging() {
		return
	}
	canvas, _ := s.geometry()
	col, row := m.X, m.Y-infoRows
	if !canvas.Contains(col, row) {
		engine.EndStroke()
		return
	}
	engine.ExtendStroke(canvas.ToLogical(col, row))
}

// handOff grades and archives a finished session once, then swaps in the
// result screen.
func (s *SessionScreen) handOff() tea.Cmd {
	if s.outcome == nil || s.handedOff {
		return nil
	}
	s.handedOff = true
	s.input.Blur()

	out := *s.outcome
	deps := s.deps
	handle := s.handle
	log := s.log
	return func() tea.Msg {
		report := deps.Grader.Grade(deps.Set, out.Answers)

		var saveErr error
		if deps.Results != nil {
			rec := resultRecord(handle, deps.Set, out, report)
			saveErr = deps.Results.Save(context.Background(), rec)
			if saveErr != nil {
				log.Error().Err(saveErr).Str("session_id", out.SessionID).Msg("archive result")
			}
		}
		log.Info().
			Str("session_id", out.SessionID).
			Int("score", report.TotalScore).
			Int("max_score", report.MaxScore).
			Msg("exam graded")

		return router.ReplaceScreenMsg{Screen: result.New(handle, report, out, saveErr)}
	}
}

// tickCmd returns a 1-second tick command.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return timerTickMsg(t)
	})
}

func advanceCmd(t sess.AdvanceTicket) tea.Cmd {
	return tea.Tick(t.Delay, func(time.Time) tea.Msg {
		return advanceMsg{Ticket: t}
	})
}
