// Package session drives a timed exam: the current question, the countdown,
// answer submission with auto-advance, and the single transition to finished.
package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nazolab/mogi/internal/answers"
	"github.com/nazolab/mogi/internal/bookmarks"
	"github.com/nazolab/mogi/internal/confirm"
	"github.com/nazolab/mogi/internal/drawing"
	"github.com/nazolab/mogi/internal/exam"
)

// FinishPrompt is shown before the test-taker ends the exam.
const FinishPrompt = "End the exam now? You cannot come back to it."

const (
	// DefaultTimeLimit applies when neither the set nor the caller gives one.
	DefaultTimeLimit = 60 * time.Minute

	// DefaultAdvanceDelay is the pause between submitting and moving on.
	DefaultAdvanceDelay = 300 * time.Millisecond
)

// ErrEmptySet is returned when a session is created without questions.
var ErrEmptySet = errors.New("question set has no questions")

// Controller owns the session state and mutates the answer ledger, bookmark
// set and annotation engine only through their own operations.
//
// A Controller is driven from a single event loop and is not safe for
// concurrent use.
type Controller struct {
	id    string
	set   *exam.Set
	state State

	ledger    *answers.Ledger
	snapshots Snapshotter
	marks     *bookmarks.Set
	engine    *drawing.Engine
	confirm   confirm.Confirmer
	sink      ResultSink

	log          zerolog.Logger
	now          func() time.Time
	timeLimit    time.Duration
	advanceDelay time.Duration
	startedAt    time.Time

	nextTicket uint64
	pending    map[uint64]struct{}
	outcome    *Outcome
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger; the default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.log = l.With().Str("component", "session").Logger() }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithTimeLimit overrides the time limit of the question set.
func WithTimeLimit(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.timeLimit = d
		}
	}
}

// WithAdvanceDelay sets the pause between submit and auto-advance.
func WithAdvanceDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.advanceDelay = d
		}
	}
}

// WithSnapshotter replaces the source of the answers handed off at finish.
func WithSnapshotter(s Snapshotter) Option {
	return func(c *Controller) { c.snapshots = s }
}

// WithSessionID fixes the session id instead of generating one.
func WithSessionID(id string) Option {
	return func(c *Controller) { c.id = id }
}

// New starts an Active session on the first question of set. Irreversible
// actions go through confirmer; the finished outcome goes to sink.
func New(set *exam.Set, confirmer confirm.Confirmer, sink ResultSink, opts ...Option) (*Controller, error) {
	if set == nil || set.Len() == 0 {
		return nil, ErrEmptySet
	}

	ledger := answers.NewLedger()
	c := &Controller{
		set:          set,
		ledger:       ledger,
		snapshots:    ledger,
		marks:        bookmarks.New(),
		engine:       drawing.NewEngine(drawing.NewStore(), confirmer),
		confirm:      confirmer,
		sink:         sink,
		log:          zerolog.Nop(),
		now:          time.Now,
		timeLimit:    set.TimeLimit,
		advanceDelay: DefaultAdvanceDelay,
		pending:      make(map[uint64]struct{}),
	}
	if c.timeLimit <= 0 {
		c.timeLimit = DefaultTimeLimit
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.id == "" {
		c.id = uuid.New().String()
	}

	c.startedAt = c.now()
	c.state = State{
		CurrentIndex:     0,
		RemainingSeconds: int(c.timeLimit / time.Second),
		Phase:            PhaseActive,
	}
	c.engine.Focus(c.Current().ID)

	c.log.Info().
		Str("session_id", c.id).
		Str("question_set", set.Name).
		Int("questions", set.Len()).
		Dur("time_limit", c.timeLimit).
		Msg("exam started")
	return c, nil
}

func (c *Controller) ID() string                { return c.id }
func (c *Controller) Set() *exam.Set            { return c.set }
func (c *Controller) State() State              { return c.state }
func (c *Controller) Ledger() *answers.Ledger   { return c.ledger }
func (c *Controller) Bookmarks() *bookmarks.Set { return c.marks }
func (c *Controller) Engine() *drawing.Engine   { return c.engine }
func (c *Controller) StartedAt() time.Time      { return c.startedAt }
func (c *Controller) TimeLimit() time.Duration  { return c.timeLimit }

// Active reports whether the session still accepts input.
func (c *Controller) Active() bool {
	return c.state.Phase == PhaseActive
}

// Current returns the displayed question.
func (c *Controller) Current() exam.Question {
	return c.set.Questions[c.state.CurrentIndex]
}

// Remaining returns the time left on the clock.
func (c *Controller) Remaining() time.Duration {
	return time.Duration(c.state.RemainingSeconds) * time.Second
}

// Outcome returns the finished outcome, once there is one.
func (c *Controller) Outcome() (Outcome, bool) {
	if c.outcome == nil {
		return Outcome{}, false
	}
	return *c.outcome, true
}

// Navigate moves one question back or forward. Stepping past either end is a no-op.
func (c *Controller) Navigate(d Direction) bool {
	return c.JumpTo(c.state.CurrentIndex + int(d))
}

// JumpTo shows the question at index. Out-of-range indexes are a no-op.
func (c *Controller) JumpTo(index int) bool {
	if !c.Active() || index < 0 || index >= c.set.Len() || index == c.state.CurrentIndex {
		return false
	}
	c.state.CurrentIndex = index
	c.engine.Focus(c.Current().ID)
	c.log.Debug().Int("index", index).Int("question_id", c.Current().ID).Msg("navigate")
	return true
}

// Tick advances the clock by one second. The tick that reaches zero finishes
// the session with TimedOut; ticks after finish do nothing.
func (c *Controller) Tick() {
	if !c.Active() {
		return
	}
	if c.state.RemainingSeconds > 0 {
		c.state.RemainingSeconds--
	}
	if c.state.RemainingSeconds == 0 {
		c.Finish(TimedOut)
	}
}

// RequestFinish asks for confirmation before finishing on the user's behalf.
func (c *Controller) RequestFinish() {
	if !c.Active() {
		return
	}
	c.confirm.Confirm(FinishPrompt, func() {
		c.Finish(UserRequested)
	})
}

// Finish ends the session and hands a snapshot of the answers to the result
// sink. Only the first call has any effect.
func (c *Controller) Finish(reason FinishReason) bool {
	if !c.Active() {
		return false
	}
	c.state.Phase = PhaseFinished
	clear(c.pending)

	out := Outcome{
		SessionID:        c.id,
		Reason:           reason,
		Answers:          c.snapshots.Snapshot().Clone(),
		RemainingSeconds: c.state.RemainingSeconds,
		StartedAt:        c.startedAt,
		FinishedAt:       c.now(),
	}
	c.outcome = &out

	c.log.Info().
		Str("session_id", c.id).
		Stringer("reason", reason).
		Int("answered", len(out.Answers)).
		Int("remaining_seconds", out.RemainingSeconds).
		Msg("exam finished")

	if c.sink != nil {
		c.sink.Receive(out)
	}
	return true
}

// SetAnswer records an answer for qid unless it is locked or the session is over.
func (c *Controller) SetAnswer(qid int, v answers.Value) bool {
	if !c.Active() || !c.known(qid) {
		return false
	}
	return c.ledger.SetAnswer(qid, v)
}

// Submit locks the answer of qid and returns the auto-advance it schedules:
// the question after qid, or the first question after the last one.
func (c *Controller) Submit(qid int) (AdvanceTicket, bool) {
	if !c.Active() {
		return AdvanceTicket{}, false
	}
	idx, ok := c.indexOf(qid)
	if !ok {
		return AdvanceTicket{}, false
	}
	c.ledger.Submit(qid)

	c.nextTicket++
	t := AdvanceTicket{
		id:     c.nextTicket,
		Target: (idx + 1) % c.set.Len(),
		Delay:  c.advanceDelay,
	}
	c.pending[t.id] = struct{}{}

	c.log.Debug().Int("question_id", qid).Int("advance_to", t.Target).Msg("answer submitted")
	return t, true
}

// CompleteAdvance performs a scheduled auto-advance. Tickets are single-use and
// void once the session is finished.
func (c *Controller) CompleteAdvance(t AdvanceTicket) bool {
	if _, ok := c.pending[t.id]; !ok {
		return false
	}
	delete(c.pending, t.id)
	if !c.Active() {
		return false
	}
	if t.Target == c.state.CurrentIndex {
		return true
	}
	return c.JumpTo(t.Target)
}

// Reset unlocks the answer of qid, keeping its value.
func (c *Controller) Reset(qid int) {
	if !c.Active() || !c.known(qid) {
		return
	}
	c.ledger.Reset(qid)
}

// ToggleBookmark flips the bookmark of qid and returns the new flag.
func (c *Controller) ToggleBookmark(qid int) bool {
	if !c.known(qid) {
		return false
	}
	return c.marks.Toggle(qid)
}

// Overview projects every question into a navigation list row.
func (c *Controller) Overview() []ListItem {
	items := make([]ListItem, c.set.Len())
	for i, q := range c.set.Questions {
		e := c.ledger.Entry(q.ID)
		items[i] = ListItem{
			Index:        i,
			QuestionID:   q.ID,
			IsActive:     i == c.state.CurrentIndex,
			IsLocked:     e.Locked,
			IsBookmarked: c.marks.IsMarked(q.ID),
			Value:        e.Value,
		}
	}
	return items
}

func (c *Controller) known(qid int) bool {
	_, ok := c.indexOf(qid)
	return ok
}

func (c *Controller) indexOf(qid int) (int, bool) {
	for i, q := range c.set.Questions {
		if q.ID == qid {
			return i, true
		}
	}
	return 0, false
}
