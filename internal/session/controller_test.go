package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nazolab/mogi/internal/answers"
	"github.com/nazolab/mogi/internal/confirm"
	"github.com/nazolab/mogi/internal/drawing"
	"github.com/nazolab/mogi/internal/exam"
)

// recordingSink collects every outcome it receives.
type recordingSink struct {
	outcomes []Outcome
}

func (s *recordingSink) Receive(o Outcome) { s.outcomes = append(s.outcomes, o) }

// fixedSnapshotter returns a canned snapshot.
type fixedSnapshotter struct {
	snap answers.Snapshot
}

func (f fixedSnapshotter) Snapshot() answers.Snapshot { return f.snap }

func testSet(n int, limit time.Duration) *exam.Set {
	qs := make([]exam.Question, n)
	for i := range qs {
		qs[i] = exam.Question{ID: i + 1, Points: 2, Kind: exam.FreeText, CorrectText: "x"}
	}
	return &exam.Set{Name: "test", TimeLimit: limit, Questions: qs}
}

func newTestController(t *testing.T, n int, limit time.Duration, c confirm.Confirmer, opts ...Option) (*Controller, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	ctrl, err := New(testSet(n, limit), c, sink, opts...)
	require.NoError(t, err)
	return ctrl, sink
}

func TestNew_EmptySet(t *testing.T) {
	_, err := New(&exam.Set{}, confirm.Always, nil)
	assert.ErrorIs(t, err, ErrEmptySet)
	_, err = New(nil, confirm.Always, nil)
	assert.ErrorIs(t, err, ErrEmptySet)
}

func TestNew_InitialState(t *testing.T) {
	ctrl, _ := newTestController(t, 3, 2*time.Minute, confirm.Always, WithSessionID("s-1"))

	assert.Equal(t, State{CurrentIndex: 0, RemainingSeconds: 120, Phase: PhaseActive}, ctrl.State())
	assert.Equal(t, "s-1", ctrl.ID())
	assert.Equal(t, 1, ctrl.Engine().Active())
}

func TestNew_TimeLimitFallbacks(t *testing.T) {
	ctrl, _ := newTestController(t, 1, 0, confirm.Always)
	assert.Equal(t, DefaultTimeLimit, ctrl.Remaining())

	ctrl, _ = newTestController(t, 1, time.Hour, confirm.Always, WithTimeLimit(10*time.Second))
	assert.Equal(t, 10, ctrl.State().RemainingSeconds)

	ctrl, _ = newTestController(t, 1, 0, confirm.Always)
	assert.NotEmpty(t, ctrl.ID(), "a session id is generated")
}

func TestNavigate(t *testing.T) {
	ctrl, _ := newTestController(t, 3, time.Minute, confirm.Always)

	assert.False(t, ctrl.Navigate(Prev), "prev at the first question is a no-op")
	assert.Equal(t, 0, ctrl.State().CurrentIndex)

	assert.True(t, ctrl.Navigate(Next))
	assert.True(t, ctrl.Navigate(Next))
	assert.False(t, ctrl.Navigate(Next), "next at the last question is a no-op")
	assert.Equal(t, 2, ctrl.State().CurrentIndex)
	assert.Equal(t, 3, ctrl.Engine().Active(), "engine follows the current question")

	assert.True(t, ctrl.Navigate(Prev))
	assert.Equal(t, 1, ctrl.State().CurrentIndex)
}

func TestJumpTo(t *testing.T) {
	ctrl, _ := newTestController(t, 5, time.Minute, confirm.Always)

	for _, idx := range []int{-1, 5, 99} {
		assert.False(t, ctrl.JumpTo(idx), "JumpTo(%d)", idx)
		assert.Equal(t, 0, ctrl.State().CurrentIndex)
	}
	assert.True(t, ctrl.JumpTo(4))
	assert.Equal(t, 5, ctrl.Current().ID)
}

func TestNavigationDiscardsUnfinishedStroke(t *testing.T) {
	ctrl, _ := newTestController(t, 3, time.Minute, confirm.Always)
	eng := ctrl.Engine()
	eng.BeginStroke(drawing.Point{X: 1, Y: 1})
	eng.ExtendStroke(drawing.Point{X: 2, Y: 2})

	ctrl.Navigate(Next)
	assert.False(t, eng.Dragging())
	assert.Empty(t, eng.Store().Committed(1))
	assert.Empty(t, eng.Store().Committed(2))
}

func TestTick_CountsDownAndTimesOut(t *testing.T) {
	ctrl, sink := newTestController(t, 2, 3*time.Second, confirm.Always)

	prev := ctrl.State().RemainingSeconds
	for i := 0; i < 2; i++ {
		ctrl.Tick()
		got := ctrl.State().RemainingSeconds
		assert.LessOrEqual(t, got, prev)
		prev = got
	}
	assert.Equal(t, 1, ctrl.State().RemainingSeconds)
	assert.True(t, ctrl.Active())

	ctrl.Tick()
	assert.Equal(t, 0, ctrl.State().RemainingSeconds)
	assert.Equal(t, PhaseFinished, ctrl.State().Phase)
	require.Len(t, sink.outcomes, 1)
	assert.Equal(t, TimedOut, sink.outcomes[0].Reason)

	for i := 0; i < 3; i++ {
		ctrl.Tick()
	}
	assert.Equal(t, 0, ctrl.State().RemainingSeconds, "remaining time never goes negative")
	assert.Len(t, sink.outcomes, 1, "finish fires exactly once")
}

func TestFinish_Idempotent(t *testing.T) {
	ctrl, sink := newTestController(t, 2, time.Minute, confirm.Always)

	assert.True(t, ctrl.Finish(UserRequested))
	assert.False(t, ctrl.Finish(UserRequested))
	assert.False(t, ctrl.Finish(TimedOut))
	require.Len(t, sink.outcomes, 1)
	assert.Equal(t, UserRequested, sink.outcomes[0].Reason)

	out, ok := ctrl.Outcome()
	require.True(t, ok)
	assert.Equal(t, ctrl.ID(), out.SessionID)
}

func TestFinish_FreezesInput(t *testing.T) {
	ctrl, _ := newTestController(t, 3, time.Minute, confirm.Always)
	ctrl.Finish(UserRequested)

	assert.False(t, ctrl.Navigate(Next))
	assert.False(t, ctrl.SetAnswer(1, answers.Text("late")))
	_, ok := ctrl.Submit(1)
	assert.False(t, ok)
	assert.True(t, ctrl.Ledger().Value(1).IsAbsent())
}

func TestRequestFinish_GoesThroughGate(t *testing.T) {
	var gate confirm.Gate
	ctrl, sink := newTestController(t, 2, time.Minute, &gate)

	ctrl.RequestFinish()
	req, ok := gate.Pending()
	require.True(t, ok)
	assert.Equal(t, FinishPrompt, req.Prompt)
	assert.True(t, ctrl.Active(), "nothing happens before the user answers")

	gate.Cancel()
	assert.True(t, ctrl.Active())
	assert.Empty(t, sink.outcomes)

	ctrl.RequestFinish()
	gate.Accept()
	assert.False(t, ctrl.Active())
	require.Len(t, sink.outcomes, 1)
	assert.Equal(t, UserRequested, sink.outcomes[0].Reason)
}

func TestSubmit_LocksAndSchedulesAdvance(t *testing.T) {
	ctrl, _ := newTestController(t, 3, time.Minute, confirm.Always, WithAdvanceDelay(50*time.Millisecond))

	ctrl.SetAnswer(1, answers.Text("foo"))
	ticket, ok := ctrl.Submit(1)
	require.True(t, ok)
	assert.True(t, ctrl.Ledger().IsLocked(1))
	assert.Equal(t, 1, ticket.Target)
	assert.Equal(t, 50*time.Millisecond, ticket.Delay)
	assert.Equal(t, 0, ctrl.State().CurrentIndex, "advance waits for the ticket")

	assert.False(t, ctrl.SetAnswer(1, answers.Text("bar")), "locked answers are immutable")
	assert.Equal(t, "foo", ctrl.Ledger().Value(1).String())

	assert.True(t, ctrl.CompleteAdvance(ticket))
	assert.Equal(t, 1, ctrl.State().CurrentIndex)
	assert.False(t, ctrl.CompleteAdvance(ticket), "tickets are single use")
}

func TestSubmit_LastQuestionWrapsToFirst(t *testing.T) {
	ctrl, _ := newTestController(t, 3, time.Minute, confirm.Always)
	ctrl.JumpTo(2)

	ticket, ok := ctrl.Submit(3)
	require.True(t, ok)
	assert.Equal(t, 0, ticket.Target)
	ctrl.CompleteAdvance(ticket)
	assert.Equal(t, 0, ctrl.State().CurrentIndex)
}

func TestSubmit_AdvanceTargetsFixedQuestion(t *testing.T) {
	ctrl, _ := newTestController(t, 5, time.Minute, confirm.Always)

	ticket, _ := ctrl.Submit(1)
	ctrl.JumpTo(3) // user navigates before the advance fires

	assert.True(t, ctrl.CompleteAdvance(ticket))
	assert.Equal(t, 1, ctrl.State().CurrentIndex)
}

func TestSubmit_AdvanceVoidAfterFinish(t *testing.T) {
	ctrl, _ := newTestController(t, 3, time.Minute, confirm.Always)

	ticket, _ := ctrl.Submit(1)
	ctrl.Finish(UserRequested)

	assert.False(t, ctrl.CompleteAdvance(ticket))
	assert.Equal(t, 0, ctrl.State().CurrentIndex)
}

func TestSubmit_UnknownQuestion(t *testing.T) {
	ctrl, _ := newTestController(t, 3, time.Minute, confirm.Always)
	_, ok := ctrl.Submit(42)
	assert.False(t, ok)
}

func TestReset_UnlocksAndKeepsValue(t *testing.T) {
	ctrl, _ := newTestController(t, 2, time.Minute, confirm.Always)
	ctrl.SetAnswer(2, answers.Choice(3))
	ctrl.Submit(2)

	ctrl.Reset(2)
	assert.False(t, ctrl.Ledger().IsLocked(2))
	idx, ok := ctrl.Ledger().Value(2).Choice()
	require.True(t, ok)
	assert.Equal(t, 3, idx)
}

func TestOverview(t *testing.T) {
	ctrl, _ := newTestController(t, 3, time.Minute, confirm.Always)
	ctrl.SetAnswer(2, answers.Text("two"))
	ctrl.Submit(2)
	ctrl.ToggleBookmark(3)
	ctrl.JumpTo(1)

	items := ctrl.Overview()
	require.Len(t, items, 3)

	assert.Equal(t, ListItem{Index: 0, QuestionID: 1}, items[0])
	assert.Equal(t, ListItem{Index: 1, QuestionID: 2, IsActive: true, IsLocked: true, Value: answers.Text("two")}, items[1])
	assert.Equal(t, ListItem{Index: 2, QuestionID: 3, IsBookmarked: true}, items[2])

	assert.False(t, ctrl.ToggleBookmark(99))
}

func TestWithSnapshotter(t *testing.T) {
	want := answers.Snapshot{7: answers.Text("injected")}
	ctrl, sink := newTestController(t, 2, time.Minute, confirm.Always, WithSnapshotter(fixedSnapshotter{snap: want}))
	ctrl.SetAnswer(1, answers.Text("ignored"))

	ctrl.Finish(UserRequested)
	require.Len(t, sink.outcomes, 1)
	assert.Equal(t, want, sink.outcomes[0].Answers)
}

func TestOutcomeTimestamps(t *testing.T) {
	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := start
	ctrl, sink := newTestController(t, 1, time.Minute, confirm.Always, WithClock(func() time.Time { return clock }))

	clock = start.Add(90 * time.Second)
	ctrl.Finish(UserRequested)
	require.Len(t, sink.outcomes, 1)
	assert.Equal(t, start, sink.outcomes[0].StartedAt)
	assert.Equal(t, clock, sink.outcomes[0].FinishedAt)
}

// A three-question exam with a five second limit: answer and submit the
// first question, then let the clock run out.
func TestScenario_SubmitThenTimeout(t *testing.T) {
	ctrl, sink := newTestController(t, 3, 5*time.Second, confirm.Always)

	ctrl.SetAnswer(1, answers.Text("foo"))
	ticket, ok := ctrl.Submit(1)
	require.True(t, ok)
	assert.True(t, ctrl.Ledger().IsLocked(1))

	ctrl.CompleteAdvance(ticket)
	assert.Equal(t, 1, ctrl.State().CurrentIndex)

	for i := 0; i < 5; i++ {
		ctrl.Tick()
	}
	assert.Equal(t, PhaseFinished, ctrl.State().Phase)
	require.Len(t, sink.outcomes, 1)
	assert.Equal(t, answers.Snapshot{1: answers.Text("foo")}, sink.outcomes[0].Answers)
	assert.Equal(t, TimedOut, sink.outcomes[0].Reason)

	ctrl.Tick()
	assert.Len(t, sink.outcomes, 1)
}

// Drawing two strokes and undoing one, then asking to clear: the drawing
// survives until the clear is confirmed.
func TestScenario_ClearNeedsConfirmation(t *testing.T) {
	var gate confirm.Gate
	ctrl, _ := newTestController(t, 3, time.Minute, &gate)
	ctrl.JumpTo(1)
	eng := ctrl.Engine()

	for _, y := range []float64{1, 5} {
		eng.BeginStroke(drawing.Point{X: 0, Y: y})
		eng.ExtendStroke(drawing.Point{X: 9, Y: y})
		eng.EndStroke()
	}
	eng.Undo()

	eng.Clear(2)
	h, ok := eng.Store().History(2)
	require.True(t, ok)
	assert.Len(t, h.Committed(), 1)
	assert.Len(t, h.Undone(), 1)

	gate.Accept()
	assert.Empty(t, eng.Store().Committed(2))
	assert.False(t, eng.Redo())
}
