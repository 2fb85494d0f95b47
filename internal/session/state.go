package session

import (
	"fmt"
	"time"

	"github.com/nazolab/mogi/internal/answers"
)

// Phase represents the lifecycle stage of an exam session.
type Phase int

const (
	PhaseActive   Phase = iota // Clock running, answers editable
	PhaseFinished              // Answers handed off for grading
)

func (p Phase) String() string {
	if p == PhaseFinished {
		return "finished"
	}
	return "active"
}

// FinishReason records why a session ended.
type FinishReason int

const (
	UserRequested FinishReason = iota
	TimedOut
)

func (r FinishReason) String() string {
	switch r {
	case UserRequested:
		return "user_requested"
	case TimedOut:
		return "timed_out"
	}
	return fmt.Sprintf("FinishReason(%d)", int(r))
}

// Direction is a relative navigation step.
type Direction int

const (
	Prev Direction = -1
	Next Direction = 1
)

// State is the controller-owned part of a session.
type State struct {
	// CurrentIndex is the 0-based position of the displayed question.
	CurrentIndex int

	// RemainingSeconds counts down once per tick and never goes below zero.
	RemainingSeconds int

	// Phase is the current session phase.
	Phase Phase
}

// Outcome is what a finished session hands to grading.
type Outcome struct {
	SessionID        string
	Reason           FinishReason
	Answers          answers.Snapshot
	RemainingSeconds int
	StartedAt        time.Time
	FinishedAt       time.Time
}

// ListItem is one row of the question navigation list.
type ListItem struct {
	Index        int
	QuestionID   int
	IsActive     bool
	IsLocked     bool
	IsBookmarked bool
	Value        answers.Value
}

// AdvanceTicket is a pending auto-advance created by Submit. The host delivers
// it back through CompleteAdvance once Delay has passed.
type AdvanceTicket struct {
	id     uint64
	Target int
	Delay  time.Duration
}

// ResultSink receives the outcome of a finished session.
type ResultSink interface {
	Receive(Outcome)
}

// SinkFunc adapts a function into a ResultSink.
type SinkFunc func(Outcome)

func (f SinkFunc) Receive(o Outcome) { f(o) }

// Snapshotter produces the answers handed off at finish.
type Snapshotter interface {
	Snapshot() answers.Snapshot
}
