// Package grading scores a finished exam against its answer key.
package grading

import (
	"fmt"

	"github.com/nazolab/mogi/internal/answers"
	"github.com/nazolab/mogi/internal/exam"
)

// Unanswered is the display text of a missing answer.
const Unanswered = "(unanswered)"

// Row is the grading of one question.
type Row struct {
	QuestionID    int
	Kind          exam.Kind
	Answer        answers.Value
	AnswerLabel   string
	CorrectLabel  string
	Correct       bool
	Points        int
	AwardedPoints int
}

// Report is the graded exam.
type Report struct {
	Rows       []Row
	TotalScore int
	MaxScore   int
	Correct    int
	Answered   int
}

// Strategy decides whether an answer matches a question's key.
type Strategy interface {
	Match(q exam.Question, v answers.Value) bool
}

// Grader routes each question to the strategy registered for its kind.
type Grader struct {
	strategies map[exam.Kind]Strategy
}

// Option configures a Grader.
type Option func(*Grader)

// WithStrategy registers s for questions of kind k.
func WithStrategy(k exam.Kind, s Strategy) Option {
	return func(g *Grader) { g.strategies[k] = s }
}

// New returns a grader using exact matching for every kind.
func New(opts ...Option) *Grader {
	g := &Grader{strategies: map[exam.Kind]Strategy{
		exam.FreeText:     ExactText{},
		exam.SingleChoice: ChoiceIndex{},
	}}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Grade scores snap against set. Questions missing from snap are unanswered
// and earn nothing.
func (g *Grader) Grade(set *exam.Set, snap answers.Snapshot) Report {
	r := Report{Rows: make([]Row, 0, set.Len()), MaxScore: set.MaxScore()}
	for _, q := range set.Questions {
		v := snap[q.ID]
		row := Row{
			QuestionID:   q.ID,
			Kind:         q.Kind,
			Answer:       v,
			AnswerLabel:  AnswerLabel(q, v),
			CorrectLabel: q.CorrectLabel(),
			Points:       q.Points,
		}
		if !v.IsAbsent() {
			r.Answered++
			if s, ok := g.strategies[q.Kind]; ok && s.Match(q, v) {
				row.Correct = true
				row.AwardedPoints = q.Points
				r.Correct++
				r.TotalScore += q.Points
			}
		}
		r.Rows = append(r.Rows, row)
	}
	return r
}

// AnswerLabel renders an answer for display: choice answers show their option.
func AnswerLabel(q exam.Question, v answers.Value) string {
	if v.IsAbsent() {
		return Unanswered
	}
	if idx, ok := v.Choice(); ok {
		if label, ok := q.OptionLabel(idx); ok {
			return label
		}
		return fmt.Sprintf("option %d", idx+1)
	}
	return v.String()
}

// ExactText matches free text by byte equality: no trimming, no case folding.
type ExactText struct{}

func (ExactText) Match(q exam.Question, v answers.Value) bool {
	s, ok := v.Text()
	return ok && s == q.CorrectText
}

// ChoiceIndex matches the chosen option index against the key.
type ChoiceIndex struct{}

func (ChoiceIndex) Match(q exam.Question, v answers.Value) bool {
	idx, ok := v.Choice()
	return ok && idx == q.CorrectChoice
}
