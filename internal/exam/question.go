package exam

import (
	"fmt"
	"time"
)

// Kind is the answer format of a question.
type Kind int

const (
	FreeText     Kind = iota // Typed answer, graded by exact string equality
	SingleChoice             // One option out of Options
)

// String returns the document spelling of the kind.
func (k Kind) String() string {
	switch k {
	case FreeText:
		return "text"
	case SingleChoice:
		return "choice"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind converts a document spelling back into a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "text":
		return FreeText, nil
	case "choice":
		return SingleChoice, nil
	}
	return 0, fmt.Errorf("unknown question kind %q", s)
}

// Question is a single exam item. Questions never change once a set is loaded.
type Question struct {
	// ID is the 1-based position of the question in exam order.
	ID int

	// ImageRef locates the question image, relative to the images directory.
	ImageRef string

	// Points awarded for a correct answer.
	Points int

	Kind Kind

	// Options holds the choices for SingleChoice questions, empty otherwise.
	Options []string

	// CorrectText is the expected answer of a FreeText question.
	CorrectText string

	// CorrectChoice is the index into Options of a SingleChoice question.
	CorrectChoice int
}

// OptionLabel returns the label of option i.
func (q Question) OptionLabel(i int) (string, bool) {
	if i < 0 || i >= len(q.Options) {
		return "", false
	}
	return q.Options[i], true
}

// CorrectLabel renders the expected answer for display.
func (q Question) CorrectLabel() string {
	if q.Kind == SingleChoice {
		label, _ := q.OptionLabel(q.CorrectChoice)
		return label
	}
	return q.CorrectText
}

// Set is an ordered, immutable list of questions plus exam-wide settings.
type Set struct {
	Name      string
	Title     string
	Version   string
	TimeLimit time.Duration
	Questions []Question
}

// Len returns the number of questions.
func (s *Set) Len() int {
	return len(s.Questions)
}

// Question looks a question up by id.
func (s *Set) Question(id int) (Question, bool) {
	// ids are positional, but don't rely on it for hand-written sets.
	if id >= 1 && id <= len(s.Questions) && s.Questions[id-1].ID == id {
		return s.Questions[id-1], true
	}
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// MaxScore is the sum of points over all questions.
func (s *Set) MaxScore() int {
	total := 0
	for _, q := range s.Questions {
		total += q.Points
	}
	return total
}
