package answers

import "strconv"

type valueKind uint8

const (
	kindAbsent valueKind = iota
	kindText
	kindChoice
)

// Value is a recorded answer: free text, a choice index, or absent (the zero value).
type Value struct {
	kind   valueKind
	text   string
	choice int
}

// Text returns a free-text answer. The empty string is the absent value.
func Text(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: kindText, text: s}
}

// Choice returns a single-choice answer. Negative indexes are the absent value.
func Choice(i int) Value {
	if i < 0 {
		return Value{}
	}
	return Value{kind: kindChoice, choice: i}
}

// IsAbsent reports whether no answer is recorded.
func (v Value) IsAbsent() bool { return v.kind == kindAbsent }

// Text returns the free-text answer.
func (v Value) Text() (string, bool) {
	return v.text, v.kind == kindText
}

// Choice returns the chosen option index.
func (v Value) Choice() (int, bool) {
	return v.choice, v.kind == kindChoice
}

// String renders the raw value; choices render as their index.
func (v Value) String() string {
	switch v.kind {
	case kindText:
		return v.text
	case kindChoice:
		return strconv.Itoa(v.choice)
	}
	return ""
}
