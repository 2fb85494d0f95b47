package exam

import (
	"fmt"
	"time"
)

const (
	builtinName       = "riddle1"
	builtinQuestions  = 50
	builtinPoints     = 2
	builtinTimeLimit  = 60 * time.Minute
	builtinSampleText = "サンプル解答"
)

// builtinChoiceIDs are the questions of the built-in set answered by picking an option.
var builtinChoiceIDs = map[int]bool{11: true, 12: true, 13: true, 50: true}

var builtinOptions = []string{"イモ", "チゲ", "ツル", "ユキ"}

// Default returns the bundled "riddle1" mock exam.
func Default() *Set {
	qs := make([]Question, 0, builtinQuestions)
	for id := 1; id <= builtinQuestions; id++ {
		q := Question{
			ID:       id,
			ImageRef: fmt.Sprintf("%s/%s_%02d.jfjf", builtinName, builtinName, id),
			Points:   builtinPoints,
		}
		if builtinChoiceIDs[id] {
			q.Kind = SingleChoice
			q.Options = append([]string(nil), builtinOptions...)
			q.CorrectChoice = id % len(builtinOptions)
		} else {
			q.Kind = FreeText
			q.CorrectText = builtinSampleText
		}
		qs = append(qs, q)
	}

	return &Set{
		Name:      builtinName,
		Title:     "Riddle Mock Exam 1",
		Version:   CurrentFormatVersion,
		TimeLimit: builtinTimeLimit,
		Questions: qs,
	}
}
