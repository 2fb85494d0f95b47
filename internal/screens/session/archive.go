package session

import (
	"github.com/nazolab/mogi/internal/exam"
	"github.com/nazolab/mogi/internal/grading"
	sess "github.com/nazolab/mogi/internal/session"
	"github.com/nazolab/mogi/internal/store"
)

// resultRecord flattens a graded outcome into its archived form.
func resultRecord(handle string, set *exam.Set, out sess.Outcome, r grading.Report) *store.ResultRecord {
	rec := &store.ResultRecord{
		SessionID:        out.SessionID,
		HandleName:       handle,
		QuestionSet:      set.Name,
		Reason:           out.Reason.String(),
		StartedAt:        out.StartedAt,
		FinishedAt:       out.FinishedAt,
		RemainingSeconds: out.RemainingSeconds,
		TotalScore:       r.TotalScore,
		MaxScore:         r.MaxScore,
		Correct:          r.Correct,
		Answered:         r.Answered,
		Answers:          make([]store.AnswerRecord, 0, len(r.Rows)),
	}
	for _, row := range r.Rows {
		answer := ""
		if !row.Answer.IsAbsent() {
			answer = row.AnswerLabel
		}
		rec.Answers = append(rec.Answers, store.AnswerRecord{
			QuestionID: row.QuestionID,
			Answer:     answer,
			Expected:   row.CorrectLabel,
			Correct:    row.Correct,
			Points:     row.AwardedPoints,
		})
	}
	return rec
}
