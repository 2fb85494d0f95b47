package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a result id does not exist.
var ErrNotFound = errors.New("result not found")

// QueryOpts configures result queries with filtering and pagination.
type QueryOpts struct {
	Limit      int       // max results (0 = unlimited)
	HandleName string    // exact handle name ("" = everyone)
	From       time.Time // finished_at >= From
	To         time.Time // finished_at <= To
}

// AnswerRecord is the archived grading of one question.
type AnswerRecord struct {
	QuestionID int    `json:"question_id"`
	Answer     string `json:"answer"`
	Expected   string `json:"expected"`
	Correct    bool   `json:"correct"`
	Points     int    `json:"points"`
}

// ResultRecord is one finished, graded exam.
type ResultRecord struct {
	ID               string
	Sequence         int64
	SessionID        string
	HandleName       string
	QuestionSet      string
	Reason           string
	StartedAt        time.Time
	FinishedAt       time.Time
	RemainingSeconds int
	TotalScore       int
	MaxScore         int
	Correct          int
	Answered         int
	Answers          []AnswerRecord
}

// ResultRepo archives graded exams.
type ResultRepo interface {
	// Save stores rec, assigning a fresh Sequence and, when unset, an ID.
	Save(ctx context.Context, rec *ResultRecord) error

	// Get returns the result with the given id, or ErrNotFound.
	Get(ctx context.Context, id string) (*ResultRecord, error)

	// Query returns results newest first.
	Query(ctx context.Context, opts QueryOpts) ([]ResultRecord, error)

	// DeleteAll removes every archived result and returns how many were removed.
	DeleteAll(ctx context.Context) (int64, error)
}

type resultRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

const resultColumns = `id, sequence, session_id, handle_name, question_set, reason,
	started_at, finished_at, remaining_seconds, total_score, max_score, correct, answered, answers_json`

func (r *resultRepo) Save(ctx context.Context, rec *ResultRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	rec.Sequence = seq

	answersJSON, err := json.Marshal(rec.Answers)
	if err != nil {
		return fmt.Errorf("marshal answers: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO exam_results (`+resultColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Sequence, rec.SessionID, rec.HandleName, rec.QuestionSet, rec.Reason,
		rec.StartedAt.UnixMilli(), rec.FinishedAt.UnixMilli(), rec.RemainingSeconds,
		rec.TotalScore, rec.MaxScore, rec.Correct, rec.Answered, string(answersJSON),
	)
	if err != nil {
		return fmt.Errorf("save result: %w", err)
	}
	return nil
}

func (r *resultRepo) Get(ctx context.Context, id string) (*ResultRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+resultColumns+` FROM exam_results WHERE id = ?`, id)
	rec, err := scanResult(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get result: %w", err)
	}
	return rec, nil
}

func (r *resultRepo) Query(ctx context.Context, opts QueryOpts) ([]ResultRecord, error) {
	var (
		where []string
		args  []any
	)
	if opts.HandleName != "" {
		where = append(where, "handle_name = ?")
		args = append(args, opts.HandleName)
	}
	if !opts.From.IsZero() {
		where = append(where, "finished_at >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "finished_at <= ?")
		args = append(args, opts.To.UnixMilli())
	}

	q := `SELECT ` + resultColumns + ` FROM exam_results`
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		q += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	defer rows.Close()

	var out []ResultRecord
	for rows.Next() {
		rec, err := scanResult(rows)
		if err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}
	return out, nil
}

func (r *resultRepo) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM exam_results`)
	if err != nil {
		return 0, fmt.Errorf("delete results: %w", err)
	}
	return res.RowsAffected()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanResult(s scanner) (*ResultRecord, error) {
	var (
		rec               ResultRecord
		started, finished int64
		answersJSON       string
	)
	err := s.Scan(&rec.ID, &rec.Sequence, &rec.SessionID, &rec.HandleName, &rec.QuestionSet, &rec.Reason,
		&started, &finished, &rec.RemainingSeconds, &rec.TotalScore, &rec.MaxScore,
		&rec.Correct, &rec.Answered, &answersJSON)
	if err != nil {
		return nil, err
	}
	rec.StartedAt = time.UnixMilli(started)
	rec.FinishedAt = time.UnixMilli(finished)
	if err := json.Unmarshal([]byte(answersJSON), &rec.Answers); err != nil {
		return nil, fmt.Errorf("unmarshal answers: %w", err)
	}
	return &rec, nil
}
