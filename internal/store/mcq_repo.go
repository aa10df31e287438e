package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/retain/internal/item"
)

// MCQRepo persists multiple-choice and true/false questions.
type MCQRepo struct {
	db *sql.DB
}

// Add inserts an MCQ and returns it with its assigned ID.
func (r *MCQRepo) Add(ctx context.Context, m item.MCQ) (item.MCQ, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO mcq_questions (question, question_type, option_a, option_b, option_c, option_d,
			correct_option, explanation_a, explanation_b, explanation_c, explanation_d,
			tags, last_reviewed, interval, ease_factor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.Question, string(m.QuestionType), m.OptionA, m.OptionB, nullable(m.OptionC), nullable(m.OptionD),
		m.CorrectOption, nullable(m.ExplanationA), nullable(m.ExplanationB), nullable(m.ExplanationC), nullable(m.ExplanationD),
		m.Tags, formatDate(m.Schedule.LastReviewed), m.Schedule.Interval, m.Schedule.EaseFactor,
	)
	if err != nil {
		return item.MCQ{}, fmt.Errorf("insert mcq: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return item.MCQ{}, fmt.Errorf("mcq insert id: %w", err)
	}
	m.ID = id
	return m, nil
}

// Get returns the MCQ with the given ID.
func (r *MCQRepo) Get(ctx context.Context, id int64) (item.MCQ, error) {
	row := r.db.QueryRowContext(ctx, mcqSelect+` WHERE id = ?`, id)
	m, err := scanMCQ(row)
	if errors.Is(err, sql.ErrNoRows) {
		return item.MCQ{}, fmt.Errorf("mcq %d: %w", id, ErrNotFound)
	}
	return m, err
}

// List returns all MCQs ordered by ID.
func (r *MCQRepo) List(ctx context.Context) ([]item.MCQ, error) {
	rows, err := r.db.QueryContext(ctx, mcqSelect+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query mcqs: %w", err)
	}
	defer rows.Close()

	var out []item.MCQ
	for rows.Next() {
		m, err := scanMCQ(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Update rewrites an MCQ's content fields.
func (r *MCQRepo) Update(ctx context.Context, m item.MCQ) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE mcq_questions SET question = ?, question_type = ?, option_a = ?, option_b = ?,
			option_c = ?, option_d = ?, correct_option = ?, explanation_a = ?, explanation_b = ?,
			explanation_c = ?, explanation_d = ?, tags = ?
		WHERE id = ?`,
		m.Question, string(m.QuestionType), m.OptionA, m.OptionB,
		nullable(m.OptionC), nullable(m.OptionD), m.CorrectOption,
		nullable(m.ExplanationA), nullable(m.ExplanationB), nullable(m.ExplanationC), nullable(m.ExplanationD),
		m.Tags, m.ID)
	if err != nil {
		return fmt.Errorf("update mcq %d: %w", m.ID, err)
	}
	return requireRow(res, m.ID)
}

// Delete removes an MCQ.
func (r *MCQRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM mcq_questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete mcq %d: %w", id, err)
	}
	return requireRow(res, id)
}

// Due returns MCQs due at now, most overdue first.
func (r *MCQRepo) Due(ctx context.Context, now time.Time) ([]item.MCQ, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	due := all[:0]
	for _, m := range all {
		if m.Schedule.IsDue(now) {
			due = append(due, m)
		}
	}
	sortMostOverdue(due, now)
	return due, nil
}

// ApplyReview persists a review outcome for an MCQ.
func (r *MCQRepo) ApplyReview(ctx context.Context, id int64, out ReviewOutcome) error {
	return applyReview(ctx, r.db, "mcq_questions", item.KindMCQ, id, out)
}

const mcqSelect = `
	SELECT id, question, question_type, option_a, option_b, option_c, option_d,
		correct_option, explanation_a, explanation_b, explanation_c, explanation_d,
		tags, last_reviewed, interval, ease_factor
	FROM mcq_questions`

func scanMCQ(row rowScanner) (item.MCQ, error) {
	var m item.MCQ
	var qtype, correct string
	var optC, optD, expA, expB, expC, expD, tags sql.NullString
	var lastReviewed nullDate
	if err := row.Scan(&m.ID, &m.Question, &qtype, &m.OptionA, &m.OptionB, &optC, &optD,
		&correct, &expA, &expB, &expC, &expD, &tags,
		&lastReviewed, &m.Schedule.Interval, &m.Schedule.EaseFactor); err != nil {
		return item.MCQ{}, err
	}
	m.QuestionType = item.MCQKind(qtype)
	m.OptionC = optC.String
	m.OptionD = optD.String
	m.CorrectOption = correct
	m.ExplanationA = expA.String
	m.ExplanationB = expB.String
	m.ExplanationC = expC.String
	m.ExplanationD = expD.String
	m.Tags = tags.String
	m.Schedule.LastReviewed = lastReviewed.Time()
	return m, nil
}

// nullable maps empty strings to NULL for optional text columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
