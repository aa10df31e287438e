package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/retain/internal/item"
)

// ErrNotFound is returned when a requested item does not exist.
var ErrNotFound = errors.New("item not found")

// QuestionRepo persists free-text questions.
type QuestionRepo struct {
	db *sql.DB
}

// Add inserts a question and returns it with its assigned ID.
func (r *QuestionRepo) Add(ctx context.Context, q item.Question) (item.Question, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO questions (question, tags, last_reviewed, interval, ease_factor)
		VALUES (?, ?, ?, ?, ?)`,
		q.Text, q.Tags, formatDate(q.Schedule.LastReviewed), q.Schedule.Interval, q.Schedule.EaseFactor,
	)
	if err != nil {
		return item.Question{}, fmt.Errorf("insert question: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return item.Question{}, fmt.Errorf("question insert id: %w", err)
	}
	q.ID = id
	return q, nil
}

// Get returns the question with the given ID.
func (r *QuestionRepo) Get(ctx context.Context, id int64) (item.Question, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, question, tags, last_reviewed, interval, ease_factor
		FROM questions WHERE id = ?`, id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return item.Question{}, fmt.Errorf("question %d: %w", id, ErrNotFound)
	}
	return q, err
}

// List returns all questions ordered by ID.
func (r *QuestionRepo) List(ctx context.Context) ([]item.Question, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, question, tags, last_reviewed, interval, ease_factor
		FROM questions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []item.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	return out, rows.Err()
}

// Update rewrites a question's content fields. Scheduling fields are
// only ever changed through ApplyReview.
func (r *QuestionRepo) Update(ctx context.Context, q item.Question) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE questions SET question = ?, tags = ? WHERE id = ?`,
		q.Text, q.Tags, q.ID)
	if err != nil {
		return fmt.Errorf("update question %d: %w", q.ID, err)
	}
	return requireRow(res, q.ID)
}

// Delete removes a question.
func (r *QuestionRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete question %d: %w", id, err)
	}
	return requireRow(res, id)
}

// Due returns questions due at now, most overdue first. Never-reviewed
// questions sort before everything else.
func (r *QuestionRepo) Due(ctx context.Context, now time.Time) ([]item.Question, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	due := all[:0]
	for _, q := range all {
		if q.Schedule.IsDue(now) {
			due = append(due, q)
		}
	}
	sortMostOverdue(due, now)
	return due, nil
}

// ApplyReview persists a review outcome for a question.
func (r *QuestionRepo) ApplyReview(ctx context.Context, id int64, out ReviewOutcome) error {
	return applyReview(ctx, r.db, "questions", item.KindQuestion, id, out)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (item.Question, error) {
	var q item.Question
	var tags sql.NullString
	var lastReviewed nullDate
	if err := row.Scan(&q.ID, &q.Text, &tags, &lastReviewed, &q.Schedule.Interval, &q.Schedule.EaseFactor); err != nil {
		return item.Question{}, err
	}
	q.Tags = tags.String
	q.Schedule.LastReviewed = lastReviewed.Time()
	return q, nil
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("id %d: %w", id, ErrNotFound)
	}
	return nil
}

// sortMostOverdue orders items by days overdue descending; +Inf
// (never reviewed) first, ties broken by ID for stable listings.
func sortMostOverdue[T item.Reviewable](items []T, now time.Time) {
	sort.Slice(items, func(i, j int) bool {
		ao := items[i].Sched().DaysOverdue(now)
		bo := items[j].Sched().DaysOverdue(now)
		if ao != bo {
			return ao > bo
		}
		return items[i].ItemID() < items[j].ItemID()
	})
}
