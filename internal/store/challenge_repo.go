package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/retain/internal/item"
)

// ChallengeRepo persists coding challenges.
type ChallengeRepo struct {
	db *sql.DB
}

// Add inserts a challenge and returns it with its assigned ID.
func (r *ChallengeRepo) Add(ctx context.Context, c item.Challenge) (item.Challenge, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO challenges (title, description, testcases, language, tags, last_reviewed, interval, ease_factor)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title, c.Description, c.TestCases, string(c.Language), c.Tags,
		formatDate(c.Schedule.LastReviewed), c.Schedule.Interval, c.Schedule.EaseFactor,
	)
	if err != nil {
		return item.Challenge{}, fmt.Errorf("insert challenge: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return item.Challenge{}, fmt.Errorf("challenge insert id: %w", err)
	}
	c.ID = id
	return c, nil
}

// Get returns the challenge with the given ID.
func (r *ChallengeRepo) Get(ctx context.Context, id int64) (item.Challenge, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, description, testcases, language, tags, last_reviewed, interval, ease_factor
		FROM challenges WHERE id = ?`, id)
	c, err := scanChallenge(row)
	if errors.Is(err, sql.ErrNoRows) {
		return item.Challenge{}, fmt.Errorf("challenge %d: %w", id, ErrNotFound)
	}
	return c, err
}

// List returns all challenges ordered by ID.
func (r *ChallengeRepo) List(ctx context.Context) ([]item.Challenge, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, description, testcases, language, tags, last_reviewed, interval, ease_factor
		FROM challenges ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query challenges: %w", err)
	}
	defer rows.Close()

	var out []item.Challenge
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update rewrites a challenge's content fields.
func (r *ChallengeRepo) Update(ctx context.Context, c item.Challenge) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE challenges SET title = ?, description = ?, testcases = ?, language = ?, tags = ?
		WHERE id = ?`,
		c.Title, c.Description, c.TestCases, string(c.Language), c.Tags, c.ID)
	if err != nil {
		return fmt.Errorf("update challenge %d: %w", c.ID, err)
	}
	return requireRow(res, c.ID)
}

// Delete removes a challenge.
func (r *ChallengeRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM challenges WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete challenge %d: %w", id, err)
	}
	return requireRow(res, id)
}

// Due returns challenges due at now, most overdue first.
func (r *ChallengeRepo) Due(ctx context.Context, now time.Time) ([]item.Challenge, error) {
	all, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	due := all[:0]
	for _, c := range all {
		if c.Schedule.IsDue(now) {
			due = append(due, c)
		}
	}
	sortMostOverdue(due, now)
	return due, nil
}

// ApplyReview persists a review outcome for a challenge.
func (r *ChallengeRepo) ApplyReview(ctx context.Context, id int64, out ReviewOutcome) error {
	return applyReview(ctx, r.db, "challenges", item.KindChallenge, id, out)
}

func scanChallenge(row rowScanner) (item.Challenge, error) {
	var c item.Challenge
	var testCases, tags sql.NullString
	var lastReviewed nullDate
	var language string
	if err := row.Scan(&c.ID, &c.Title, &c.Description, &testCases, &language, &tags,
		&lastReviewed, &c.Schedule.Interval, &c.Schedule.EaseFactor); err != nil {
		return item.Challenge{}, err
	}
	c.TestCases = testCases.String
	c.Tags = tags.String
	c.Language = item.Language(language)
	c.Schedule.LastReviewed = lastReviewed.Time()
	return c, nil
}
