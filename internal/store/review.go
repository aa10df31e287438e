package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/retain/internal/item"
	"github.com/abhisek/retain/internal/sm2"
)

// ReviewOutcome records one applied review: what the learner answered
// and the schedule before and after the engine update. Exactly one of
// Rating (self-rated kinds) or Correct+Confidence (MCQ) is set.
type ReviewOutcome struct {
	Rating     *int
	Correct    *bool
	Confidence sm2.Confidence
	Before     sm2.Schedule
	After      sm2.Schedule
	ReviewedAt time.Time
}

// applyReview writes the three scheduling fields and the review_log row
// in one transaction. Serializing the read-modify-write per item this
// way keeps concurrent reviewers from interleaving updates.
func applyReview(ctx context.Context, db *sql.DB, table string, kind item.Kind, id int64, out ReviewOutcome) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin review tx: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		// #nosec G201 -- table is one of three compile-time constants.
		fmt.Sprintf(`UPDATE %s SET interval = ?, ease_factor = ?, last_reviewed = ? WHERE id = ?`, table),
		out.After.Interval, out.After.EaseFactor, formatDate(out.After.LastReviewed), id,
	)
	if err != nil {
		return fmt.Errorf("update %s schedule: %w", table, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d not found", kind, id)
	}

	var rating, correct any
	if out.Rating != nil {
		rating = *out.Rating
	}
	if out.Correct != nil {
		correct = boolToInt(*out.Correct)
	}
	var confidence any
	if out.Confidence != "" {
		confidence = string(out.Confidence)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO review_log (id, item_kind, item_id, rating, correct, confidence,
			interval_before, ease_before, interval_after, ease_after, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), string(kind), id, rating, correct, confidence,
		out.Before.Interval, out.Before.EaseFactor,
		out.After.Interval, out.After.EaseFactor,
		out.ReviewedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("append review log: %w", err)
	}

	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// ReviewLogEntry is one row of review history.
type ReviewLogEntry struct {
	ID             string
	ItemKind       item.Kind
	ItemID         int64
	Rating         *int
	Correct        *bool
	Confidence     sm2.Confidence
	IntervalBefore int
	EaseBefore     float64
	IntervalAfter  int
	EaseAfter      float64
	ReviewedAt     time.Time
}

// ReviewHistory returns the most recent review_log entries, newest
// first, up to limit (0 = all).
func (s *Store) ReviewHistory(ctx context.Context, limit int) ([]ReviewLogEntry, error) {
	q := `
		SELECT id, item_kind, item_id, rating, correct, confidence,
			interval_before, ease_before, interval_after, ease_after, reviewed_at
		FROM review_log ORDER BY reviewed_at DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query review log: %w", err)
	}
	defer rows.Close()

	var entries []ReviewLogEntry
	for rows.Next() {
		var e ReviewLogEntry
		var kind, confidence sql.NullString
		var rating, correct sql.NullInt64
		if err := rows.Scan(&e.ID, &kind, &e.ItemID, &rating, &correct, &confidence,
			&e.IntervalBefore, &e.EaseBefore, &e.IntervalAfter, &e.EaseAfter, &e.ReviewedAt); err != nil {
			return nil, fmt.Errorf("scan review log row: %w", err)
		}
		e.ItemKind = item.Kind(kind.String)
		e.Confidence = sm2.Confidence(confidence.String)
		if rating.Valid {
			r := int(rating.Int64)
			e.Rating = &r
		}
		if correct.Valid {
			c := correct.Int64 != 0
			e.Correct = &c
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
