package session

import "time"

// Tally accumulates results over one session for the summary screen.
type Tally struct {
	Reviewed int
	Correct  int
	NextDue  *time.Time
}

// RecordRating counts a self-rated review. Ratings of 2 and up count
// as correct.
func (t *Tally) RecordRating(rating int, nextDue time.Time) {
	t.Reviewed++
	if rating >= 2 {
		t.Correct++
	}
	t.noteDue(nextDue)
}

// RecordMCQ counts an MCQ review.
func (t *Tally) RecordMCQ(correct bool, nextDue time.Time) {
	t.Reviewed++
	if correct {
		t.Correct++
	}
	t.noteDue(nextDue)
}

// noteDue keeps the earliest upcoming due date seen this session.
func (t *Tally) noteDue(d time.Time) {
	if t.NextDue == nil || d.Before(*t.NextDue) {
		t.NextDue = &d
	}
}
