package sm2

import (
	"math"
	"time"
)

// Schedule holds the three scheduling fields every reviewable item
// carries. A nil LastReviewed means the item has never been reviewed and
// is always due.
type Schedule struct {
	Interval     int        `json:"interval"`
	EaseFactor   float64    `json:"ease_factor"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
}

// NewSchedule returns the schedule assigned to a freshly created item.
func NewSchedule() Schedule {
	return Schedule{Interval: InitialInterval, EaseFactor: InitialEaseFactor}
}

// IsOverdue reports whether an item is due for review. Never-reviewed
// items are always due; otherwise an item is due at or past
// lastReviewed + intervalDays, inclusive of the scheduled day itself.
// Comparison is at calendar-date granularity, each time read in its own
// location, so a stored UTC date and a local clock agree on the day.
func IsOverdue(lastReviewed *time.Time, intervalDays int, now time.Time) bool {
	if lastReviewed == nil {
		return true
	}
	next := dateOnly(*lastReviewed).AddDate(0, 0, intervalDays)
	return !dateOnly(now).Before(next)
}

// DaysOverdue returns how many whole days past due an item is. Zero
// exactly on the due date, never negative before it. Never-reviewed
// items report +Inf so they sort as maximally overdue.
func DaysOverdue(lastReviewed *time.Time, intervalDays int, now time.Time) float64 {
	if lastReviewed == nil {
		return math.Inf(1)
	}
	next := dateOnly(*lastReviewed).AddDate(0, 0, intervalDays)
	days := dateOnly(now).Sub(next).Hours() / 24.0
	if days < 0 {
		return 0
	}
	return days
}

// IsDue reports whether the schedule is due at now.
func (s Schedule) IsDue(now time.Time) bool {
	return IsOverdue(s.LastReviewed, s.Interval, now)
}

// DaysOverdue returns how far past due the schedule is at now.
func (s Schedule) DaysOverdue(now time.Time) float64 {
	return DaysOverdue(s.LastReviewed, s.Interval, now)
}

// NextReviewDate returns the scheduled review date, or the zero time for
// a never-reviewed item.
func (s Schedule) NextReviewDate() time.Time {
	if s.LastReviewed == nil {
		return time.Time{}
	}
	return dateOnly(*s.LastReviewed).AddDate(0, 0, s.Interval)
}

// Status describes a schedule for display.
type Status string

const (
	StatusNew     Status = "new"
	StatusNotDue  Status = "not_due"
	StatusDue     Status = "due"
	StatusOverdue Status = "overdue"
)

// Status returns the review status at now. An item more than one day
// past its scheduled date shows as overdue rather than merely due.
func (s Schedule) Status(now time.Time) Status {
	if s.LastReviewed == nil {
		return StatusNew
	}
	if !s.IsDue(now) {
		return StatusNotDue
	}
	if s.DaysOverdue(now) >= 1 {
		return StatusOverdue
	}
	return StatusDue
}

// dateOnly collapses a time to its calendar date as a UTC midnight
// instant. Using one canonical location keeps date arithmetic exact and
// independent of where each operand was read.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
