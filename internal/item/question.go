package item

import (
	"fmt"
	"strings"

	"github.com/abhisek/retain/internal/sm2"
)

// Question is a free-text prompt the learner answers from memory and
// self-grades (or has graded remotely).
type Question struct {
	ID       int64        `validate:"-"`
	Text     string       `validate:"required,min=1"`
	Tags     string       `validate:"-"`
	Schedule sm2.Schedule `validate:"-"`
}

// NewQuestion builds a question with a fresh schedule.
func NewQuestion(text, tags string) Question {
	return Question{
		Text:     strings.TrimSpace(text),
		Tags:     NormalizeTags(tags),
		Schedule: sm2.NewSchedule(),
	}
}

func (q Question) ItemID() int64       { return q.ID }
func (q Question) Kind() Kind          { return KindQuestion }
func (q Question) Prompt() string      { return q.Text }
func (q Question) Sched() sm2.Schedule { return q.Schedule }

// Validate checks authored fields. Scheduling fields are checked against
// the authored-value bounds; review-time updates bypass this entirely.
func (q Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("question text cannot be empty")
	}
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("invalid question: %w", err)
	}
	return validateAuthoredSchedule(q.Schedule)
}

// validateAuthoredSchedule bounds user-authored scheduling values. The
// upper ease bound applies here only; the engine may drift above it.
func validateAuthoredSchedule(s sm2.Schedule) error {
	if s.Interval < 1 {
		return fmt.Errorf("interval must be at least 1 day, got %d", s.Interval)
	}
	if s.EaseFactor < sm2.MinEaseFactor || s.EaseFactor > sm2.MaxEaseFactor {
		return fmt.Errorf("ease factor must be in [%v, %v], got %v",
			sm2.MinEaseFactor, sm2.MaxEaseFactor, s.EaseFactor)
	}
	return nil
}
