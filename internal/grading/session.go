package grading

import (
	"errors"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/retain/internal/llm"
)

// ErrNotGraded is returned when a rating is requested before any
// evaluation has been recorded.
var ErrNotGraded = errors.New("no evaluation recorded yet")

// Session tracks one challenge evaluation conversation: the message
// history across disputes and refactors, and every grade received.
// The first grade is the honest assessment and is the only one that
// feeds the scheduler; later grades exist for the learner's benefit.
type Session struct {
	ID          string
	ChallengeID int64
	Messages    []llm.Message
	FirstScore  *float64
	LastScore   *float64
	Iteration   int
	CreatedAt   time.Time
}

// NewSession starts an evaluation session for a challenge.
func NewSession(challengeID int64) *Session {
	return &Session{
		ID:          uuid.NewString(),
		ChallengeID: challengeID,
		CreatedAt:   time.Now(),
	}
}

func (s *Session) addUser(content string) {
	s.Messages = append(s.Messages, llm.Message{Role: llm.RoleUser, Content: content})
}

func (s *Session) addAssistant(content string) {
	s.Messages = append(s.Messages, llm.Message{Role: llm.RoleAssistant, Content: content})
}

// record stores a grade, pinning the first one.
func (s *Session) record(score float64) {
	s.Iteration++
	score = clampScore(score)
	s.LastScore = &score
	if s.FirstScore == nil {
		first := score
		s.FirstScore = &first
	}
}

// RecordManual registers a grade entered by hand, for when the
// evaluator is unavailable and the learner self-grades.
func (s *Session) RecordManual(score float64) {
	s.record(score)
}

// SM2Rating returns the scheduler rating: the first grade of the
// session, rounded to the nearest integer.
func (s *Session) SM2Rating() (int, error) {
	if s.FirstScore == nil {
		return 0, ErrNotGraded
	}
	return int(math.Round(*s.FirstScore)), nil
}
