// Package review drives a review session: free-text questions with
// 0-3 self-rating (optionally graded by the LLM) and MCQs with a
// confidence pick after each answer.
package review

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/retain/internal/grading"
	"github.com/abhisek/retain/internal/item"
	"github.com/abhisek/retain/internal/router"
	"github.com/abhisek/retain/internal/screen"
	"github.com/abhisek/retain/internal/screens/summary"
	sess "github.com/abhisek/retain/internal/session"
	"github.com/abhisek/retain/internal/sm2"
	"github.com/abhisek/retain/internal/store"
	"github.com/abhisek/retain/internal/ui/components"
	"github.com/abhisek/retain/internal/ui/layout"
)

type phase int

const (
	phaseLoading phase = iota
	phasePrompt        // question shown, answer being typed
	phaseGrading       // waiting for the LLM grade
	phaseRate          // 0-3 self-rating
	phaseAnswer        // MCQ options active
	phaseConfidence
	phaseReveal // outcome + schedule change, any key advances
)

// ReviewScreen runs the session queue one item at a time.
type ReviewScreen struct {
	st     *store.Store
	grader *grading.Service

	queue []item.Reviewable
	idx   int
	phase phase
	tally sess.Tally

	input      components.TextInput
	mc         components.MultiChoice
	confidence int // index into confidenceLevels

	grade    *grading.AnswerEvaluation
	gradeErr error

	// outcome of the just-applied review, shown in phaseReveal
	before  sm2.Schedule
	after   sm2.Schedule
	correct bool
	rating  int

	errMsg string
}

var confidenceLevels = []sm2.Confidence{sm2.ConfidenceLow, sm2.ConfidenceMedium, sm2.ConfidenceHigh}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)

// New creates a review screen. grader may be nil; typed answers are
// then self-rated without an LLM opinion.
func New(st *store.Store, grader *grading.Service) *ReviewScreen {
	return &ReviewScreen{
		st:    st,
		phase: phaseLoading,
		input:  components.NewTextInput("Type your answer (optional)...", false, 0),
		grader: grader,
	}
}

type queueReadyMsg struct {
	Queue []item.Reviewable
	Err   error
}

type answerGradedMsg struct {
	Eval *grading.AnswerEvaluation
	Err  error
}

type reviewAppliedMsg struct {
	Err error
}

func (r *ReviewScreen) Init() tea.Cmd {
	st := r.st
	return func() tea.Msg {
		queue, err := sess.BuildQueue(context.Background(), st, time.Now(), sess.QueueOptions{})
		return queueReadyMsg{Queue: queue, Err: err}
	}
}

func (r *ReviewScreen) Title() string {
	return "Review"
}

func (r *ReviewScreen) KeyHints() []layout.KeyHint {
	switch r.phase {
	case phasePrompt:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "Esc", Description: "Quit session"},
		}
	case phaseRate:
		return []layout.KeyHint{
			{Key: "0-3", Description: "Rate recall"},
			{Key: "Esc", Description: "Quit session"},
		}
	case phaseAnswer:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Submit"},
		}
	case phaseConfidence:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Confidence"},
			{Key: "Enter", Description: "Confirm"},
		}
	case phaseReveal:
		return []layout.KeyHint{
			{Key: "any key", Description: "Next"},
		}
	}
	return nil
}

func (r *ReviewScreen) current() item.Reviewable {
	if r.idx >= len(r.queue) {
		return nil
	}
	return r.queue[r.idx]
}

func (r *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case queueReadyMsg:
		if msg.Err != nil {
			r.errMsg = msg.Err.Error()
			return r, nil
		}
		r.queue = msg.Queue
		if len(r.queue) == 0 {
			return r, r.finish()
		}
		return r, r.startItem()

	case answerGradedMsg:
		r.grade, r.gradeErr = msg.Eval, msg.Err
		r.phase = phaseRate
		return r, nil

	case reviewAppliedMsg:
		if msg.Err != nil {
			r.errMsg = msg.Err.Error()
		}
		return r, nil

	case tea.KeyMsg:
		return r.handleKey(msg)
	}

	if r.phase == phasePrompt {
		var cmd tea.Cmd
		r.input, cmd = r.input.Update(msg)
		return r, cmd
	}
	return r, nil
}

func (r *ReviewScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch r.phase {
	case phasePrompt:
		if msg.String() == "enter" {
			answer := r.input.Value()
			if answer != "" && r.grader != nil {
				r.phase = phaseGrading
				return r, r.gradeAnswer(r.current().Prompt(), answer)
			}
			r.phase = phaseRate
			return r, nil
		}
		var cmd tea.Cmd
		r.input, cmd = r.input.Update(msg)
		return r, cmd

	case phaseRate:
		switch msg.String() {
		case "0", "1", "2", "3":
			rating := int(msg.String()[0] - '0')
			return r, r.applyRating(rating)
		}

	case phaseAnswer:
		var cmd tea.Cmd
		r.mc, cmd = r.mc.Update(msg)
		if r.mc.Submitted {
			r.phase = phaseConfidence
		}
		return r, cmd

	case phaseConfidence:
		switch msg.String() {
		case "up", "k":
			if r.confidence > 0 {
				r.confidence--
			}
		case "down", "j":
			if r.confidence < len(confidenceLevels)-1 {
				r.confidence++
			}
		case "enter":
			return r, r.applyMCQ()
		}
		return r, nil

	case phaseReveal:
		r.idx++
		if r.idx >= len(r.queue) {
			return r, r.finish()
		}
		return r, r.startItem()
	}
	return r, nil
}

// startItem resets per-item state for the current queue entry.
func (r *ReviewScreen) startItem() tea.Cmd {
	r.grade, r.gradeErr = nil, nil

	switch it := r.current().(type) {
	case item.MCQ:
		r.mc = components.NewMultiChoice(it.Question, it.Options(), it.CorrectIndex())
		r.confidence = 1 // medium
		r.phase = phaseAnswer
		return nil
	default:
		r.input = components.NewTextInput("Type your answer (optional)...", false, 0)
		r.phase = phasePrompt
		return r.input.Init()
	}
}

func (r *ReviewScreen) gradeAnswer(question, answer string) tea.Cmd {
	grader := r.grader
	return func() tea.Msg {
		ev, err := grader.EvaluateAnswer(context.Background(), question, answer)
		return answerGradedMsg{Eval: ev, Err: err}
	}
}

// applyRating runs the engine for a self-rated question and persists.
func (r *ReviewScreen) applyRating(rating int) tea.Cmd {
	q, ok := r.current().(item.Question)
	if !ok {
		return nil
	}

	interval, ease, err := sm2.NextReview(rating, q.Schedule.Interval, q.Schedule.EaseFactor)
	if err != nil {
		r.errMsg = err.Error()
		return nil
	}

	now := time.Now()
	r.before = q.Schedule
	r.after = sm2.Schedule{Interval: interval, EaseFactor: ease, LastReviewed: &now}
	r.rating = rating
	r.correct = rating >= 2
	r.tally.RecordRating(rating, r.after.NextReviewDate())
	r.phase = phaseReveal

	st := r.st
	id := q.ID
	out := store.ReviewOutcome{
		Rating:     &rating,
		Before:     r.before,
		After:      r.after,
		ReviewedAt: now,
	}
	return func() tea.Msg {
		return reviewAppliedMsg{Err: st.Questions().ApplyReview(context.Background(), id, out)}
	}
}

// applyMCQ runs the engine for the answered MCQ and persists.
func (r *ReviewScreen) applyMCQ() tea.Cmd {
	m, ok := r.current().(item.MCQ)
	if !ok {
		return nil
	}

	correct := r.mc.IsCorrect()
	conf := confidenceLevels[r.confidence]

	interval, ease, err := sm2.MCQReview(correct, conf, m.Schedule.Interval, m.Schedule.EaseFactor)
	if err != nil {
		r.errMsg = err.Error()
		return nil
	}

	now := time.Now()
	r.before = m.Schedule
	r.after = sm2.Schedule{Interval: interval, EaseFactor: ease, LastReviewed: &now}
	r.correct = correct
	r.tally.RecordMCQ(correct, r.after.NextReviewDate())
	r.phase = phaseReveal

	st := r.st
	id := m.ID
	out := store.ReviewOutcome{
		Correct:    &correct,
		Confidence: conf,
		Before:     r.before,
		After:      r.after,
		ReviewedAt: now,
	}
	return func() tea.Msg {
		return reviewAppliedMsg{Err: st.MCQs().ApplyReview(context.Background(), id, out)}
	}
}

// finish swaps in the summary screen.
func (r *ReviewScreen) finish() tea.Cmd {
	tally := r.tally
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: summary.New(tally)}
	}
}

func formatScheduleChange(before, after sm2.Schedule) string {
	return fmt.Sprintf("interval %d → %d days, ease %.2f → %.2f",
		before.Interval, after.Interval, before.EaseFactor, after.EaseFactor)
}
