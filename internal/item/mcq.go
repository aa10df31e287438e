package item

import (
	"fmt"
	"strings"

	"github.com/abhisek/retain/internal/sm2"
)

// MCQKind distinguishes four-option multiple choice from true/false.
type MCQKind string

const (
	MultipleChoice MCQKind = "mcq"
	TrueFalse      MCQKind = "true_false"
)

// MCQ is a multiple-choice or true/false question. True/false questions
// carry only options A and B.
type MCQ struct {
	ID            int64        `validate:"-"`
	Question      string       `validate:"required,min=1"`
	QuestionType  MCQKind      `validate:"required,oneof=mcq true_false"`
	OptionA       string       `validate:"required,min=1"`
	OptionB       string       `validate:"required,min=1"`
	OptionC       string       `validate:"-"`
	OptionD       string       `validate:"-"`
	CorrectOption string       `validate:"required,oneof=a b c d"`
	ExplanationA  string       `validate:"-"`
	ExplanationB  string       `validate:"-"`
	ExplanationC  string       `validate:"-"`
	ExplanationD  string       `validate:"-"`
	Tags          string       `validate:"-"`
	Schedule      sm2.Schedule `validate:"-"`
}

// NewMCQ builds an MCQ with a fresh schedule. Option and explanation
// text is trimmed; kind consistency is checked by Validate.
func NewMCQ(question string, kind MCQKind, options [4]string, correct string, explanations [4]string, tags string) MCQ {
	return MCQ{
		Question:      strings.TrimSpace(question),
		QuestionType:  kind,
		OptionA:       strings.TrimSpace(options[0]),
		OptionB:       strings.TrimSpace(options[1]),
		OptionC:       strings.TrimSpace(options[2]),
		OptionD:       strings.TrimSpace(options[3]),
		CorrectOption: strings.ToLower(strings.TrimSpace(correct)),
		ExplanationA:  strings.TrimSpace(explanations[0]),
		ExplanationB:  strings.TrimSpace(explanations[1]),
		ExplanationC:  strings.TrimSpace(explanations[2]),
		ExplanationD:  strings.TrimSpace(explanations[3]),
		Tags:          NormalizeTags(tags),
		Schedule:      sm2.NewSchedule(),
	}
}

func (m MCQ) ItemID() int64       { return m.ID }
func (m MCQ) Kind() Kind          { return KindMCQ }
func (m MCQ) Prompt() string      { return m.Question }
func (m MCQ) Sched() sm2.Schedule { return m.Schedule }

// Options returns the populated option texts in a..d order.
func (m MCQ) Options() []string {
	opts := []string{m.OptionA, m.OptionB}
	if m.QuestionType == MultipleChoice {
		opts = append(opts, m.OptionC, m.OptionD)
	}
	return opts
}

// Explanations returns per-option explanations aligned with Options.
func (m MCQ) Explanations() []string {
	exps := []string{m.ExplanationA, m.ExplanationB}
	if m.QuestionType == MultipleChoice {
		exps = append(exps, m.ExplanationC, m.ExplanationD)
	}
	return exps
}

// CorrectIndex returns the zero-based index of the correct option.
func (m MCQ) CorrectIndex() int {
	return int(m.CorrectOption[0] - 'a')
}

// Validate checks authored fields and kind consistency: true/false has
// only options A/B with the answer among them; multiple choice requires
// all four options.
func (m MCQ) Validate() error {
	if strings.TrimSpace(m.Question) == "" {
		return fmt.Errorf("question cannot be empty")
	}
	if err := validate.Struct(m); err != nil {
		return fmt.Errorf("invalid mcq: %w", err)
	}

	switch m.QuestionType {
	case TrueFalse:
		if m.OptionC != "" || m.OptionD != "" {
			return fmt.Errorf("true/false questions carry only options a and b")
		}
		if m.CorrectOption != "a" && m.CorrectOption != "b" {
			return fmt.Errorf("true/false correct option must be a or b, got %q", m.CorrectOption)
		}
	case MultipleChoice:
		if strings.TrimSpace(m.OptionC) == "" || strings.TrimSpace(m.OptionD) == "" {
			return fmt.Errorf("multiple choice requires all four options")
		}
	}

	return validateAuthoredSchedule(m.Schedule)
}
