package item

import (
	"fmt"
	"strings"

	"github.com/abhisek/retain/internal/sm2"
)

// Language is the implementation language of a coding challenge. It
// selects the solution file scaffolded into the review workspace.
type Language string

const (
	LangPython     Language = "python"
	LangJavaScript Language = "javascript"
	LangGo         Language = "go"
)

// Challenge is a coding exercise solved in an external editor and graded
// by the remote evaluation service (or by hand).
type Challenge struct {
	ID          int64        `validate:"-"`
	Title       string       `validate:"required,min=1"`
	Description string       `validate:"required,min=1"`
	TestCases   string       `validate:"-"`
	Language    Language     `validate:"required,oneof=python javascript go"`
	Tags        string       `validate:"-"`
	Schedule    sm2.Schedule `validate:"-"`
}

// NewChallenge builds a challenge with a fresh schedule.
func NewChallenge(title, description, testCases string, lang Language, tags string) Challenge {
	return Challenge{
		Title:       strings.TrimSpace(title),
		Description: strings.TrimSpace(description),
		TestCases:   strings.TrimSpace(testCases),
		Language:    lang,
		Tags:        NormalizeTags(tags),
		Schedule:    sm2.NewSchedule(),
	}
}

func (c Challenge) ItemID() int64       { return c.ID }
func (c Challenge) Kind() Kind          { return KindChallenge }
func (c Challenge) Prompt() string      { return c.Title }
func (c Challenge) Sched() sm2.Schedule { return c.Schedule }

// Validate checks authored fields.
func (c Challenge) Validate() error {
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("challenge title cannot be empty")
	}
	if strings.TrimSpace(c.Description) == "" {
		return fmt.Errorf("challenge description cannot be empty")
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid challenge: %w", err)
	}
	return validateAuthoredSchedule(c.Schedule)
}
