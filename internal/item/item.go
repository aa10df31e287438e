// Package item defines the three reviewable record kinds — free-text
// questions, coding challenges, and multiple-choice questions — and the
// shared role they play toward the scheduler: exposing an interval, an
// ease factor, and a last-reviewed date.
package item

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/abhisek/retain/internal/sm2"
)

// Kind discriminates the three record kinds in storage and export files.
type Kind string

const (
	KindQuestion  Kind = "question"
	KindChallenge Kind = "challenge"
	KindMCQ       Kind = "mcq"
)

// Reviewable is the role all three item kinds play toward the scheduling
// engine. The engine itself never sees item content.
type Reviewable interface {
	ItemID() int64
	Kind() Kind
	Prompt() string
	Sched() sm2.Schedule
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NormalizeTags trims a comma-separated tag string; empty input stays empty.
func NormalizeTags(tags string) string {
	parts := strings.Split(tags, ",")
	out := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}

// HasTag reports whether a comma-separated tag string contains tag.
func HasTag(tags, tag string) bool {
	for _, p := range strings.Split(tags, ",") {
		if strings.EqualFold(strings.TrimSpace(p), tag) {
			return true
		}
	}
	return false
}
