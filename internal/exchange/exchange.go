// Package exchange reads and writes the versioned JSON backup format.
// Only authored content travels; scheduling state is reset on import so
// transferred items start fresh.
package exchange

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/retain/internal/item"
	"github.com/abhisek/retain/internal/store"
)

// FormatVersion is the current export document version.
const FormatVersion = "1.0"

// Document is the export payload.
type Document struct {
	Version      string            `json:"version"`
	ExportedAt   string            `json:"exported_at"`
	Questions    []QuestionRecord  `json:"questions"`
	Challenges   []ChallengeRecord `json:"challenges"`
	MCQQuestions []MCQRecord       `json:"mcq_questions"`
}

// QuestionRecord is the content-only wire form of a question.
type QuestionRecord struct {
	QuestionText string `json:"question_text"`
	Tags         string `json:"tags,omitempty"`
}

// ChallengeRecord is the content-only wire form of a challenge.
type ChallengeRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Language    string `json:"language"`
	TestCases   string `json:"testcases,omitempty"`
	Tags        string `json:"tags,omitempty"`
}

// MCQRecord is the content-only wire form of an MCQ. True/false records
// omit options c and d.
type MCQRecord struct {
	Question      string `json:"question"`
	QuestionType  string `json:"question_type"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c,omitempty"`
	OptionD       string `json:"option_d,omitempty"`
	CorrectOption string `json:"correct_option"`
	ExplanationA  string `json:"explanation_a,omitempty"`
	ExplanationB  string `json:"explanation_b,omitempty"`
	ExplanationC  string `json:"explanation_c,omitempty"`
	ExplanationD  string `json:"explanation_d,omitempty"`
	Tags          string `json:"tags,omitempty"`
}

// ExportOptions filters what goes into the document.
type ExportOptions struct {
	// Kind limits the export to one item kind. Empty means all.
	Kind item.Kind

	// Tags is a comma-separated tag filter. An item matches when it
	// carries any of the listed tags. Empty means no filter.
	Tags string
}

// DefaultFileName returns the conventional backup file name for a date.
func DefaultFileName(now time.Time) string {
	return fmt.Sprintf("backup_%s.json", now.Format("2006-01-02"))
}

// Export builds a Document from the store, applying the option filters.
func Export(ctx context.Context, st *store.Store, opts ExportOptions) (*Document, error) {
	doc := &Document{
		Version:      FormatVersion,
		ExportedAt:   time.Now().Format(time.RFC3339),
		Questions:    []QuestionRecord{},
		Challenges:   []ChallengeRecord{},
		MCQQuestions: []MCQRecord{},
	}

	if opts.Kind == "" || opts.Kind == item.KindQuestion {
		questions, err := st.Questions().List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing questions: %w", err)
		}
		for _, q := range questions {
			if !matchesTags(q.Tags, opts.Tags) {
				continue
			}
			doc.Questions = append(doc.Questions, QuestionRecord{QuestionText: q.Text, Tags: q.Tags})
		}
	}

	if opts.Kind == "" || opts.Kind == item.KindChallenge {
		challenges, err := st.Challenges().List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing challenges: %w", err)
		}
		for _, c := range challenges {
			if !matchesTags(c.Tags, opts.Tags) {
				continue
			}
			doc.Challenges = append(doc.Challenges, ChallengeRecord{
				Title:       c.Title,
				Description: c.Description,
				Language:    string(c.Language),
				TestCases:   c.TestCases,
				Tags:        c.Tags,
			})
		}
	}

	if opts.Kind == "" || opts.Kind == item.KindMCQ {
		mcqs, err := st.MCQs().List(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing mcq questions: %w", err)
		}
		for _, m := range mcqs {
			if !matchesTags(m.Tags, opts.Tags) {
				continue
			}
			rec := MCQRecord{
				Question:      m.Question,
				QuestionType:  string(m.QuestionType),
				OptionA:       m.OptionA,
				OptionB:       m.OptionB,
				CorrectOption: m.CorrectOption,
				ExplanationA:  m.ExplanationA,
				ExplanationB:  m.ExplanationB,
				Tags:          m.Tags,
			}
			if m.QuestionType == item.MultipleChoice {
				rec.OptionC = m.OptionC
				rec.OptionD = m.OptionD
				rec.ExplanationC = m.ExplanationC
				rec.ExplanationD = m.ExplanationD
			}
			doc.MCQQuestions = append(doc.MCQQuestions, rec)
		}
	}

	return doc, nil
}

// WriteFile writes the document as indented JSON.
func WriteFile(doc *Document, path string) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding export document: %w", err)
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	return nil
}

// Counts summarizes an import.
type Counts struct {
	Questions  int
	Challenges int
	MCQs       int
	Skipped    int
}

// Total returns the number of imported items.
func (c Counts) Total() int {
	return c.Questions + c.Challenges + c.MCQs
}

// ReadFile loads and validates an export file. The payload is checked
// against the document schema before any record is decoded.
func ReadFile(path string) (*Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading import file: %w", err)
	}

	if err := validateDocument(b); err != nil {
		return nil, err
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decoding import file: %w", err)
	}
	return &doc, nil
}

// Import inserts the document's records, skipping items whose content
// already exists. Every imported item starts with a fresh schedule.
func Import(ctx context.Context, st *store.Store, doc *Document) (Counts, error) {
	var counts Counts

	existingQuestions, err := st.Questions().List(ctx)
	if err != nil {
		return counts, fmt.Errorf("listing questions: %w", err)
	}
	seenQuestions := make(map[string]bool, len(existingQuestions))
	for _, q := range existingQuestions {
		seenQuestions[q.Text] = true
	}

	for _, rec := range doc.Questions {
		q := item.NewQuestion(rec.QuestionText, rec.Tags)
		if err := q.Validate(); err != nil {
			return counts, fmt.Errorf("question %q: %w", truncate(rec.QuestionText), err)
		}
		if seenQuestions[q.Text] {
			counts.Skipped++
			continue
		}
		if _, err := st.Questions().Add(ctx, q); err != nil {
			return counts, fmt.Errorf("importing question: %w", err)
		}
		seenQuestions[q.Text] = true
		counts.Questions++
	}

	existingChallenges, err := st.Challenges().List(ctx)
	if err != nil {
		return counts, fmt.Errorf("listing challenges: %w", err)
	}
	seenChallenges := make(map[string]bool, len(existingChallenges))
	for _, c := range existingChallenges {
		seenChallenges[c.Title] = true
	}

	for _, rec := range doc.Challenges {
		c := item.NewChallenge(rec.Title, rec.Description, rec.TestCases, item.Language(rec.Language), rec.Tags)
		if err := c.Validate(); err != nil {
			return counts, fmt.Errorf("challenge %q: %w", truncate(rec.Title), err)
		}
		if seenChallenges[c.Title] {
			counts.Skipped++
			continue
		}
		if _, err := st.Challenges().Add(ctx, c); err != nil {
			return counts, fmt.Errorf("importing challenge: %w", err)
		}
		seenChallenges[c.Title] = true
		counts.Challenges++
	}

	existingMCQs, err := st.MCQs().List(ctx)
	if err != nil {
		return counts, fmt.Errorf("listing mcq questions: %w", err)
	}
	seenMCQs := make(map[string]bool, len(existingMCQs))
	for _, m := range existingMCQs {
		seenMCQs[m.Question] = true
	}

	for _, rec := range doc.MCQQuestions {
		m := item.NewMCQ(rec.Question, item.MCQKind(rec.QuestionType),
			[4]string{rec.OptionA, rec.OptionB, rec.OptionC, rec.OptionD},
			rec.CorrectOption,
			[4]string{rec.ExplanationA, rec.ExplanationB, rec.ExplanationC, rec.ExplanationD},
			rec.Tags)
		if err := m.Validate(); err != nil {
			return counts, fmt.Errorf("mcq %q: %w", truncate(rec.Question), err)
		}
		if seenMCQs[m.Question] {
			counts.Skipped++
			continue
		}
		if _, err := st.MCQs().Add(ctx, m); err != nil {
			return counts, fmt.Errorf("importing mcq: %w", err)
		}
		seenMCQs[m.Question] = true
		counts.MCQs++
	}

	return counts, nil
}

// ImportFile reads, validates, and imports an export file.
func ImportFile(ctx context.Context, st *store.Store, path string) (Counts, error) {
	doc, err := ReadFile(path)
	if err != nil {
		return Counts{}, err
	}
	return Import(ctx, st, doc)
}

// matchesTags reports whether itemTags carries any of the tags in the
// comma-separated filter. An empty filter matches everything.
func matchesTags(itemTags, filter string) bool {
	if filter == "" {
		return true
	}
	for _, tag := range strings.Split(filter, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" && item.HasTag(itemTags, tag) {
			return true
		}
	}
	return false
}

func truncate(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}
