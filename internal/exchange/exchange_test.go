package exchange

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/retain/internal/item"
	"github.com/abhisek/retain/internal/sm2"
	"github.com/abhisek/retain/internal/store"
)

func openTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "retain.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func seed(t *testing.T, s *store.Store) {
	t.Helper()
	ctx := context.Background()
	if _, err := s.Questions().Add(ctx, item.NewQuestion("What does defer do?", "go")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Questions().Add(ctx, item.NewQuestion("What is a goroutine?", "go,concurrency")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Challenges().Add(ctx, item.NewChallenge("Rotate an array", "Rotate right by k.", "", item.LangPython, "arrays")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.MCQs().Add(ctx, item.NewMCQ("Slices are comparable.", item.TrueFalse,
		[4]string{"True", "False", "", ""}, "b",
		[4]string{"", "Slices only compare to nil.", "", ""}, "go")); err != nil {
		t.Fatal(err)
	}
}

func TestExport_All(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)

	doc, err := Export(context.Background(), s, ExportOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Version != FormatVersion {
		t.Fatalf("expected version %s, got %s", FormatVersion, doc.Version)
	}
	if len(doc.Questions) != 2 || len(doc.Challenges) != 1 || len(doc.MCQQuestions) != 1 {
		t.Fatalf("unexpected counts: %d/%d/%d", len(doc.Questions), len(doc.Challenges), len(doc.MCQQuestions))
	}
	if doc.MCQQuestions[0].OptionC != "" {
		t.Fatal("true/false export must omit option c")
	}
}

func TestExport_KindFilter(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)

	doc, err := Export(context.Background(), s, ExportOptions{Kind: item.KindChallenge})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Questions) != 0 || len(doc.MCQQuestions) != 0 {
		t.Fatal("kind filter leaked other kinds")
	}
	if len(doc.Challenges) != 1 {
		t.Fatalf("expected 1 challenge, got %d", len(doc.Challenges))
	}
}

func TestExport_TagFilter(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)

	doc, err := Export(context.Background(), s, ExportOptions{Tags: "concurrency"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(doc.Questions))
	}
	if doc.Questions[0].QuestionText != "What is a goroutine?" {
		t.Fatalf("wrong question exported: %s", doc.Questions[0].QuestionText)
	}
	if len(doc.Challenges) != 0 || len(doc.MCQQuestions) != 0 {
		t.Fatal("tag filter leaked unmatched items")
	}
}

func TestRoundTrip_SchedulingReset(t *testing.T) {
	src := openTestStore(t)
	ctx := context.Background()

	q, err := src.Questions().Add(ctx, item.NewQuestion("Reviewed question", ""))
	if err != nil {
		t.Fatal(err)
	}
	now := time.Now()
	rating := 3
	if err := src.Questions().ApplyReview(ctx, q.ID, store.ReviewOutcome{
		Rating:     &rating,
		Before:     q.Schedule,
		After:      sm2.Schedule{Interval: 12, EaseFactor: 2.7, LastReviewed: &now},
		ReviewedAt: now,
	}); err != nil {
		t.Fatal(err)
	}

	doc, err := Export(ctx, src, ExportOptions{})
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "backup.json")
	if err := WriteFile(doc, path); err != nil {
		t.Fatal(err)
	}

	dst := openTestStore(t)
	counts, err := ImportFile(ctx, dst, path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.Questions != 1 {
		t.Fatalf("expected 1 imported question, got %d", counts.Questions)
	}

	imported, err := dst.Questions().List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	sched := imported[0].Schedule
	if sched.Interval != 1 || sched.EaseFactor != 2.5 || sched.LastReviewed != nil {
		t.Fatalf("schedule not reset on import: %+v", sched)
	}
}

func TestImport_SkipsDuplicates(t *testing.T) {
	s := openTestStore(t)
	seed(t, s)
	ctx := context.Background()

	doc, err := Export(ctx, s, ExportOptions{})
	if err != nil {
		t.Fatal(err)
	}

	// Importing into the same store: everything already exists.
	counts, err := Import(ctx, s, doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.Total() != 0 {
		t.Fatalf("expected 0 imports, got %d", counts.Total())
	}
	if counts.Skipped != 4 {
		t.Fatalf("expected 4 skipped, got %d", counts.Skipped)
	}
}

func TestImport_DuplicateWithinDocument(t *testing.T) {
	s := openTestStore(t)
	doc := &Document{
		Version: FormatVersion,
		Questions: []QuestionRecord{
			{QuestionText: "Same text"},
			{QuestionText: "Same text"},
		},
	}

	counts, err := Import(context.Background(), s, doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if counts.Questions != 1 || counts.Skipped != 1 {
		t.Fatalf("expected 1 imported / 1 skipped, got %d/%d", counts.Questions, counts.Skipped)
	}
}

func TestReadFile_RejectsMalformedPayload(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		body string
	}{
		{"not json", "{nope"},
		{"missing version", `{"questions": []}`},
		{"bad language", `{"version":"1.0","challenges":[{"title":"t","description":"d","language":"rust"}]}`},
		{"bad correct option", `{"version":"1.0","mcq_questions":[{"question":"q","question_type":"mcq","option_a":"a","option_b":"b","correct_option":"e"}]}`},
	}
	for _, tc := range cases {
		path := filepath.Join(dir, strings.ReplaceAll(tc.name, " ", "_")+".json")
		if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := ReadFile(path); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}

func TestReadFile_MissingFile(t *testing.T) {
	if _, err := ReadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImport_InvalidRecordFails(t *testing.T) {
	s := openTestStore(t)
	doc := &Document{
		Version: FormatVersion,
		MCQQuestions: []MCQRecord{{
			Question:      "True/false with 4 options",
			QuestionType:  "true_false",
			OptionA:       "True",
			OptionB:       "False",
			OptionC:       "Maybe",
			CorrectOption: "a",
		}},
	}
	if _, err := Import(context.Background(), s, doc); err == nil {
		t.Fatal("expected item validation error")
	}
}

func TestDefaultFileName(t *testing.T) {
	now := time.Date(2026, time.March, 5, 14, 0, 0, 0, time.UTC)
	if got := DefaultFileName(now); got != "backup_2026-03-05.json" {
		t.Fatalf("unexpected file name: %s", got)
	}
}
