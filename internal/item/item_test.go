package item

import (
	"testing"

	"github.com/abhisek/retain/internal/sm2"
)

func TestNewQuestion_FreshSchedule(t *testing.T) {
	q := NewQuestion("  What is a goroutine?  ", " go , concurrency ")
	if q.Text != "What is a goroutine?" {
		t.Errorf("Text = %q", q.Text)
	}
	if q.Tags != "go,concurrency" {
		t.Errorf("Tags = %q", q.Tags)
	}
	if q.Schedule.Interval != 1 || q.Schedule.EaseFactor != 2.5 || q.Schedule.LastReviewed != nil {
		t.Errorf("schedule not fresh: %+v", q.Schedule)
	}
	if err := q.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestQuestion_ValidateRejectsBlankText(t *testing.T) {
	q := NewQuestion("   ", "")
	if err := q.Validate(); err == nil {
		t.Error("expected error for blank question text")
	}
}

func TestQuestion_ValidateAuthoredScheduleBounds(t *testing.T) {
	q := NewQuestion("What is a channel?", "")
	q.Schedule.EaseFactor = 3.5
	if err := q.Validate(); err == nil {
		t.Error("expected error for authored ease above 3.0")
	}
	q.Schedule.EaseFactor = 2.5
	q.Schedule.Interval = 0
	if err := q.Validate(); err == nil {
		t.Error("expected error for interval below 1")
	}
}

func TestChallenge_ValidateLanguage(t *testing.T) {
	c := NewChallenge("Binary search", "Implement binary search.", "", LangGo, "")
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	c.Language = "rust"
	if err := c.Validate(); err == nil {
		t.Error("expected error for unsupported language")
	}
}

func TestMCQ_ValidateMultipleChoiceNeedsFourOptions(t *testing.T) {
	m := NewMCQ("Which keyword starts a goroutine?", MultipleChoice,
		[4]string{"go", "run", "async", "spawn"}, "a", [4]string{}, "go")
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	m.OptionD = ""
	if err := m.Validate(); err == nil {
		t.Error("expected error for missing option d")
	}
}

func TestMCQ_ValidateTrueFalseRules(t *testing.T) {
	m := NewMCQ("A nil map can be read from.", TrueFalse,
		[4]string{"True", "False", "", ""}, "a", [4]string{}, "")
	if err := m.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	m.CorrectOption = "c"
	if err := m.Validate(); err == nil {
		t.Error("expected error for true/false answer outside a/b")
	}

	m.CorrectOption = "a"
	m.OptionC = "Maybe"
	if err := m.Validate(); err == nil {
		t.Error("expected error for true/false with option c")
	}
}

func TestMCQ_OptionsAndCorrectIndex(t *testing.T) {
	m := NewMCQ("Pick b.", MultipleChoice,
		[4]string{"one", "two", "three", "four"}, "b",
		[4]string{"no", "yes", "no", "no"}, "")
	opts := m.Options()
	if len(opts) != 4 || opts[1] != "two" {
		t.Errorf("Options() = %v", opts)
	}
	if m.CorrectIndex() != 1 {
		t.Errorf("CorrectIndex() = %d, want 1", m.CorrectIndex())
	}

	tf := NewMCQ("True?", TrueFalse, [4]string{"True", "False", "", ""}, "b", [4]string{}, "")
	if len(tf.Options()) != 2 {
		t.Errorf("true/false Options() = %v", tf.Options())
	}
}

func TestReviewableRole(t *testing.T) {
	items := []Reviewable{
		NewQuestion("q", ""),
		NewChallenge("t", "d", "", LangPython, ""),
		NewMCQ("m", TrueFalse, [4]string{"True", "False", "", ""}, "a", [4]string{}, ""),
	}
	kinds := []Kind{KindQuestion, KindChallenge, KindMCQ}
	for i, it := range items {
		if it.Kind() != kinds[i] {
			t.Errorf("Kind() = %s, want %s", it.Kind(), kinds[i])
		}
		if it.Sched() != (sm2.Schedule{Interval: 1, EaseFactor: 2.5}) {
			t.Errorf("%s: Sched() = %+v", it.Kind(), it.Sched())
		}
	}
}
