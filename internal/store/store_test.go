package store

import (
	"context"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/retain/internal/item"
	"github.com/abhisek/retain/internal/sm2"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "retain.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestQuestionRepo_AddGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	q, err := s.Questions().Add(ctx, item.NewQuestion("What does defer do?", "go,basics"))
	require.NoError(t, err)
	require.NotZero(t, q.ID)

	got, err := s.Questions().Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "What does defer do?", got.Text)
	assert.Equal(t, "go,basics", got.Tags)
	assert.Equal(t, 1, got.Schedule.Interval)
	assert.Equal(t, 2.5, got.Schedule.EaseFactor)
	assert.Nil(t, got.Schedule.LastReviewed)
}

func TestQuestionRepo_GetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Questions().Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestQuestionRepo_UpdateContentOnly(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	q, err := s.Questions().Add(ctx, item.NewQuestion("old", ""))
	require.NoError(t, err)

	q.Text = "new text"
	q.Tags = "edited"
	require.NoError(t, s.Questions().Update(ctx, q))

	got, err := s.Questions().Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, "new text", got.Text)
	assert.Equal(t, 1, got.Schedule.Interval, "update must not touch scheduling fields")
}

func TestQuestionRepo_Delete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	q, err := s.Questions().Add(ctx, item.NewQuestion("bye", ""))
	require.NoError(t, err)
	require.NoError(t, s.Questions().Delete(ctx, q.ID))

	_, err = s.Questions().Get(ctx, q.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Questions().Delete(ctx, q.ID), ErrNotFound)
}

func TestQuestionRepo_DueOrdering(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.June, 15, 10, 0, 0, 0, time.UTC)

	mkReviewed := func(text string, daysAgo, interval int) item.Question {
		q, err := s.Questions().Add(ctx, item.NewQuestion(text, ""))
		require.NoError(t, err)
		last := now.AddDate(0, 0, -daysAgo)
		after := sm2.Schedule{Interval: interval, EaseFactor: 2.5, LastReviewed: &last}
		rating := 2
		require.NoError(t, s.Questions().ApplyReview(ctx, q.ID, ReviewOutcome{
			Rating:     &rating,
			Before:     q.Schedule,
			After:      after,
			ReviewedAt: last,
		}))
		return q
	}

	never, err := s.Questions().Add(ctx, item.NewQuestion("never reviewed", ""))
	require.NoError(t, err)
	slightly := mkReviewed("one day overdue", 3, 2)
	very := mkReviewed("five days overdue", 10, 5)
	_ = mkReviewed("not yet due", 1, 10)

	due, err := s.Questions().Due(ctx, now)
	require.NoError(t, err)
	require.Len(t, due, 3)

	// Never-reviewed (infinite days overdue) first, then by days overdue.
	assert.Equal(t, never.ID, due[0].ID)
	assert.True(t, math.IsInf(due[0].Schedule.DaysOverdue(now), 1))
	assert.Equal(t, very.ID, due[1].ID)
	assert.Equal(t, slightly.ID, due[2].ID)
}

func TestApplyReview_PersistsTripleAndLogs(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	q, err := s.Questions().Add(ctx, item.NewQuestion("q", ""))
	require.NoError(t, err)

	interval, ease, err := sm2.NextReview(3, q.Schedule.Interval, q.Schedule.EaseFactor)
	require.NoError(t, err)
	rating := 3
	after := sm2.Schedule{Interval: interval, EaseFactor: ease, LastReviewed: &now}
	require.NoError(t, s.Questions().ApplyReview(ctx, q.ID, ReviewOutcome{
		Rating:     &rating,
		Before:     q.Schedule,
		After:      after,
		ReviewedAt: now,
	}))

	got, err := s.Questions().Get(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, interval, got.Schedule.Interval)
	assert.Equal(t, ease, got.Schedule.EaseFactor)
	require.NotNil(t, got.Schedule.LastReviewed)
	assert.Equal(t, "2026-06-15", got.Schedule.LastReviewed.Format("2006-01-02"))

	history, err := s.ReviewHistory(ctx, 0)
	require.NoError(t, err)
	require.Len(t, history, 1)
	e := history[0]
	assert.Equal(t, item.KindQuestion, e.ItemKind)
	assert.Equal(t, q.ID, e.ItemID)
	require.NotNil(t, e.Rating)
	assert.Equal(t, 3, *e.Rating)
	assert.Equal(t, 1, e.IntervalBefore)
	assert.Equal(t, interval, e.IntervalAfter)
	assert.NotEmpty(t, e.ID)
}

func TestReviewedItemReadBack(t *testing.T) {
	// last_reviewed is a DATE column, so the driver may hand the value
	// back as a time.Time rather than the stored text. Every read path
	// has to cope once an item has been reviewed.
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.June, 12, 0, 0, 0, 0, time.UTC)

	q, err := s.Questions().Add(ctx, item.NewQuestion("q", ""))
	require.NoError(t, err)
	rating := 2
	require.NoError(t, s.Questions().ApplyReview(ctx, q.ID, ReviewOutcome{
		Rating:     &rating,
		Before:     q.Schedule,
		After:      sm2.Schedule{Interval: 3, EaseFactor: 2.5, LastReviewed: &now},
		ReviewedAt: now,
	}))

	got, err := s.Questions().Get(ctx, q.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Schedule.LastReviewed)
	assert.Equal(t, "2026-06-12", got.Schedule.LastReviewed.Format("2006-01-02"))

	all, err := s.Questions().List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Schedule.LastReviewed)

	due, err := s.Questions().Due(ctx, now.AddDate(0, 0, 3))
	require.NoError(t, err)
	require.Len(t, due, 1)
}

func TestNullDate_ScanForms(t *testing.T) {
	for _, src := range []any{
		"2026-06-12",
		"2026-06-12T00:00:00Z",
		[]byte("2026-06-12"),
		time.Date(2026, time.June, 12, 0, 0, 0, 0, time.UTC),
	} {
		var d nullDate
		require.NoError(t, d.Scan(src), "src %T", src)
		require.NotNil(t, d.Time(), "src %T", src)
		assert.Equal(t, "2026-06-12", d.Time().Format("2006-01-02"), "src %T", src)
	}

	var d nullDate
	require.NoError(t, d.Scan(nil))
	assert.Nil(t, d.Time())
	require.Error(t, d.Scan("junk"))
}

func TestApplyReview_MissingItem(t *testing.T) {
	s := openTestStore(t)
	rating := 1
	err := s.Questions().ApplyReview(context.Background(), 42, ReviewOutcome{
		Rating:     &rating,
		After:      sm2.NewSchedule(),
		ReviewedAt: time.Now(),
	})
	assert.Error(t, err)
}

func TestMCQRepo_RoundTripAndReview(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)

	m, err := s.MCQs().Add(ctx, item.NewMCQ("Which type is comparable?", item.MultipleChoice,
		[4]string{"map", "slice", "array", "func"}, "c",
		[4]string{"maps are not", "slices are not", "arrays of comparable elements are", "funcs are not"}, "go"))
	require.NoError(t, err)

	got, err := s.MCQs().Get(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, item.MultipleChoice, got.QuestionType)
	assert.Equal(t, "c", got.CorrectOption)
	assert.Equal(t, "arrays of comparable elements are", got.ExplanationC)

	interval, ease, err := sm2.MCQReview(false, sm2.ConfidenceHigh, got.Schedule.Interval, got.Schedule.EaseFactor)
	require.NoError(t, err)
	assert.Equal(t, 1, interval)
	assert.Equal(t, 2.2, ease)

	wrong := false
	require.NoError(t, s.MCQs().ApplyReview(ctx, m.ID, ReviewOutcome{
		Correct:    &wrong,
		Confidence: sm2.ConfidenceHigh,
		Before:     got.Schedule,
		After:      sm2.Schedule{Interval: interval, EaseFactor: ease, LastReviewed: &now},
		ReviewedAt: now,
	}))

	history, err := s.ReviewHistory(ctx, 1)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.NotNil(t, history[0].Correct)
	assert.False(t, *history[0].Correct)
	assert.Equal(t, sm2.ConfidenceHigh, history[0].Confidence)
	assert.Nil(t, history[0].Rating)
}

func TestChallengeRepo_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	c, err := s.Challenges().Add(ctx, item.NewChallenge("Rotate an array",
		"Rotate a slice right by k steps.", "[1,2,3], k=1 -> [3,1,2]", item.LangGo, "arrays"))
	require.NoError(t, err)

	got, err := s.Challenges().Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, item.LangGo, got.Language)
	assert.Equal(t, "[1,2,3], k=1 -> [3,1,2]", got.TestCases)

	got.Description = "Rotate a slice right by k steps without allocation."
	require.NoError(t, s.Challenges().Update(ctx, got))

	again, err := s.Challenges().Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Contains(t, again.Description, "without allocation")
}

func TestEventRepo_AppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	repo := s.EventRepo()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "challenge-eval",
		InputTokens: 100, OutputTokens: 40, LatencyMs: 12, Success: true,
		ResponseBody: `{"score":2.5}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock", Purpose: "answer-eval",
		Success: false, ErrorMessage: "rate limited",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "answer-eval", events[0].Purpose, "newest first")

	filtered, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "challenge-eval"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.True(t, filtered[0].Success)

	got, err := repo.GetLLMEvent(ctx, filtered[0].ID)
	require.NoError(t, err)
	assert.Equal(t, `{"score":2.5}`, got.ResponseBody)
}
