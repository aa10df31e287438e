// Package session plans a review session: which due items to show, in
// what order, and the running tally shown in the summary.
package session

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/abhisek/retain/internal/item"
	"github.com/abhisek/retain/internal/store"
)

// DefaultQueueLimit caps the number of items in one session.
const DefaultQueueLimit = 20

// QueueOptions controls what goes into the session queue.
type QueueOptions struct {
	// Limit caps the queue length. 0 means DefaultQueueLimit.
	Limit int

	// Tags is a comma-separated filter; an item enters the queue only
	// if it carries one of the tags. Empty means no filter.
	Tags string
}

// BuildQueue merges due questions and MCQs, most overdue first.
// Never-reviewed items sort before everything else. Challenges are
// reviewed through their own editor flow, not the session queue.
func BuildQueue(ctx context.Context, st *store.Store, now time.Time, opts QueueOptions) ([]item.Reviewable, error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultQueueLimit
	}

	questions, err := st.Questions().Due(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("loading due questions: %w", err)
	}
	mcqs, err := st.MCQs().Due(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("loading due mcq questions: %w", err)
	}

	queue := make([]item.Reviewable, 0, len(questions)+len(mcqs))
	for _, q := range questions {
		if tagMatch(q.Tags, opts.Tags) {
			queue = append(queue, q)
		}
	}
	for _, m := range mcqs {
		if tagMatch(m.Tags, opts.Tags) {
			queue = append(queue, m)
		}
	}

	sort.SliceStable(queue, func(i, j int) bool {
		oi := queue[i].Sched().DaysOverdue(now)
		oj := queue[j].Sched().DaysOverdue(now)
		if oi != oj {
			// +Inf (never reviewed) naturally sorts first.
			return oi > oj
		}
		if math.IsInf(oi, 1) || queue[i].Kind() == queue[j].Kind() {
			return queue[i].ItemID() < queue[j].ItemID()
		}
		return queue[i].Kind() < queue[j].Kind()
	})

	if len(queue) > limit {
		queue = queue[:limit]
	}
	return queue, nil
}

func tagMatch(itemTags, filter string) bool {
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
