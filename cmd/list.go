package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/retain/internal/item"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:       "list [questions|challenges|mcqs]",
	Short:     "List stored items with their review status",
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{"questions", "challenges", "mcqs"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := ""
		if len(args) == 1 {
			kind = args[0]
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		now := time.Now()

		if kind == "" || kind == "questions" {
			questions, err := st.Questions().List(ctx)
			if err != nil {
				return fmt.Errorf("list questions: %w", err)
			}
			printItemTable("Questions", asReviewables(questions), now)
		}
		if kind == "" || kind == "challenges" {
			challenges, err := st.Challenges().List(ctx)
			if err != nil {
				return fmt.Errorf("list challenges: %w", err)
			}
			printItemTable("Challenges", asReviewables(challenges), now)
		}
		if kind == "" || kind == "mcqs" {
			mcqs, err := st.MCQs().List(ctx)
			if err != nil {
				return fmt.Errorf("list MCQs: %w", err)
			}
			printItemTable("MCQs", asReviewables(mcqs), now)
		}

		return nil
	},
}

func asReviewables[T item.Reviewable](items []T) []item.Reviewable {
	out := make([]item.Reviewable, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func printItemTable(title string, items []item.Reviewable, now time.Time) {
	fmt.Println(title)
	fmt.Println(strings.Repeat("─", 92))
	if len(items) == 0 {
		fmt.Println("(none)")
		fmt.Println()
		return
	}

	fmt.Printf("%-5s  %-50s  %4s  %5s  %-10s  %s\n",
		"ID", "Prompt", "Ivl", "Ease", "Next", "Status")
	for _, it := range items {
		sched := it.Sched()
		next := "-"
		if d := sched.NextReviewDate(); !d.IsZero() {
			next = d.Format("2006-01-02")
		}
		fmt.Printf("%-5d  %-50s  %4d  %5.2f  %-10s  %s\n",
			it.ItemID(), clip(it.Prompt(), 50), sched.Interval,
			sched.EaseFactor, next, sched.Status(now))
	}
	fmt.Println()
}

func clip(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
