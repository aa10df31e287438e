package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/retain/internal/item"
	"github.com/abhisek/retain/internal/sm2"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection and review statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		now := time.Now()

		questions, err := st.Questions().List(ctx)
		if err != nil {
			return fmt.Errorf("list questions: %w", err)
		}
		challenges, err := st.Challenges().List(ctx)
		if err != nil {
			return fmt.Errorf("list challenges: %w", err)
		}
		mcqs, err := st.MCQs().List(ctx)
		if err != nil {
			return fmt.Errorf("list MCQs: %w", err)
		}

		fmt.Printf("%-12s  %6s  %5s  %10s  %9s\n", "Kind", "Total", "Due", "Avg Ease", "Avg Ivl")
		fmt.Println(strings.Repeat("─", 50))
		printKindStats("Questions", schedules(questions), now)
		printKindStats("Challenges", schedules(challenges), now)
		printKindStats("MCQs", schedules(mcqs), now)
		fmt.Println(strings.Repeat("─", 50))
		printKindStats("TOTAL", concat(schedules(questions), schedules(challenges), schedules(mcqs)), now)

		return nil
	},
}

func schedules[T item.Reviewable](items []T) []sm2.Schedule {
	out := make([]sm2.Schedule, len(items))
	for i, it := range items {
		out[i] = it.Sched()
	}
	return out
}

func concat(groups ...[]sm2.Schedule) []sm2.Schedule {
	var out []sm2.Schedule
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

func printKindStats(label string, scheds []sm2.Schedule, now time.Time) {
	if len(scheds) == 0 {
		fmt.Printf("%-12s  %6d  %5d  %10s  %9s\n", label, 0, 0, "-", "-")
		return
	}

	var due int
	var easeSum, intervalSum float64
	for _, s := range scheds {
		if s.IsDue(now) {
			due++
		}
		easeSum += s.EaseFactor
		intervalSum += float64(s.Interval)
	}
	n := float64(len(scheds))
	fmt.Printf("%-12s  %6d  %5d  %10.2f  %8.1fd\n",
		label, len(scheds), due, easeSum/n, intervalSum/n)
}