package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/retain/internal/grading"
	"github.com/abhisek/retain/internal/item"
	"github.com/abhisek/retain/internal/llm"
	"github.com/abhisek/retain/internal/sm2"
	"github.com/abhisek/retain/internal/store"
	"github.com/abhisek/retain/internal/workspace"
	"github.com/spf13/cobra"
)

var reviewCmd = &cobra.Command{
	Use:   "review",
	Short: "Start a review session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

var reviewChallengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Review a due coding challenge in your editor",
	Long: `Pick a due challenge, solve it in $EDITOR, and grade the solution.

With an LLM provider configured the solution is evaluated remotely and you can
dispute the grade or refactor and resubmit. The first grade always drives the
schedule. Without a provider the evaluation prompt is copied to the clipboard
and you enter a 0-3 score by hand.`,
	RunE: runChallengeReview,
}

func init() {
	reviewCmd.AddCommand(reviewChallengeCmd)
}

func runChallengeReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	due, err := st.Challenges().Due(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("list due challenges: %w", err)
	}
	if len(due) == 0 {
		fmt.Println("No challenges are due for review today!")
		return nil
	}

	stdin := bufio.NewScanner(os.Stdin)
	challenge, ok := selectChallenge(stdin, due)
	if !ok {
		fmt.Println("No challenge selected.")
		return nil
	}

	ws, err := workspace.Create(".", challenge)
	if err != nil {
		return fmt.Errorf("set up workspace: %w", err)
	}

	if err := ws.OpenInEditor(os.Stdin, os.Stdout); err != nil {
		_ = ws.Cleanup()
		return fmt.Errorf("open editor: %w", err)
	}

	solution, err := ws.ReadSolution()
	if err != nil {
		_ = ws.Cleanup()
		return fmt.Errorf("read solution: %w", err)
	}

	sess := grading.NewSession(challenge.ID)

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		if err := clipboardEvaluation(stdin, challenge, solution, sess); err != nil {
			_ = ws.Cleanup()
			return err
		}
	} else {
		grader := grading.New(provider, grading.DefaultConfig())
		if err := apiEvaluationLoop(ctx, stdin, grader, sess, challenge, ws, solution); err != nil {
			_ = ws.Cleanup()
			return err
		}
	}

	if err := applyChallengeGrade(ctx, st, challenge, sess); err != nil {
		_ = ws.Cleanup()
		return err
	}
	return ws.Cleanup()
}

// selectChallenge shows the due challenges and reads an ID from stdin.
// An empty line picks the first challenge.
func selectChallenge(stdin *bufio.Scanner, due []item.Challenge) (item.Challenge, bool) {
	fmt.Println("Due challenges:")
	for _, c := range due {
		fmt.Printf("  %d: %s [%s]\n", c.ID, c.Title, c.Language)
	}
	fmt.Printf("Challenge ID to review [%d]: ", due[0].ID)

	if !stdin.Scan() {
		return item.Challenge{}, false
	}
	input := strings.TrimSpace(stdin.Text())
	if input == "" {
		return due[0], true
	}

	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil {
		return item.Challenge{}, false
	}
	for _, c := range due {
		if c.ID == id {
			return c, true
		}
	}
	return item.Challenge{}, false
}

// apiEvaluationLoop grades the solution remotely and runs the
// accept/dispute/refactor loop. On API failure it offers the clipboard
// fallback. The session keeps the first grade for scheduling.
func apiEvaluationLoop(
	ctx context.Context,
	stdin *bufio.Scanner,
	grader *grading.Service,
	sess *grading.Session,
	challenge item.Challenge,
	ws *workspace.Workspace,
	solution string,
) error {
	fmt.Println("\nEvaluating solution...")
	ev, err := grader.EvaluateChallenge(ctx, sess, challenge, solution)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Evaluation failed:", err)
		return clipboardEvaluation(stdin, challenge, solution, sess)
	}
	printEvaluation(ev, sess.Iteration)

	for {
		fmt.Print("\n[a]ccept grade, [d]ispute, [r]efactor and resubmit? [a] ")
		action := "a"
		if stdin.Scan() {
			if s := strings.ToLower(strings.TrimSpace(stdin.Text())); s != "" {
				action = s
			}
		}

		switch action {
		case "a", "accept":
			if sess.FirstScore != nil && sess.LastScore != nil && *sess.FirstScore != *sess.LastScore {
				fmt.Printf("The first grade (%.1f) drives the schedule; the latest (%.1f) does not.\n",
					*sess.FirstScore, *sess.LastScore)
			}
			return nil

		case "d", "dispute":
			fmt.Print("Why do you disagree with the evaluation? ")
			if !stdin.Scan() {
				continue
			}
			reason := strings.TrimSpace(stdin.Text())
			if reason == "" {
				continue
			}
			fmt.Println("Re-evaluating...")
			ev, err = grader.Dispute(ctx, sess, reason)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Dispute failed:", err)
				continue
			}
			printEvaluation(ev, sess.Iteration)

		case "r", "refactor":
			if err := ws.OpenInEditor(os.Stdin, os.Stdout); err != nil {
				return fmt.Errorf("open editor: %w", err)
			}
			newSolution, err := ws.ReadSolution()
			if err != nil {
				return fmt.Errorf("read solution: %w", err)
			}
			fmt.Println("Evaluating refactored solution...")
			ev, err = grader.Refactor(ctx, sess, newSolution)
			if err != nil {
				fmt.Fprintln(os.Stderr, "Evaluation failed:", err)
				continue
			}
			printEvaluation(ev, sess.Iteration)
		}
	}
}

// clipboardEvaluation copies the evaluation prompt for use with an
// external assistant and records a manually entered grade.
func clipboardEvaluation(stdin *bufio.Scanner, challenge item.Challenge, solution string, sess *grading.Session) error {
	prompt := grading.ChallengePrompt(challenge, solution)

	fmt.Println("\nEvaluation prompt:")
	fmt.Println(prompt)
	if err := workspace.CopyToClipboard(prompt); err != nil {
		fmt.Fprintln(os.Stderr, "Could not copy to clipboard:", err)
	} else {
		fmt.Println("Prompt copied to clipboard!")
	}

	for {
		fmt.Print("Enter your score for this challenge (0-3): ")
		if !stdin.Scan() {
			return fmt.Errorf("no grade entered")
		}
		score, err := strconv.ParseFloat(strings.TrimSpace(stdin.Text()), 64)
		if err != nil || score < 0 || score > 3 {
			fmt.Println("Please enter a value between 0 and 3.")
			continue
		}
		sess.RecordManual(score)
		return nil
	}
}

// applyChallengeGrade converts the session's first grade to an SM-2
// rating and persists the schedule change.
func applyChallengeGrade(ctx context.Context, st *store.Store, challenge item.Challenge, sess *grading.Session) error {
	rating, err := sess.SM2Rating()
	if err != nil {
		return err
	}

	interval, ease, err := sm2.NextReview(rating, challenge.Schedule.Interval, challenge.Schedule.EaseFactor)
	if err != nil {
		return err
	}

	now := time.Now()
	after := sm2.Schedule{Interval: interval, EaseFactor: ease, LastReviewed: &now}
	out := store.ReviewOutcome{
		Rating:     &rating,
		Before:     challenge.Schedule,
		After:      after,
		ReviewedAt: now,
	}
	if err := st.Challenges().ApplyReview(ctx, challenge.ID, out); err != nil {
		return err
	}

	fmt.Printf("\nChallenge %d reviewed: rating %d, interval %d → %d days, ease %.2f → %.2f.\n",
		challenge.ID, rating, challenge.Schedule.Interval, interval,
		challenge.Schedule.EaseFactor, ease)
	fmt.Printf("Next review: %s\n", after.NextReviewDate().Format("Mon, Jan 2 2006"))
	return nil
}

// printEvaluation shows one evaluation round.
func printEvaluation(ev *grading.Evaluation, iteration int) {
	fmt.Printf("\n── Evaluation (round %d) ──\n", iteration)
	fmt.Printf("Correctness: %.1f/3  Clarity: %.1f/3  Efficiency: %.1f/3\n",
		ev.Correctness, ev.Clarity, ev.Efficiency)
	fmt.Printf("Score: %.1f/3\n", ev.Score)
	if ev.Feedback != "" {
		fmt.Println(ev.Feedback)
	}
}
