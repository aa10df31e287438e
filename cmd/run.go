package cmd

import (
	"fmt"
	"os"

	"github.com/abhisek/retain/internal/app"
	"github.com/abhisek/retain/internal/grading"
	"github.com/abhisek/retain/internal/llm"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	st, err := openStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	// LLM grading is optional — reviews fall back to self-rating.
	var grader *grading.Service
	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo())
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Answer grading will be unavailable.")
	} else {
		grader = grading.New(provider, grading.DefaultConfig())
	}

	return app.Run(st, grader)
}
