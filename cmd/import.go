package cmd

import (
	"fmt"

	"github.com/abhisek/retain/internal/exchange"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import items from a JSON backup file",
	Long:  "Import item content from a versioned JSON document. Imported items get a fresh review schedule; exact-text duplicates are skipped.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		counts, err := exchange.ImportFile(cmd.Context(), st, args[0])
		if err != nil {
			return err
		}

		fmt.Printf("Imported %d items (%d questions, %d challenges, %d MCQs), skipped %d duplicates.\n",
			counts.Total(), counts.Questions, counts.Challenges, counts.MCQs, counts.Skipped)
		return nil
	},
}
