package cmd

import (
	"fmt"
	"time"

	"github.com/abhisek/retain/internal/exchange"
	"github.com/abhisek/retain/internal/item"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export items to a JSON backup file",
	Long:  "Export item content to a versioned JSON document. Review schedules are not exported; imported items start fresh.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		kindFlag, _ := cmd.Flags().GetString("kind")
		tags, _ := cmd.Flags().GetString("tags")

		var kind item.Kind
		switch kindFlag {
		case "":
		case "question":
			kind = item.KindQuestion
		case "challenge":
			kind = item.KindChallenge
		case "mcq":
			kind = item.KindMCQ
		default:
			return fmt.Errorf("unknown kind %q: use question, challenge, or mcq", kindFlag)
		}

		path := exchange.DefaultFileName(time.Now())
		if len(args) == 1 {
			path = args[0]
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		doc, err := exchange.Export(cmd.Context(), st, exchange.ExportOptions{Kind: kind, Tags: tags})
		if err != nil {
			return err
		}
		if err := exchange.WriteFile(doc, path); err != nil {
			return err
		}

		fmt.Printf("Exported %d questions, %d challenges, %d MCQs to %s\n",
			len(doc.Questions), len(doc.Challenges), len(doc.MCQQuestions), path)
		return nil
	},
}

func init() {
	exportCmd.Flags().String("kind", "", "Export only one kind: question, challenge, or mcq")
	exportCmd.Flags().String("tags", "", "Export only items matching these comma-separated tags")
}
