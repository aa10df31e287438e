package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:       "delete <questions|challenges|mcqs> <id>",
	Short:     "Delete an item and its review history",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{"questions", "challenges", "mcqs"},
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := args[0]
		id, err := parseID(args[1])
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Printf("Delete %s %d? [y/N] ", strings.TrimSuffix(kind, "s"), id)
			scanner := bufio.NewScanner(os.Stdin)
			if !scanner.Scan() {
				return nil
			}
			answer := strings.ToLower(strings.TrimSpace(scanner.Text()))
			if answer != "y" && answer != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		switch kind {
		case "questions":
			err = st.Questions().Delete(ctx, id)
		case "challenges":
			err = st.Challenges().Delete(ctx, id)
		case "mcqs":
			err = st.MCQs().Delete(ctx, id)
		default:
			return fmt.Errorf("unknown kind %q: use questions, challenges, or mcqs", kind)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Deleted %s %d.\n", strings.TrimSuffix(kind, "s"), id)
		return nil
	},
}

func init() {
	deleteCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
