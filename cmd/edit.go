package cmd

import (
	"fmt"
	"strconv"

	"github.com/abhisek/retain/internal/item"
	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit an existing item's content",
	Long:  "Edit content fields of a stored item. Only flags you set are changed; the review schedule is never touched.",
}

var editQuestionCmd = &cobra.Command{
	Use:   "question <id>",
	Short: "Edit a question",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		q, err := st.Questions().Get(ctx, id)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("text") {
			q.Text, _ = cmd.Flags().GetString("text")
		}
		if cmd.Flags().Changed("tags") {
			tags, _ := cmd.Flags().GetString("tags")
			q.Tags = item.NormalizeTags(tags)
		}

		if err := q.Validate(); err != nil {
			return err
		}
		if err := st.Questions().Update(ctx, q); err != nil {
			return err
		}
		fmt.Printf("Updated question %d.\n", id)
		return nil
	},
}

var editChallengeCmd = &cobra.Command{
	Use:   "challenge <id>",
	Short: "Edit a challenge",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		c, err := st.Challenges().Get(ctx, id)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("title") {
			c.Title, _ = cmd.Flags().GetString("title")
		}
		if cmd.Flags().Changed("description") {
			c.Description, _ = cmd.Flags().GetString("description")
		}
		if cmd.Flags().Changed("language") {
			lang, _ := cmd.Flags().GetString("language")
			c.Language = item.Language(lang)
		}
		if cmd.Flags().Changed("testcases") {
			c.TestCases, _ = cmd.Flags().GetString("testcases")
		}
		if cmd.Flags().Changed("tags") {
			tags, _ := cmd.Flags().GetString("tags")
			c.Tags = item.NormalizeTags(tags)
		}

		if err := c.Validate(); err != nil {
			return err
		}
		if err := st.Challenges().Update(ctx, c); err != nil {
			return err
		}
		fmt.Printf("Updated challenge %d.\n", id)
		return nil
	},
}

var editMCQCmd = &cobra.Command{
	Use:   "mcq <id>",
	Short: "Edit an MCQ",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		ctx := cmd.Context()
		m, err := st.MCQs().Get(ctx, id)
		if err != nil {
			return err
		}

		if cmd.Flags().Changed("question") {
			m.Question, _ = cmd.Flags().GetString("question")
		}
		if cmd.Flags().Changed("correct") {
			m.CorrectOption, _ = cmd.Flags().GetString("correct")
		}
		if cmd.Flags().Changed("tags") {
			tags, _ := cmd.Flags().GetString("tags")
			m.Tags = item.NormalizeTags(tags)
		}
		options := []*string{&m.OptionA, &m.OptionB, &m.OptionC, &m.OptionD}
		explanations := []*string{&m.ExplanationA, &m.ExplanationB, &m.ExplanationC, &m.ExplanationD}
		for i, letter := range []string{"a", "b", "c", "d"} {
			if cmd.Flags().Changed("option-" + letter) {
				*options[i], _ = cmd.Flags().GetString("option-" + letter)
			}
			if cmd.Flags().Changed("explanation-" + letter) {
				*explanations[i], _ = cmd.Flags().GetString("explanation-" + letter)
			}
		}

		if err := m.Validate(); err != nil {
			return err
		}
		if err := st.MCQs().Update(ctx, m); err != nil {
			return err
		}
		fmt.Printf("Updated MCQ %d.\n", id)
		return nil
	},
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid ID %q: %w", arg, err)
	}
	return id, nil
}

func init() {
	editQuestionCmd.Flags().String("text", "", "New question text")
	editQuestionCmd.Flags().String("tags", "", "New comma-separated tags")

	editChallengeCmd.Flags().String("title", "", "New title")
	editChallengeCmd.Flags().String("description", "", "New description")
	editChallengeCmd.Flags().String("language", "", "New language: python, javascript, or go")
	editChallengeCmd.Flags().String("testcases", "", "New test cases")
	editChallengeCmd.Flags().String("tags", "", "New comma-separated tags")

	editMCQCmd.Flags().String("question", "", "New question text")
	editMCQCmd.Flags().String("correct", "", "New correct option letter")
	editMCQCmd.Flags().String("tags", "", "New comma-separated tags")
	for _, letter := range []string{"a", "b", "c", "d"} {
		editMCQCmd.Flags().String("option-"+letter, "", "New option "+letter)
		editMCQCmd.Flags().String("explanation-"+letter, "", "New explanation for option "+letter)
	}

	editCmd.AddCommand(editQuestionCmd)
	editCmd.AddCommand(editChallengeCmd)
	editCmd.AddCommand(editMCQCmd)
}
