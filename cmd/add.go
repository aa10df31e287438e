package cmd

import (
	"fmt"

	"github.com/abhisek/retain/internal/item"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a question, challenge, or MCQ",
}

var addQuestionCmd = &cobra.Command{
	Use:   "question",
	Short: "Add a free-text study question",
	RunE: func(cmd *cobra.Command, args []string) error {
		text, _ := cmd.Flags().GetString("text")
		tags, _ := cmd.Flags().GetString("tags")

		q := item.NewQuestion(text, tags)
		if err := q.Validate(); err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		saved, err := st.Questions().Add(cmd.Context(), q)
		if err != nil {
			return err
		}
		fmt.Printf("Added question %d.\n", saved.ID)
		return nil
	},
}

var addChallengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Add a coding challenge",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		description, _ := cmd.Flags().GetString("description")
		language, _ := cmd.Flags().GetString("language")
		testcases, _ := cmd.Flags().GetString("testcases")
		tags, _ := cmd.Flags().GetString("tags")

		c := item.NewChallenge(title, description, testcases, item.Language(language), tags)
		if err := c.Validate(); err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		saved, err := st.Challenges().Add(cmd.Context(), c)
		if err != nil {
			return err
		}
		fmt.Printf("Added challenge %d: %s\n", saved.ID, saved.Title)
		return nil
	},
}

var addMCQCmd = &cobra.Command{
	Use:   "mcq",
	Short: "Add a multiple-choice or true/false question",
	RunE: func(cmd *cobra.Command, args []string) error {
		question, _ := cmd.Flags().GetString("question")
		kind, _ := cmd.Flags().GetString("type")
		correct, _ := cmd.Flags().GetString("correct")
		tags, _ := cmd.Flags().GetString("tags")

		var options, explanations [4]string
		for i, letter := range []string{"a", "b", "c", "d"} {
			options[i], _ = cmd.Flags().GetString("option-" + letter)
			explanations[i], _ = cmd.Flags().GetString("explanation-" + letter)
		}

		// True/false questions default to True/False options.
		if item.MCQKind(kind) == item.TrueFalse && options[0] == "" && options[1] == "" {
			options[0], options[1] = "True", "False"
		}

		m := item.NewMCQ(question, item.MCQKind(kind), options, correct, explanations, tags)
		if err := m.Validate(); err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		saved, err := st.MCQs().Add(cmd.Context(), m)
		if err != nil {
			return err
		}
		fmt.Printf("Added MCQ %d.\n", saved.ID)
		return nil
	},
}

func init() {
	addQuestionCmd.Flags().String("text", "", "Question text (required)")
	addQuestionCmd.Flags().String("tags", "", "Comma-separated tags")
	_ = addQuestionCmd.MarkFlagRequired("text")

	addChallengeCmd.Flags().String("title", "", "Challenge title (required)")
	addChallengeCmd.Flags().String("description", "", "Challenge description (required)")
	addChallengeCmd.Flags().String("language", "python", "Implementation language: python, javascript, or go")
	addChallengeCmd.Flags().String("testcases", "", "Test cases (optional)")
	addChallengeCmd.Flags().String("tags", "", "Comma-separated tags")
	_ = addChallengeCmd.MarkFlagRequired("title")
	_ = addChallengeCmd.MarkFlagRequired("description")

	addMCQCmd.Flags().String("question", "", "Question text (required)")
	addMCQCmd.Flags().String("type", "mcq", "Question type: mcq or true_false")
	addMCQCmd.Flags().String("correct", "", "Correct option letter: a, b, c, or d (required)")
	addMCQCmd.Flags().String("tags", "", "Comma-separated tags")
	for _, letter := range []string{"a", "b", "c", "d"} {
		addMCQCmd.Flags().String("option-"+letter, "", "Option "+letter)
		addMCQCmd.Flags().String("explanation-"+letter, "", "Explanation for option "+letter)
	}
	_ = addMCQCmd.MarkFlagRequired("question")
	_ = addMCQCmd.MarkFlagRequired("correct")

	addCmd.AddCommand(addQuestionCmd)
	addCmd.AddCommand(addChallengeCmd)
	addCmd.AddCommand(addMCQCmd)
}
