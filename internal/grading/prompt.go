package grading

import (
	"fmt"
	"strings"

	"github.com/abhisek/retain/internal/item"
)

const challengeSystemPrompt = `You are an expert code evaluator for a spaced repetition learning system. Your role is to evaluate coding challenge solutions objectively and constructively.

For each solution, evaluate based on:
1. Correctness (0-3): Does the solution produce correct results? Does it handle edge cases?
2. Clarity (0-3): Is the code readable, well-structured, and properly documented?
3. Efficiency (0-3): Is the solution optimized? What is the time/space complexity?

The overall score is (correctness + clarity + efficiency) / 3. Grade honestly: a working but naive solution should not score the same as an optimal one. Keep feedback specific and actionable.`

const answerSystemPrompt = `You are an evaluator for a spaced repetition learning system. You grade free-text answers to study questions objectively.

For each answer, evaluate based on:
1. Accuracy (0-3): Is the answer factually correct?
2. Completeness (0-3): Does it cover the essential points?
3. Clarity (0-3): Is it clearly expressed?

The overall score is (accuracy + completeness + clarity) / 3. A short answer that nails the essentials deserves a high score; length is not a criterion.`

// ChallengePrompt builds the user message asking for an evaluation of a
// challenge solution. Also used verbatim as the clipboard fallback text
// when no LLM provider is configured.
func ChallengePrompt(c item.Challenge, solution string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Please evaluate my solution for the following challenge.\n\n")
	fmt.Fprintf(&b, "Challenge: %s\n", c.Title)
	fmt.Fprintf(&b, "Language: %s\n", c.Language)
	fmt.Fprintf(&b, "Description:\n%s\n", c.Description)
	if c.TestCases != "" {
		fmt.Fprintf(&b, "\nTest cases:\n%s\n", c.TestCases)
	}
	fmt.Fprintf(&b, "\nCriteria: Correctness (0-3), Clarity (0-3), Efficiency (0-3); Score = average.\n")
	fmt.Fprintf(&b, "\nMy solution:\n\n%s\n", solution)

	return b.String()
}

// disputePrompt frames the learner's disagreement as a follow-up turn.
func disputePrompt(reason string) string {
	return fmt.Sprintf(
		"I respectfully disagree with your evaluation. Here is my reasoning:\n\n%s\n\nPlease reconsider your evaluation based on this feedback.",
		reason)
}

// refactorPrompt frames a resubmission after feedback.
func refactorPrompt(solution string) string {
	return fmt.Sprintf(
		"I have refactored my solution based on your feedback. Here is my updated code:\n\n%s\n\nPlease re-evaluate this improved solution.",
		solution)
}

// answerPrompt builds the user message for grading a free-text answer.
func answerPrompt(question, answer string) string {
	var b strings.Builder

	b.WriteString("Please evaluate my answer to the following question.\n\n")
	fmt.Fprintf(&b, "Question:\n%s\n", question)
	fmt.Fprintf(&b, "\nMy answer:\n%s\n", answer)
	b.WriteString("\nCriteria: Accuracy (0-3), Completeness (0-3), Clarity (0-3); Score = average.\n")

	return b.String()
}
