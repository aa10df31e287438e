package grading

import "github.com/abhisek/retain/internal/llm"

// EvaluationSchema defines the JSON schema for challenge evaluation responses.
var EvaluationSchema = &llm.Schema{
	Name:        "challenge-evaluation",
	Description: "Structured grade for a coding challenge solution",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"correctness": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     3,
				"description": "Does the solution produce correct results and handle edge cases? 0-3.",
			},
			"clarity": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     3,
				"description": "Is the code readable and well-structured? 0-3.",
			},
			"efficiency": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     3,
				"description": "Is the solution optimized? Consider time/space complexity. 0-3.",
			},
			"score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     3,
				"description": "Overall score: (correctness + clarity + efficiency) / 3.",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Constructive feedback: per-criterion reasoning plus concrete improvement suggestions.",
			},
		},
		"required":             []any{"correctness", "clarity", "efficiency", "score", "feedback"},
		"additionalProperties": false,
	},
}

// AnswerSchema defines the JSON schema for free-text answer evaluation responses.
var AnswerSchema = &llm.Schema{
	Name:        "answer-evaluation",
	Description: "Structured grade for a free-text answer to a study question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"accuracy": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     3,
				"description": "Is the answer factually correct? 0-3.",
			},
			"completeness": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     3,
				"description": "Does the answer cover the essential points? 0-3.",
			},
			"clarity": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     3,
				"description": "Is the answer clearly expressed? 0-3.",
			},
			"score": map[string]any{
				"type":        "number",
				"minimum":     0,
				"maximum":     3,
				"description": "Overall score: (accuracy + completeness + clarity) / 3.",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Short constructive feedback on the answer.",
			},
		},
		"required":             []any{"accuracy", "completeness", "clarity", "score", "feedback"},
		"additionalProperties": false,
	},
}
