package grading

// Evaluation is a single structured grade returned by the evaluator.
// Category scores and the overall score are on a 0-3 scale.
type Evaluation struct {
	Correctness float64 `json:"correctness"`
	Clarity     float64 `json:"clarity"`
	Efficiency  float64 `json:"efficiency"`
	Score       float64 `json:"score"`
	Feedback    string  `json:"feedback"`
}

// AnswerEvaluation is the structured grade for a free-text answer.
// Same 0-3 scale, different criteria.
type AnswerEvaluation struct {
	Accuracy     float64 `json:"accuracy"`
	Completeness float64 `json:"completeness"`
	Clarity      float64 `json:"clarity"`
	Score        float64 `json:"score"`
	Feedback     string  `json:"feedback"`
}

// Config controls the evaluator's LLM requests.
type Config struct {
	// MaxTokens is the token budget for the evaluation response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	// Grading wants determinism.
	Temperature float64
}

// DefaultConfig returns the recommended evaluator settings.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   1024,
		Temperature: 0.0,
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 3 {
		return 3
	}
	return v
}
