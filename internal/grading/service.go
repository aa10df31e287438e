package grading

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/abhisek/retain/internal/item"
	"github.com/abhisek/retain/internal/llm"
)

// Service grades submissions through an injected LLM provider.
type Service struct {
	provider llm.Provider
	config   Config
}

// New creates an evaluation Service.
func New(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, config: cfg}
}

// EvaluateChallenge grades a challenge solution, starting the session's
// conversation. Use Dispute and Refactor for follow-up turns.
func (s *Service) EvaluateChallenge(ctx context.Context, sess *Session, c item.Challenge, solution string) (*Evaluation, error) {
	sess.addUser(ChallengePrompt(c, solution))
	return s.converse(ctx, sess)
}

// Dispute submits the learner's disagreement and returns the
// re-evaluation. The first grade on the session is unaffected.
func (s *Service) Dispute(ctx context.Context, sess *Session, reason string) (*Evaluation, error) {
	sess.addUser(disputePrompt(reason))
	return s.converse(ctx, sess)
}

// Refactor submits an updated solution for re-evaluation. The first
// grade on the session is unaffected.
func (s *Service) Refactor(ctx context.Context, sess *Session, solution string) (*Evaluation, error) {
	sess.addUser(refactorPrompt(solution))
	return s.converse(ctx, sess)
}

// converse sends the session's full history and records the grade.
func (s *Service) converse(ctx context.Context, sess *Session) (*Evaluation, error) {
	ctx = llm.WithPurpose(ctx, "challenge-eval")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      challengeSystemPrompt,
		Messages:    sess.Messages,
		Schema:      EvaluationSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("challenge evaluation failed: %w", err)
	}

	var ev Evaluation
	if err := json.Unmarshal(resp.Content, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation response: %w", err)
	}
	ev.Correctness = clampScore(ev.Correctness)
	ev.Clarity = clampScore(ev.Clarity)
	ev.Efficiency = clampScore(ev.Efficiency)
	ev.Score = clampScore(ev.Score)

	sess.addAssistant(string(resp.Content))
	sess.record(ev.Score)

	return &ev, nil
}

// EvaluateAnswer grades a typed answer to a free-text question.
// Single-turn: no session, no disputes.
func (s *Service) EvaluateAnswer(ctx context.Context, question, answer string) (*AnswerEvaluation, error) {
	ctx = llm.WithPurpose(ctx, "answer-eval")

	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      answerSystemPrompt,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: answerPrompt(question, answer)}},
		Schema:      AnswerSchema,
		MaxTokens:   s.config.MaxTokens,
		Temperature: s.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("answer evaluation failed: %w", err)
	}

	var ev AnswerEvaluation
	if err := json.Unmarshal(resp.Content, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse evaluation response: %w", err)
	}
	ev.Accuracy = clampScore(ev.Accuracy)
	ev.Completeness = clampScore(ev.Completeness)
	ev.Clarity = clampScore(ev.Clarity)
	ev.Score = clampScore(ev.Score)

	return &ev, nil
}
