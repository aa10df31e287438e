// Package sm2 implements the spaced repetition scheduling core: an SM-2
// variant extended with a confidence-weighted update for multiple-choice
// review, plus the due/overdue queries used to rank items.
//
// Every function is pure. Persistence of the resulting (interval, ease
// factor, last reviewed) triple belongs to the store.
package sm2

import (
	"fmt"
	"math"
)

const (
	// InitialInterval is the review interval, in days, assigned at item creation.
	InitialInterval = 1

	// InitialEaseFactor is the ease factor assigned at item creation.
	InitialEaseFactor = 2.5

	// MinEaseFactor is the floor the ease factor never drops below.
	MinEaseFactor = 1.3

	// MaxEaseFactor bounds user-authored ease factors at creation and import.
	// Review-time updates are allowed to drift above it.
	MaxEaseFactor = 3.0

	// forgotPenalty is subtracted from the ease factor on a rating of 0.
	forgotPenalty = 0.2

	// misconceptionPenalty is the extra ease reduction for a wrong answer
	// given with high confidence. A confidently held misconception needs
	// earlier re-exposure than an honest "I don't know".
	misconceptionPenalty = 0.1
)

// Rating values accepted by NextReview.
const (
	RatingForgot = 0
	RatingHard   = 1
	RatingGood   = 2
	RatingEasy   = 3
)

// Confidence is the learner's self-reported certainty on an MCQ answer.
type Confidence string

const (
	ConfidenceLow    Confidence = "low"
	ConfidenceMedium Confidence = "medium"
	ConfidenceHigh   Confidence = "high"
)

// InvalidRatingError reports a rating outside [0, 3]. Callers should
// re-prompt rather than retry the computation.
type InvalidRatingError struct {
	Rating int
}

func (e *InvalidRatingError) Error() string {
	return fmt.Sprintf("rating must be between 0 (forgot) and 3 (easy recall), got %d", e.Rating)
}

// InvalidConfidenceError reports a confidence level outside {low, medium, high}.
type InvalidConfidenceError struct {
	Confidence Confidence
}

func (e *InvalidConfidenceError) Error() string {
	return fmt.Sprintf("confidence level must be low, medium, or high, got %q", e.Confidence)
}

// NextReview applies the SM-2 update rule to a rating and the item's
// current interval and ease factor, returning the new interval and ease
// factor. Ratings: 0 forgot, 1 hard, 2 good, 3 easy.
//
// A rating of 0 resets the interval to one day and drops the ease factor
// by 0.2, clamped to MinEaseFactor. Passing ratings adjust the ease
// factor by the standard SM-2 formula, clamped to the same floor, and
// grow the interval by the new ease factor. There is no upper clamp: an item
// reviewed repeatedly at rating 3 may drift above MaxEaseFactor.
func NextReview(rating, currentInterval int, currentEaseFactor float64) (int, float64, error) {
	if rating < RatingForgot || rating > RatingEasy {
		return 0, 0, &InvalidRatingError{Rating: rating}
	}

	if rating == RatingForgot {
		ease := math.Max(MinEaseFactor, currentEaseFactor-forgotPenalty)
		return 1, round2(ease), nil
	}

	adjustment := 0.1 - float64(3-rating)*(0.08+float64(3-rating)*0.02)
	ease := math.Max(MinEaseFactor, currentEaseFactor+adjustment)
	interval := scaleInterval(currentInterval, ease)
	return interval, round2(ease), nil
}

// MCQReview computes the next review for a multiple-choice or true/false
// answer. Correctness and confidence map onto a synthetic SM-2 rating
// (correct high=3, medium=2, low=1; incorrect=0), with two refinements:
//
//   - Correct answers at low or medium confidence grow the ease factor by
//     a flat +0.05 or +0.10 instead of the standard formula, so certainty
//     is rewarded proportionally and a lucky guess grows slowly.
//   - An incorrect answer at high confidence takes the standard rating-0
//     update and then an extra misconception penalty, re-clamped to the
//     MinEaseFactor floor.
func MCQReview(isCorrect bool, confidence Confidence, currentInterval int, currentEaseFactor float64) (int, float64, error) {
	switch confidence {
	case ConfidenceLow, ConfidenceMedium, ConfidenceHigh:
	default:
		return 0, 0, &InvalidConfidenceError{Confidence: confidence}
	}

	if !isCorrect {
		interval, ease, err := NextReview(RatingForgot, currentInterval, currentEaseFactor)
		if err != nil {
			return 0, 0, err
		}
		if confidence == ConfidenceHigh {
			ease = math.Max(MinEaseFactor, ease-misconceptionPenalty)
		}
		return interval, round2(ease), nil
	}

	var ease float64
	switch confidence {
	case ConfidenceHigh:
		return NextReview(RatingEasy, currentInterval, currentEaseFactor)
	case ConfidenceMedium:
		ease = currentEaseFactor + 0.10
	case ConfidenceLow:
		ease = currentEaseFactor + 0.05
	}

	interval := scaleInterval(currentInterval, ease)
	return interval, round2(ease), nil
}

// scaleInterval grows an interval by the ease factor, never below one day.
func scaleInterval(interval int, ease float64) int {
	next := int(math.Round(float64(interval) * ease))
	if next < 1 {
		return 1
	}
	return next
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
