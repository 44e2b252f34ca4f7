// Package review implements the exercise selection and scheduling engine:
// eligibility filtering over attempt history, the daily limit gate, the
// flip-card session state machine and the result aggregator.
package review

import (
	"math/rand"
	"time"

	"github.com/mvales/lingolog/internal/models"
)

const day = 24 * time.Hour

// NotRememberedCount returns how many of the attempts were judged as not
// remembered. Unjudged attempts do not count.
func NotRememberedCount(attempts []models.Attempt) int {
	n := 0
	for _, a := range attempts {
		if a.Remembered != nil && !*a.Remembered {
			n++
		}
	}
	return n
}

// LastAttempt returns the most recent attempt by timestamp, or nil when
// the exercise was never attempted.
func LastAttempt(attempts []models.Attempt) *models.Attempt {
	var last *models.Attempt
	for i := range attempts {
		if last == nil || attempts[i].AttemptedAt.After(last.AttemptedAt) {
			last = &attempts[i]
		}
	}
	return last
}

// Eligible is the single eligibility predicate shared by SelectBatch and
// CountEligible so the two can never drift apart.
//
// Constraint precedence: the not-remembered count filter runs first, then
// the recency filter. A never-attempted exercise passes the recency filter
// only when the not-remembered count filter is inactive: asking for
// previously-failed items implies the exercise must have been attempted,
// while a pure recency filter favors untested material.
func Eligible(ex models.ExerciseWithAttempts, params models.FilterParams, now time.Time) bool {
	if ex.IsCompleted {
		return false
	}

	last := LastAttempt(ex.Attempts)

	if params.ExcludeRemembered && last != nil && last.Remembered != nil && *last.Remembered {
		return false
	}

	// Random mode bypasses the constraint filters entirely.
	if params.IsRandom {
		return true
	}

	if params.NotRememberedCount > 0 && NotRememberedCount(ex.Attempts) < params.NotRememberedCount {
		return false
	}

	if params.DaysSinceLastAttempt > 0 {
		if last == nil {
			return params.NotRememberedCount == 0
		}
		daysSince := int(now.Sub(last.AttemptedAt) / day)
		if daysSince < params.DaysSinceLastAttempt {
			return false
		}
	}

	return true
}

// SelectBatch computes the eligible subset of the pool, shuffles it
// uniformly and truncates to the requested question count. A nil rng
// falls back to an ambient time-seeded source; tests inject a seeded one.
// Degenerate input yields an empty batch, never an error.
func SelectBatch(pool []models.ExerciseWithAttempts, params models.FilterParams, now time.Time, rng *rand.Rand) []models.Exercise {
	eligible := make([]models.Exercise, 0, len(pool))
	for _, ex := range pool {
		if Eligible(ex, params, now) {
			eligible = append(eligible, ex.Exercise)
		}
	}

	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	rng.Shuffle(len(eligible), func(i, j int) {
		eligible[i], eligible[j] = eligible[j], eligible[i]
	})

	n := params.QuestionCount
	if n < 0 {
		n = 0
	}
	if n > len(eligible) {
		n = len(eligible)
	}
	return eligible[:n]
}

// CountEligible returns how many exercises in the pool match the filter,
// without sampling. Used to preview "N problems match" before a session.
func CountEligible(pool []models.ExerciseWithAttempts, params models.FilterParams, now time.Time) int {
	n := 0
	for _, ex := range pool {
		if Eligible(ex, params, now) {
			n++
		}
	}
	return n
}
