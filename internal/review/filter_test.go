package review_test

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/review"
)

var now = time.Date(2026, 3, 14, 12, 0, 0, 0, time.Local)

func boolPtr(b bool) *bool { return &b }

func exercise(id int64, attempts ...models.Attempt) models.ExerciseWithAttempts {
	return models.ExerciseWithAttempts{
		Exercise: models.Exercise{ID: id, NativeText: "prompt", TargetText: "answer"},
		Attempts: attempts,
	}
}

func attemptAt(remembered *bool, at time.Time) models.Attempt {
	return models.Attempt{Remembered: remembered, AttemptedAt: at}
}

func failed(daysAgo int) models.Attempt {
	return attemptAt(boolPtr(false), now.Add(-time.Duration(daysAgo)*24*time.Hour))
}

func succeeded(daysAgo int) models.Attempt {
	return attemptAt(boolPtr(true), now.Add(-time.Duration(daysAgo)*24*time.Hour))
}

func ids(batch []models.Exercise) []int64 {
	out := make([]int64, 0, len(batch))
	for _, ex := range batch {
		out = append(out, ex.ID)
	}
	return out
}

func TestEligible_NotRememberedCountFilter(t *testing.T) {
	params := models.FilterParams{NotRememberedCount: 2, QuestionCount: 5}

	twoFailures := exercise(1, failed(3), failed(2))
	oneFailure := exercise(2, failed(3))
	unattempted := exercise(3)

	assert.True(t, review.Eligible(twoFailures, params, now))
	assert.False(t, review.Eligible(oneFailure, params, now))
	assert.False(t, review.Eligible(unattempted, params, now))
}

func TestEligible_UnjudgedAttemptsDoNotCountAsFailures(t *testing.T) {
	params := models.FilterParams{NotRememberedCount: 1, QuestionCount: 5}

	unjudgedOnly := exercise(1, attemptAt(nil, now.Add(-48*time.Hour)))
	assert.False(t, review.Eligible(unjudgedOnly, params, now))
}

func TestEligible_DaysSinceLastAttemptFilter(t *testing.T) {
	params := models.FilterParams{DaysSinceLastAttempt: 7, QuestionCount: 5}

	staleEnough := exercise(1, failed(10))
	tooRecent := exercise(2, failed(10), failed(2))

	assert.True(t, review.Eligible(staleEnough, params, now))
	assert.False(t, review.Eligible(tooRecent, params, now), "most recent attempt decides recency")
}

func TestEligible_RecencyUsesFloorOfElapsedDays(t *testing.T) {
	params := models.FilterParams{DaysSinceLastAttempt: 7, QuestionCount: 5}

	almostSevenDays := exercise(1, attemptAt(boolPtr(false), now.Add(-7*24*time.Hour+time.Hour)))
	exactlySevenDays := exercise(2, attemptAt(boolPtr(false), now.Add(-7*24*time.Hour)))

	assert.False(t, review.Eligible(almostSevenDays, params, now))
	assert.True(t, review.Eligible(exactlySevenDays, params, now))
}

// Never-attempted exercises pass a recency filter only while the
// not-remembered count filter is inactive.
func TestEligible_NeverAttemptedTieBreak(t *testing.T) {
	unattempted := exercise(1)

	withCountFilter := models.FilterParams{NotRememberedCount: 1, DaysSinceLastAttempt: 7, QuestionCount: 5}
	withoutCountFilter := models.FilterParams{DaysSinceLastAttempt: 7, QuestionCount: 5}

	assert.False(t, review.Eligible(unattempted, withCountFilter, now))
	assert.True(t, review.Eligible(unattempted, withoutCountFilter, now))
}

func TestEligible_NoActiveFiltersPassesByDefault(t *testing.T) {
	params := models.FilterParams{QuestionCount: 5}

	assert.True(t, review.Eligible(exercise(1), params, now))
	assert.True(t, review.Eligible(exercise(2, succeeded(1)), params, now))
}

func TestEligible_ExcludeRemembered(t *testing.T) {
	params := models.FilterParams{ExcludeRemembered: true, QuestionCount: 5}

	lastRemembered := exercise(1, failed(5), succeeded(1))
	lastForgotten := exercise(2, succeeded(5), failed(1))
	unattempted := exercise(3)

	assert.False(t, review.Eligible(lastRemembered, params, now))
	assert.True(t, review.Eligible(lastForgotten, params, now))
	assert.True(t, review.Eligible(unattempted, params, now))
}

func TestEligible_ExcludeRememberedAppliesInRandomMode(t *testing.T) {
	params := models.FilterParams{IsRandom: true, ExcludeRemembered: true, QuestionCount: 5}

	assert.False(t, review.Eligible(exercise(1, succeeded(1)), params, now))
	assert.True(t, review.Eligible(exercise(2, failed(1)), params, now))
}

func TestEligible_RandomModeBypassesConstraintFilters(t *testing.T) {
	// Constraint fields are deliberately set so they would exclude
	// everything if applied.
	params := models.FilterParams{
		IsRandom:             true,
		NotRememberedCount:   99,
		DaysSinceLastAttempt: 99,
		QuestionCount:        5,
	}

	assert.True(t, review.Eligible(exercise(1), params, now))
	assert.True(t, review.Eligible(exercise(2, succeeded(1)), params, now))
	assert.True(t, review.Eligible(exercise(3, failed(1)), params, now))
}

func TestEligible_CompletedAlwaysExcluded(t *testing.T) {
	completed := exercise(1)
	completed.IsCompleted = true

	assert.False(t, review.Eligible(completed, models.FilterParams{QuestionCount: 5}, now))
	assert.False(t, review.Eligible(completed, models.FilterParams{IsRandom: true, QuestionCount: 5}, now))
}

func TestSelectBatch_TruncatesToQuestionCount(t *testing.T) {
	pool := []models.ExerciseWithAttempts{exercise(1), exercise(2), exercise(3), exercise(4), exercise(5)}
	params := models.FilterParams{QuestionCount: 3}

	batch := review.SelectBatch(pool, params, now, rand.New(rand.NewSource(1)))
	assert.Len(t, batch, 3)
}

func TestSelectBatch_OversizedRequestReturnsWholeEligibleSet(t *testing.T) {
	pool := []models.ExerciseWithAttempts{exercise(1), exercise(2)}
	params := models.FilterParams{QuestionCount: 50}

	batch := review.SelectBatch(pool, params, now, rand.New(rand.NewSource(1)))
	assert.Len(t, batch, 2)
}

func TestSelectBatch_EmptyPool(t *testing.T) {
	batch := review.SelectBatch(nil, models.FilterParams{QuestionCount: 5}, now, rand.New(rand.NewSource(1)))
	assert.Empty(t, batch)
	assert.Zero(t, review.CountEligible(nil, models.FilterParams{QuestionCount: 5}, now))
}

func TestSelectBatch_DeterministicWithSeededSource(t *testing.T) {
	pool := []models.ExerciseWithAttempts{exercise(1), exercise(2), exercise(3), exercise(4)}
	params := models.FilterParams{QuestionCount: 4}

	first := review.SelectBatch(pool, params, now, rand.New(rand.NewSource(42)))
	second := review.SelectBatch(pool, params, now, rand.New(rand.NewSource(42)))
	assert.Equal(t, ids(first), ids(second))
}

// Batch size never exceeds the eligible count, and equals it exactly once
// the request is at least as large.
func TestSelectBatch_ConsistentWithCountEligible(t *testing.T) {
	pool := []models.ExerciseWithAttempts{
		exercise(1, failed(10), failed(9)),
		exercise(2, failed(10)),
		exercise(3),
		exercise(4, succeeded(1)),
		exercise(5, failed(3), failed(2), failed(1)),
	}

	paramSets := []models.FilterParams{
		{QuestionCount: 2},
		{QuestionCount: 10},
		{NotRememberedCount: 2, QuestionCount: 10},
		{DaysSinceLastAttempt: 5, QuestionCount: 10},
		{NotRememberedCount: 1, DaysSinceLastAttempt: 5, QuestionCount: 10},
		{ExcludeRemembered: true, QuestionCount: 10},
		{IsRandom: true, QuestionCount: 3},
		{IsRandom: true, ExcludeRemembered: true, QuestionCount: 10},
	}

	for _, params := range paramSets {
		eligible := review.CountEligible(pool, params, now)
		batch := review.SelectBatch(pool, params, now, rand.New(rand.NewSource(7)))

		assert.LessOrEqual(t, len(batch), eligible, "params=%+v", params)
		if params.QuestionCount >= eligible {
			assert.Len(t, batch, eligible, "params=%+v", params)
		}
	}
}

// Pool of 5, two exercises with at least two failed attempts, count filter
// of 2: the batch is exactly those two, order unconstrained.
func TestSelectBatch_FailureCountScenario(t *testing.T) {
	pool := []models.ExerciseWithAttempts{
		exercise(1, failed(5), failed(4)),
		exercise(2, failed(5)),
		exercise(3),
		exercise(4, succeeded(2)),
		exercise(5, failed(6), failed(3), succeeded(1)),
	}
	params := models.FilterParams{NotRememberedCount: 2, QuestionCount: 5}

	batch := review.SelectBatch(pool, params, now, rand.New(rand.NewSource(3)))
	require.Len(t, batch, 2)
	assert.ElementsMatch(t, []int64{1, 5}, ids(batch))
	assert.Equal(t, 2, review.CountEligible(pool, params, now))
}

// All-unattempted pool with only a recency filter: everything is eligible.
func TestSelectBatch_UnattemptedPoolWithRecencyFilter(t *testing.T) {
	pool := []models.ExerciseWithAttempts{exercise(1), exercise(2), exercise(3)}
	params := models.FilterParams{DaysSinceLastAttempt: 7, QuestionCount: 3}

	batch := review.SelectBatch(pool, params, now, rand.New(rand.NewSource(3)))
	assert.Len(t, batch, 3)
	assert.ElementsMatch(t, []int64{1, 2, 3}, ids(batch))
}

func TestLastAttempt(t *testing.T) {
	assert.Nil(t, review.LastAttempt(nil))

	older := attemptAt(boolPtr(true), now.Add(-72*time.Hour))
	newer := attemptAt(boolPtr(false), now.Add(-24*time.Hour))
	last := review.LastAttempt([]models.Attempt{older, newer})
	require.NotNil(t, last)
	assert.Equal(t, newer.AttemptedAt, last.AttemptedAt)
}

func TestNotRememberedCount(t *testing.T) {
	attempts := []models.Attempt{
		attemptAt(boolPtr(false), now.Add(-3*24*time.Hour)),
		attemptAt(boolPtr(true), now.Add(-2*24*time.Hour)),
		attemptAt(nil, now.Add(-24*time.Hour)),
		attemptAt(boolPtr(false), now),
	}
	assert.Equal(t, 2, review.NotRememberedCount(attempts))
}
