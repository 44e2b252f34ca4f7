package review_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/review"
)

// recordingWriter captures every persistence event in call order.
type recordingWriter struct {
	events []string
}

type recordingPending struct {
	w          *recordingWriter
	exerciseID int64
}

func (w *recordingWriter) WriteReveal(exerciseID int64, userAnswer string) review.PendingAttempt {
	w.events = append(w.events, eventf("reveal", exerciseID, userAnswer))
	return &recordingPending{w: w, exerciseID: exerciseID}
}

func (p *recordingPending) WriteJudgment(remembered bool) {
	if remembered {
		p.w.events = append(p.w.events, eventf("judge", p.exerciseID, "true"))
	} else {
		p.w.events = append(p.w.events, eventf("judge", p.exerciseID, "false"))
	}
}

func eventf(kind string, id int64, detail string) string {
	return fmt.Sprintf("%s/%d/%s", kind, id, detail)
}

func batch(ids ...int64) []models.Exercise {
	out := make([]models.Exercise, 0, len(ids))
	for _, id := range ids {
		out = append(out, models.Exercise{ID: id, NativeText: "prompt", TargetText: "answer"})
	}
	return out
}

func TestNewSession_EmptyBatch(t *testing.T) {
	_, err := review.NewSession(nil, review.NopWriter())
	assert.ErrorIs(t, err, review.ErrEmptyBatch)
}

func TestSession_HappyPath(t *testing.T) {
	sess, err := review.NewSession(batch(1, 2, 3), review.NopWriter())
	require.NoError(t, err)
	assert.Equal(t, review.StateInSession, sess.State())

	for i := int64(1); i <= 3; i++ {
		current, flipped, err := sess.Current()
		require.NoError(t, err)
		assert.Equal(t, i, current.ID)
		assert.False(t, flipped)

		require.NoError(t, sess.Reveal("my answer"))
		_, flipped, err = sess.Current()
		require.NoError(t, err)
		assert.True(t, flipped)

		done, err := sess.Judge(i != 2)
		require.NoError(t, err)
		assert.Equal(t, i == 3, done)
	}

	assert.Equal(t, review.StateCompleted, sess.State())
}

// The index never decreases and advances exactly one card per judgment.
func TestSession_IndexMonotonicity(t *testing.T) {
	sess, err := review.NewSession(batch(1, 2, 3), review.NopWriter())
	require.NoError(t, err)

	index, total := sess.Progress()
	assert.Equal(t, 0, index)
	assert.Equal(t, 3, total)

	require.NoError(t, sess.Reveal(""))
	_, err = sess.Judge(true)
	require.NoError(t, err)
	index, _ = sess.Progress()
	assert.Equal(t, 1, index)

	require.NoError(t, sess.Reveal(""))
	_, err = sess.Judge(false)
	require.NoError(t, err)
	index, _ = sess.Progress()
	assert.Equal(t, 2, index)
}

func TestSession_JudgeBeforeRevealRejected(t *testing.T) {
	sess, err := review.NewSession(batch(1), review.NopWriter())
	require.NoError(t, err)

	_, err = sess.Judge(true)
	assert.ErrorIs(t, err, review.ErrNotRevealed)
}

func TestSession_DoubleRevealRejected(t *testing.T) {
	sess, err := review.NewSession(batch(1, 2), review.NopWriter())
	require.NoError(t, err)

	require.NoError(t, sess.Reveal("a"))
	assert.ErrorIs(t, sess.Reveal("b"), review.ErrAlreadyRevealed)
}

func TestSession_CompletedIsTerminal(t *testing.T) {
	sess, err := review.NewSession(batch(1), review.NopWriter())
	require.NoError(t, err)

	require.NoError(t, sess.Reveal(""))
	done, err := sess.Judge(true)
	require.NoError(t, err)
	require.True(t, done)

	assert.ErrorIs(t, sess.Reveal(""), review.ErrSessionCompleted)
	_, err = sess.Judge(true)
	assert.ErrorIs(t, err, review.ErrSessionCompleted)
	_, _, err = sess.Current()
	assert.ErrorIs(t, err, review.ErrSessionCompleted)
}

// Judging item 1 and 2 of a 3-item session, then walking away: two
// judgments exist, and no summary is ever produced.
func TestSession_AbandonedMidwayKeepsPartialJudgments(t *testing.T) {
	sess, err := review.NewSession(batch(1, 2, 3), review.NopWriter())
	require.NoError(t, err)

	require.NoError(t, sess.Reveal(""))
	_, err = sess.Judge(true)
	require.NoError(t, err)
	require.NoError(t, sess.Reveal(""))
	_, err = sess.Judge(false)
	require.NoError(t, err)

	judgments := sess.Judgments()
	assert.Len(t, judgments, 2)
	assert.True(t, judgments[1])
	assert.False(t, judgments[2])

	_, err = sess.Summary()
	assert.ErrorIs(t, err, review.ErrNotCompleted)
}

// Reveal insert precedes the judgment update for the same card.
func TestSession_AttemptWriteOrdering(t *testing.T) {
	w := &recordingWriter{}
	sess, err := review.NewSession(batch(1, 2), w)
	require.NoError(t, err)

	require.NoError(t, sess.Reveal("first"))
	_, err = sess.Judge(true)
	require.NoError(t, err)
	require.NoError(t, sess.Reveal("second"))
	_, err = sess.Judge(false)
	require.NoError(t, err)

	assert.Equal(t, []string{
		eventf("reveal", 1, "first"),
		eventf("judge", 1, "true"),
		eventf("reveal", 2, "second"),
		eventf("judge", 2, "false"),
	}, w.events)
}

// Abandoning after reveal still leaves the unjudged attempt write behind.
func TestSession_RevealWithoutJudgmentStillRecorded(t *testing.T) {
	w := &recordingWriter{}
	sess, err := review.NewSession(batch(1), w)
	require.NoError(t, err)

	require.NoError(t, sess.Reveal("half done"))

	assert.Equal(t, []string{eventf("reveal", 1, "half done")}, w.events)
}

func TestSession_SummaryAfterCompletion(t *testing.T) {
	sess, err := review.NewSession(batch(1, 2, 3, 4), review.NopWriter())
	require.NoError(t, err)

	outcomes := []bool{true, false, true, true}
	for _, remembered := range outcomes {
		require.NoError(t, sess.Reveal("answer"))
		_, err := sess.Judge(remembered)
		require.NoError(t, err)
	}

	summary, err := sess.Summary()
	require.NoError(t, err)
	assert.Equal(t, 3, summary.RememberedCount)
	assert.Equal(t, 4, summary.TotalQuestions)
	assert.InDelta(t, 75.0, summary.Percentage, 0.0001)
	require.Len(t, summary.PerItem, 4)
	for i, item := range summary.PerItem {
		assert.Equal(t, int64(i+1), item.Exercise.ID, "per-item order follows session order")
		assert.Equal(t, outcomes[i], item.Remembered)
	}
}
