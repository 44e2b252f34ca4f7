package review

import (
	"time"

	"github.com/mvales/lingolog/internal/errors"
	"github.com/mvales/lingolog/internal/models"
)

// CheckReviewAllowed applies the daily review cap. Premium learners are
// never limited; the count and limit fields are not meaningful for them.
// The tier is an explicit input so the gate stays deterministic under test.
func CheckReviewAllowed(tier models.Tier, todayCount, limit int) models.LimitStatus {
	if tier == models.TierPremium {
		return models.LimitStatus{IsAllowed: true, IsPremium: true}
	}
	return models.LimitStatus{
		IsAllowed:  todayCount < limit,
		TodayCount: todayCount,
		Limit:      limit,
	}
}

// DayBounds returns the server-local midnight-to-midnight window
// containing t, inclusive on both ends.
func DayBounds(t time.Time) (start, end time.Time) {
	start = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end = start.Add(day - time.Nanosecond)
	return start, end
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}

// CheckEntryDateAllowed applies the free-tier diary gate: a free learner
// may only create or update the entry dated today.
func CheckEntryDateAllowed(tier models.Tier, entryDate, today time.Time) error {
	if tier == models.TierPremium {
		return nil
	}
	if SameDay(today, entryDate) {
		return nil
	}
	return errors.NewLimitExceededError("free tier can only write today's diary entry")
}
