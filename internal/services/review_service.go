package services

import (
	"context"
	"math/rand"
	"time"

	"github.com/mvales/lingolog/internal/errors"
	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/repository"
	"github.com/mvales/lingolog/internal/review"
	"github.com/mvales/lingolog/internal/session"
)

// StartResult describes a session-start outcome. SessionID is empty when
// nothing matched the filter; that is the empty state, not an error.
type StartResult struct {
	SessionID string             `json:"session_id,omitempty"`
	Items     []models.Exercise  `json:"items"`
	Limit     models.LimitStatus `json:"limit"`
}

// CardState is the session view after a transition.
type CardState struct {
	Exercise models.Exercise `json:"exercise"`
	Flipped  bool            `json:"flipped"`
	Index    int             `json:"index"`
	Total    int             `json:"total"`
}

// JudgeResult reports a judgment transition.
type JudgeResult struct {
	Done  bool       `json:"done"`
	Next  *CardState `json:"next,omitempty"`
	Index int        `json:"index"`
	Total int        `json:"total"`
}

// ReviewService orchestrates the review flow: limit gate, batch
// selection, live session transitions and summaries.
type ReviewService interface {
	Preview(ctx context.Context, learner *models.Learner, params models.FilterParams) (int, models.LimitStatus, error)
	StartSession(ctx context.Context, learner *models.Learner, params models.FilterParams) (*StartResult, error)
	Reveal(ctx context.Context, learnerID int64, sessionID string, answer string) (*CardState, error)
	Judge(ctx context.Context, learnerID int64, sessionID string, remembered bool) (*JudgeResult, error)
	Summary(ctx context.Context, learnerID int64, sessionID string) (*models.SessionSummary, error)
	Abandon(ctx context.Context, learnerID int64, sessionID string) error
}

type reviewService struct {
	exercises repository.ExerciseRepository
	attempts  repository.AttemptRepository
	registry  *session.Registry
	writer    review.AttemptWriter
	freeLimit int
	rng       *rand.Rand
}

// NewReviewService creates a new ReviewService. rng may be nil, in which
// case batch selection uses an ambient time-seeded source; tests pass a
// seeded one for deterministic sampling.
func NewReviewService(
	exercises repository.ExerciseRepository,
	attempts repository.AttemptRepository,
	registry *session.Registry,
	writer review.AttemptWriter,
	freeLimit int,
	rng *rand.Rand,
) ReviewService {
	return &reviewService{
		exercises: exercises,
		attempts:  attempts,
		registry:  registry,
		writer:    writer,
		freeLimit: freeLimit,
		rng:       rng,
	}
}

// limitStatus computes the daily-limit verdict. A failing today-count
// query fails open: the learner is allowed through and the failure is
// only logged, availability over strictness.
func (s *reviewService) limitStatus(ctx context.Context, learner *models.Learner, now time.Time) models.LimitStatus {
	log := logger.FromContext(ctx)

	if learner.Tier() == models.TierPremium {
		return review.CheckReviewAllowed(models.TierPremium, 0, s.freeLimit)
	}

	start, end := review.DayBounds(now)
	count, err := s.attempts.CountForLearnerBetween(ctx, learner.ID, start, end)
	if err != nil {
		log.Warn("failed to count today's attempts, failing open: %v", err)
		count = 0
	}
	return review.CheckReviewAllowed(learner.Tier(), count, s.freeLimit)
}

func (s *reviewService) Preview(ctx context.Context, learner *models.Learner, params models.FilterParams) (int, models.LimitStatus, error) {
	log := logger.FromContext(ctx)
	log.Debug("previewing review filter: learner_id=%d", learner.ID)

	now := time.Now()
	status := s.limitStatus(ctx, learner, now)

	pool, err := s.exercises.ReviewPool(ctx, learner.ID, now)
	if err != nil {
		log.Error("failed to load review pool: %v", err)
		return 0, status, errors.NewInternalError(err)
	}

	count := review.CountEligible(pool, params, now)
	log.Debug("preview: %d of %d exercises match", count, len(pool))
	return count, status, nil
}

func (s *reviewService) StartSession(ctx context.Context, learner *models.Learner, params models.FilterParams) (*StartResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("starting review session: learner_id=%d, params=%+v", learner.ID, params)

	if params.QuestionCount < 1 {
		return nil, errors.NewValidationError("question_count", "must be at least 1")
	}
	if params.NotRememberedCount < 0 {
		return nil, errors.NewValidationError("not_remembered_count", "must not be negative")
	}
	if params.DaysSinceLastAttempt < 0 {
		return nil, errors.NewValidationError("days_since_last_attempt", "must not be negative")
	}

	now := time.Now()
	status := s.limitStatus(ctx, learner, now)
	if !status.IsAllowed {
		log.Info("daily review limit reached: learner_id=%d, today_count=%d", learner.ID, status.TodayCount)
		return nil, errors.NewLimitExceededError("daily review limit reached")
	}

	pool, err := s.exercises.ReviewPool(ctx, learner.ID, now)
	if err != nil {
		log.Error("failed to load review pool: %v", err)
		return nil, errors.NewInternalError(err)
	}

	batch := review.SelectBatch(pool, params, now, s.rng)
	if len(batch) == 0 {
		log.Debug("no exercises match the filter, session not started")
		return &StartResult{Items: []models.Exercise{}, Limit: status}, nil
	}

	sess, err := review.NewSession(batch, s.writer)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	id := s.registry.Put(learner.ID, sess)

	log.Info("review session started: session_id=%s, items=%d", id, len(batch))
	return &StartResult{SessionID: id, Items: batch, Limit: status}, nil
}

func (s *reviewService) getSession(learnerID int64, sessionID string) (*review.Session, error) {
	sess := s.registry.Get(sessionID, learnerID)
	if sess == nil {
		return nil, errors.NewNotFoundError("session", sessionID)
	}
	return sess, nil
}

func (s *reviewService) cardState(sess *review.Session) (*CardState, error) {
	current, flipped, err := sess.Current()
	if err != nil {
		return nil, err
	}
	index, total := sess.Progress()
	return &CardState{Exercise: current, Flipped: flipped, Index: index, Total: total}, nil
}

func (s *reviewService) Reveal(ctx context.Context, learnerID int64, sessionID string, answer string) (*CardState, error) {
	log := logger.FromContext(ctx)
	log.Debug("revealing card: session_id=%s", sessionID)

	sess, err := s.getSession(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	if err := sess.Reveal(answer); err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	return s.cardState(sess)
}

func (s *reviewService) Judge(ctx context.Context, learnerID int64, sessionID string, remembered bool) (*JudgeResult, error) {
	log := logger.FromContext(ctx)
	log.Debug("judging card: session_id=%s, remembered=%v", sessionID, remembered)

	sess, err := s.getSession(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	done, err := sess.Judge(remembered)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	index, total := sess.Progress()
	result := &JudgeResult{Done: done, Index: index, Total: total}
	if !done {
		next, err := s.cardState(sess)
		if err != nil {
			return nil, errors.NewInternalError(err)
		}
		result.Next = next
	} else {
		log.Info("review session completed: session_id=%s", sessionID)
	}
	return result, nil
}

func (s *reviewService) Summary(ctx context.Context, learnerID int64, sessionID string) (*models.SessionSummary, error) {
	log := logger.FromContext(ctx)
	log.Debug("fetching session summary: session_id=%s", sessionID)

	sess, err := s.getSession(learnerID, sessionID)
	if err != nil {
		return nil, err
	}
	summary, err := sess.Summary()
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}
	return &summary, nil
}

func (s *reviewService) Abandon(ctx context.Context, learnerID int64, sessionID string) error {
	log := logger.FromContext(ctx)

	// Discard is idempotent. Already-issued attempt writes stay put, a
	// partially-judged session leaves partial history.
	if s.registry.Remove(sessionID, learnerID) {
		log.Info("review session abandoned: session_id=%s", sessionID)
	}
	return nil
}
