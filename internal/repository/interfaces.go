package repository

import (
	"context"
	"time"

	"github.com/mvales/lingolog/internal/models"
)

// LearnerRepository handles learner data access
type LearnerRepository interface {
	Get(ctx context.Context, id int64) (*models.Learner, error)
	List(ctx context.Context) ([]models.Learner, error)
	Insert(ctx context.Context, l models.Learner) (int64, error)
	SetPremium(ctx context.Context, id int64, premium bool) error
	Delete(ctx context.Context, id int64) error
}

// DiaryRepository handles diary entry data access
type DiaryRepository interface {
	Get(ctx context.Context, id int64, learnerID int64) (*models.DiaryEntry, error)
	GetByDate(ctx context.Context, learnerID int64, date time.Time) (*models.DiaryEntry, error)
	List(ctx context.Context, filter models.DiaryFilter) ([]models.DiaryEntry, error)
	Count(ctx context.Context, filter models.DiaryFilter) (int, error)
	Insert(ctx context.Context, e models.DiaryEntry) (int64, error)
	Update(ctx context.Context, e models.DiaryEntry) error
	SetCorrectedText(ctx context.Context, id int64, learnerID int64, text string) error
	Delete(ctx context.Context, id int64, learnerID int64) error
}

// ExerciseRepository handles exercise data access
type ExerciseRepository interface {
	Get(ctx context.Context, id int64, learnerID int64) (*models.Exercise, error)
	List(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error)
	Count(ctx context.Context, filter models.ExerciseFilter) (int, error)
	InsertBatch(ctx context.Context, exercises []models.Exercise) ([]int64, error)
	SetCompleted(ctx context.Context, id int64, learnerID int64, completed bool) error
	Delete(ctx context.Context, id int64, learnerID int64) error
	// ReviewPool returns the learner's active exercises (not completed,
	// scheduled on or before asOf) with their full attempt histories.
	ReviewPool(ctx context.Context, learnerID int64, asOf time.Time) ([]models.ExerciseWithAttempts, error)
}

// AttemptRepository handles attempt data access
type AttemptRepository interface {
	Insert(ctx context.Context, a models.Attempt) (int64, error)
	// SetJudgment finalizes the recall judgment of an attempt. It only
	// touches attempts whose judgment is still unset; finalized attempts
	// are immutable history.
	SetJudgment(ctx context.Context, id int64, remembered bool) error
	ListForExercise(ctx context.Context, exerciseID int64) ([]models.Attempt, error)
	CountForLearnerBetween(ctx context.Context, learnerID int64, from, to time.Time) (int, error)
}

// StatsRepository handles statistics data access
type StatsRepository interface {
	LearnerStats(ctx context.Context, learnerID int64, todayStart, todayEnd time.Time) (*models.LearnerStats, error)
}
