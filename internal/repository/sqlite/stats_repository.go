package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/repository"
)

type statsRepository struct {
	db *sql.DB
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) LearnerStats(ctx context.Context, learnerID int64, todayStart, todayEnd time.Time) (*models.LearnerStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	log.Debug("computing learner stats: learner_id=%d", learnerID)

	var s models.LearnerStats
	err := r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(SUM(is_completed), 0)
FROM exercises
WHERE learner_id = ?
`, learnerID).Scan(&s.TotalExercises, &s.CompletedExercises)
	if err != nil {
		log.Error("failed to compute exercise stats: %v", err)
		return nil, err
	}

	err = r.db.QueryRowContext(ctx, `
SELECT
    COUNT(*),
    COALESCE(SUM(CASE WHEN a.remembered = 1 THEN 1 ELSE 0 END), 0),
    COALESCE(SUM(CASE WHEN a.attempted_at >= ? AND a.attempted_at <= ? THEN 1 ELSE 0 END), 0)
FROM attempts a
JOIN exercises e ON e.id = a.exercise_id
WHERE e.learner_id = ?
`, todayStart, todayEnd, learnerID).Scan(&s.TotalAttempts, &s.RememberedAttempts, &s.AttemptsToday)
	if err != nil && err != sql.ErrNoRows {
		log.Error("failed to compute attempt stats: %v", err)
		return nil, err
	}

	if s.TotalAttempts > 0 {
		s.RememberedRate = float64(s.RememberedAttempts) / float64(s.TotalAttempts) * 100
	}
	log.Debug("learner stats computed: exercises=%d, attempts=%d", s.TotalExercises, s.TotalAttempts)
	return &s, nil
}
