package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/repository"
)

type attemptRepository struct {
	db *sql.DB
}

// NewAttemptRepository creates a new AttemptRepository implementation
func NewAttemptRepository(db *sql.DB) repository.AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Insert(ctx context.Context, a models.Attempt) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("inserting attempt: exercise_id=%d", a.ExerciseID)

	attemptedAt := a.AttemptedAt
	if attemptedAt.IsZero() {
		attemptedAt = time.Now()
	}
	var remembered any
	if a.Remembered != nil {
		remembered = *a.Remembered
	}
	res, err := r.db.ExecContext(ctx, `
INSERT INTO attempts (exercise_id, user_answer, remembered, attempted_at)
VALUES (?, ?, ?, ?)
`, a.ExerciseID, a.UserAnswer, remembered, attemptedAt)
	if err != nil {
		log.Error("failed to insert attempt: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get attempt id: %v", err)
		return 0, err
	}
	log.Debug("attempt inserted: id=%d", id)
	return id, nil
}

func (r *attemptRepository) SetJudgment(ctx context.Context, id int64, remembered bool) error {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("setting judgment: attempt_id=%d, remembered=%v", id, remembered)

	// Judged attempts are immutable history, only unjudged rows qualify.
	res, err := r.db.ExecContext(ctx, `
UPDATE attempts SET remembered = ? WHERE id = ? AND remembered IS NULL
`, remembered, id)
	if err != nil {
		log.Error("failed to set judgment: %v", err)
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		log.Warn("judgment not applied, attempt missing or already judged: id=%d", id)
		return fmt.Errorf("attempt %d missing or already judged", id)
	}
	return nil
}

func (r *attemptRepository) ListForExercise(ctx context.Context, exerciseID int64) ([]models.Attempt, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("listing attempts: exercise_id=%d", exerciseID)

	rows, err := r.db.QueryContext(ctx, `
SELECT id, exercise_id, user_answer, remembered, attempted_at
FROM attempts
WHERE exercise_id = ?
ORDER BY attempted_at ASC, id ASC
`, exerciseID)
	if err != nil {
		log.Error("failed to list attempts: %v", err)
		return nil, err
	}
	defer rows.Close()

	var attempts []models.Attempt
	for rows.Next() {
		var a models.Attempt
		var remembered sql.NullBool
		if err := rows.Scan(&a.ID, &a.ExerciseID, &a.UserAnswer, &remembered, &a.AttemptedAt); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		if remembered.Valid {
			a.Remembered = &remembered.Bool
		}
		attempts = append(attempts, a)
	}
	log.Debug("found %d attempts", len(attempts))
	return attempts, rows.Err()
}

func (r *attemptRepository) CountForLearnerBetween(ctx context.Context, learnerID int64, from, to time.Time) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("attempt_repo")
	log.Debug("counting attempts: learner_id=%d, from=%v, to=%v", learnerID, from, to)

	var count int
	err := r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM attempts a
JOIN exercises e ON e.id = a.exercise_id
WHERE e.learner_id = ? AND a.attempted_at >= ? AND a.attempted_at <= ?
`, learnerID, from, to).Scan(&count)
	if err != nil {
		log.Error("failed to count attempts: %v", err)
		return 0, err
	}
	log.Debug("found %d attempts in window", count)
	return count, nil
}
