package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/repository"
)

var sqlBuilder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)

type exerciseRepository struct {
	db *sql.DB
}

// NewExerciseRepository creates a new ExerciseRepository implementation
func NewExerciseRepository(db *sql.DB) repository.ExerciseRepository {
	return &exerciseRepository{db: db}
}

const exerciseColumns = "id, learner_id, diary_entry_id, native_text, target_text, native_language, target_language, scheduled_date, is_completed, created_at"

func scanExercise(row interface{ Scan(...any) error }) (models.Exercise, error) {
	var ex models.Exercise
	var diaryEntryID sql.NullInt64
	err := row.Scan(&ex.ID, &ex.LearnerID, &diaryEntryID, &ex.NativeText, &ex.TargetText,
		&ex.NativeLanguage, &ex.TargetLanguage, &ex.ScheduledDate, &ex.IsCompleted, &ex.CreatedAt)
	if err != nil {
		return ex, err
	}
	if diaryEntryID.Valid {
		ex.DiaryEntryID = &diaryEntryID.Int64
	}
	return ex, nil
}

func exerciseListQuery(columns string, filter models.ExerciseFilter) squirrel.SelectBuilder {
	query := sqlBuilder.Select(columns).From("exercises").
		Where(squirrel.Eq{"learner_id": filter.LearnerID})
	if filter.DiaryEntryID != 0 {
		query = query.Where(squirrel.Eq{"diary_entry_id": filter.DiaryEntryID})
	}
	if filter.Completed != nil {
		query = query.Where(squirrel.Eq{"is_completed": *filter.Completed})
	}
	if filter.TargetLanguage != "" {
		query = query.Where(squirrel.Eq{"target_language": filter.TargetLanguage})
	}
	return query
}

func (r *exerciseRepository) Get(ctx context.Context, id int64, learnerID int64) (*models.Exercise, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("getting exercise: id=%d, learner_id=%d", id, learnerID)

	row := r.db.QueryRowContext(ctx, `
SELECT `+exerciseColumns+`
FROM exercises
WHERE id = ? AND learner_id = ?
`, id, learnerID)
	ex, err := scanExercise(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("exercise not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get exercise: %v", err)
		return nil, err
	}
	return &ex, nil
}

func (r *exerciseRepository) List(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("listing exercises: learner_id=%d", filter.LearnerID)

	query := exerciseListQuery(exerciseColumns, filter).OrderBy("created_at DESC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build exercise list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list exercises: %v", err)
		return nil, err
	}
	defer rows.Close()

	var exercises []models.Exercise
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			log.Error("failed to scan exercise row: %v", err)
			return nil, err
		}
		exercises = append(exercises, ex)
	}
	log.Debug("found %d exercises", len(exercises))
	return exercises, rows.Err()
}

func (r *exerciseRepository) Count(ctx context.Context, filter models.ExerciseFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")

	sqlStr, args, err := exerciseListQuery("COUNT(*)", filter).ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count exercises: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *exerciseRepository) InsertBatch(ctx context.Context, exercises []models.Exercise) ([]int64, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("inserting %d exercises", len(exercises))

	if len(exercises) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction: %v", err)
		return nil, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO exercises (learner_id, diary_entry_id, native_text, target_text, native_language, target_language, scheduled_date, is_completed)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
`)
	if err != nil {
		log.Error("failed to prepare exercise insert: %v", err)
		return nil, err
	}
	defer stmt.Close()

	ids := make([]int64, 0, len(exercises))
	for _, ex := range exercises {
		var diaryEntryID any
		if ex.DiaryEntryID != nil {
			diaryEntryID = *ex.DiaryEntryID
		}
		res, err := stmt.ExecContext(ctx, ex.LearnerID, diaryEntryID, ex.NativeText, ex.TargetText,
			ex.NativeLanguage, ex.TargetLanguage, ex.ScheduledDate.Format("2006-01-02"), ex.IsCompleted)
		if err != nil {
			log.Error("failed to insert exercise: %v", err)
			return nil, err
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit exercise batch: %v", err)
		return nil, err
	}
	log.Debug("inserted %d exercises", len(ids))
	return ids, nil
}

func (r *exerciseRepository) SetCompleted(ctx context.Context, id int64, learnerID int64, completed bool) error {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("setting exercise completed: id=%d, completed=%v", id, completed)

	_, err := r.db.ExecContext(ctx, `
UPDATE exercises SET is_completed = ? WHERE id = ? AND learner_id = ?
`, completed, id, learnerID)
	if err != nil {
		log.Error("failed to set exercise completed: %v", err)
	}
	return err
}

func (r *exerciseRepository) Delete(ctx context.Context, id int64, learnerID int64) error {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("deleting exercise: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM exercises WHERE id = ? AND learner_id = ?`, id, learnerID)
	if err != nil {
		log.Error("failed to delete exercise: %v", err)
	}
	return err
}

func (r *exerciseRepository) ReviewPool(ctx context.Context, learnerID int64, asOf time.Time) ([]models.ExerciseWithAttempts, error) {
	log := logger.FromContext(ctx).WithPrefix("exercise_repo")
	log.Debug("fetching review pool: learner_id=%d", learnerID)

	rows, err := r.db.QueryContext(ctx, `
SELECT `+exerciseColumns+`
FROM exercises
WHERE learner_id = ? AND is_completed = 0 AND scheduled_date <= ?
ORDER BY created_at ASC
`, learnerID, asOf.Format("2006-01-02"))
	if err != nil {
		log.Error("failed to query review pool: %v", err)
		return nil, err
	}
	defer rows.Close()

	var pool []models.ExerciseWithAttempts
	index := map[int64]int{}
	for rows.Next() {
		ex, err := scanExercise(rows)
		if err != nil {
			log.Error("failed to scan exercise row: %v", err)
			return nil, err
		}
		index[ex.ID] = len(pool)
		pool = append(pool, models.ExerciseWithAttempts{Exercise: ex})
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		log.Debug("review pool empty")
		return pool, nil
	}

	attemptRows, err := r.db.QueryContext(ctx, `
SELECT a.id, a.exercise_id, a.user_answer, a.remembered, a.attempted_at
FROM attempts a
JOIN exercises e ON e.id = a.exercise_id
WHERE e.learner_id = ? AND e.is_completed = 0 AND e.scheduled_date <= ?
ORDER BY a.attempted_at ASC, a.id ASC
`, learnerID, asOf.Format("2006-01-02"))
	if err != nil {
		log.Error("failed to query pool attempts: %v", err)
		return nil, err
	}
	defer attemptRows.Close()

	for attemptRows.Next() {
		var a models.Attempt
		var remembered sql.NullBool
		if err := attemptRows.Scan(&a.ID, &a.ExerciseID, &a.UserAnswer, &remembered, &a.AttemptedAt); err != nil {
			log.Error("failed to scan attempt row: %v", err)
			return nil, err
		}
		if remembered.Valid {
			a.Remembered = &remembered.Bool
		}
		if i, ok := index[a.ExerciseID]; ok {
			pool[i].Attempts = append(pool[i].Attempts, a)
		}
	}
	log.Debug("review pool loaded: %d exercises", len(pool))
	return pool, attemptRows.Err()
}
