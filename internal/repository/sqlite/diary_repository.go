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

type diaryRepository struct {
	db *sql.DB
}

// NewDiaryRepository creates a new DiaryRepository implementation
func NewDiaryRepository(db *sql.DB) repository.DiaryRepository {
	return &diaryRepository{db: db}
}

const diaryColumns = "id, learner_id, entry_date, native_text, target_text, corrected_text, created_at, updated_at"

func scanDiaryEntry(row interface{ Scan(...any) error }) (models.DiaryEntry, error) {
	var e models.DiaryEntry
	var corrected sql.NullString
	err := row.Scan(&e.ID, &e.LearnerID, &e.EntryDate, &e.NativeText, &e.TargetText, &corrected, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return e, err
	}
	if corrected.Valid {
		e.CorrectedText = &corrected.String
	}
	return e, nil
}

func (r *diaryRepository) Get(ctx context.Context, id int64, learnerID int64) (*models.DiaryEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("diary_repo")
	log.Debug("getting diary entry: id=%d, learner_id=%d", id, learnerID)

	row := r.db.QueryRowContext(ctx, `
SELECT `+diaryColumns+`
FROM diary_entries
WHERE id = ? AND learner_id = ?
`, id, learnerID)
	e, err := scanDiaryEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("diary entry not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get diary entry: %v", err)
		return nil, err
	}
	return &e, nil
}

func (r *diaryRepository) GetByDate(ctx context.Context, learnerID int64, date time.Time) (*models.DiaryEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("diary_repo")
	log.Debug("getting diary entry by date: learner_id=%d, date=%s", learnerID, date.Format("2006-01-02"))

	row := r.db.QueryRowContext(ctx, `
SELECT `+diaryColumns+`
FROM diary_entries
WHERE learner_id = ? AND entry_date = ?
`, learnerID, date.Format("2006-01-02"))
	e, err := scanDiaryEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get diary entry by date: %v", err)
		return nil, err
	}
	return &e, nil
}

func (r *diaryRepository) listQuery(filter models.DiaryFilter) squirrel.SelectBuilder {
	query := sqlBuilder.Select(diaryColumns).From("diary_entries").
		Where(squirrel.Eq{"learner_id": filter.LearnerID})
	if !filter.From.IsZero() {
		query = query.Where(squirrel.GtOrEq{"entry_date": filter.From.Format("2006-01-02")})
	}
	if !filter.To.IsZero() {
		query = query.Where(squirrel.LtOrEq{"entry_date": filter.To.Format("2006-01-02")})
	}
	return query
}

func (r *diaryRepository) List(ctx context.Context, filter models.DiaryFilter) ([]models.DiaryEntry, error) {
	log := logger.FromContext(ctx).WithPrefix("diary_repo")
	log.Debug("listing diary entries: learner_id=%d", filter.LearnerID)

	query := r.listQuery(filter).OrderBy("entry_date DESC")
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		log.Error("failed to build diary list query: %v", err)
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		log.Error("failed to list diary entries: %v", err)
		return nil, err
	}
	defer rows.Close()

	var entries []models.DiaryEntry
	for rows.Next() {
		e, err := scanDiaryEntry(rows)
		if err != nil {
			log.Error("failed to scan diary row: %v", err)
			return nil, err
		}
		entries = append(entries, e)
	}
	log.Debug("found %d diary entries", len(entries))
	return entries, rows.Err()
}

func (r *diaryRepository) Count(ctx context.Context, filter models.DiaryFilter) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("diary_repo")

	query := sqlBuilder.Select("COUNT(*)").From("diary_entries").
		Where(squirrel.Eq{"learner_id": filter.LearnerID})
	if !filter.From.IsZero() {
		query = query.Where(squirrel.GtOrEq{"entry_date": filter.From.Format("2006-01-02")})
	}
	if !filter.To.IsZero() {
		query = query.Where(squirrel.LtOrEq{"entry_date": filter.To.Format("2006-01-02")})
	}
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.db.QueryRowContext(ctx, sqlStr, args...).Scan(&count); err != nil {
		log.Error("failed to count diary entries: %v", err)
		return 0, err
	}
	return count, nil
}

func (r *diaryRepository) Insert(ctx context.Context, e models.DiaryEntry) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("diary_repo")
	log.Debug("inserting diary entry: learner_id=%d, date=%s", e.LearnerID, e.EntryDate.Format("2006-01-02"))

	res, err := r.db.ExecContext(ctx, `
INSERT INTO diary_entries (learner_id, entry_date, native_text, target_text, corrected_text)
VALUES (?, ?, ?, ?, ?)
`, e.LearnerID, e.EntryDate.Format("2006-01-02"), e.NativeText, e.TargetText, e.CorrectedText)
	if err != nil {
		log.Error("failed to insert diary entry: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	log.Debug("diary entry inserted: id=%d", id)
	return id, nil
}

func (r *diaryRepository) Update(ctx context.Context, e models.DiaryEntry) error {
	log := logger.FromContext(ctx).WithPrefix("diary_repo")
	log.Debug("updating diary entry: id=%d", e.ID)

	_, err := r.db.ExecContext(ctx, `
UPDATE diary_entries
SET native_text = ?, target_text = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND learner_id = ?
`, e.NativeText, e.TargetText, e.ID, e.LearnerID)
	if err != nil {
		log.Error("failed to update diary entry: %v", err)
	}
	return err
}

func (r *diaryRepository) SetCorrectedText(ctx context.Context, id int64, learnerID int64, text string) error {
	log := logger.FromContext(ctx).WithPrefix("diary_repo")
	log.Debug("setting corrected text: id=%d", id)

	_, err := r.db.ExecContext(ctx, `
UPDATE diary_entries
SET corrected_text = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = ? AND learner_id = ?
`, text, id, learnerID)
	if err != nil {
		log.Error("failed to set corrected text: %v", err)
	}
	return err
}

func (r *diaryRepository) Delete(ctx context.Context, id int64, learnerID int64) error {
	log := logger.FromContext(ctx).WithPrefix("diary_repo")
	log.Debug("deleting diary entry: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM diary_entries WHERE id = ? AND learner_id = ?`, id, learnerID)
	if err != nil {
		log.Error("failed to delete diary entry: %v", err)
	}
	return err
}
