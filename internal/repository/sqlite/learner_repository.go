package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/repository"
)

type learnerRepository struct {
	db *sql.DB
}

// NewLearnerRepository creates a new LearnerRepository implementation
func NewLearnerRepository(db *sql.DB) repository.LearnerRepository {
	return &learnerRepository{db: db}
}

func (r *learnerRepository) Get(ctx context.Context, id int64) (*models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("getting learner: id=%d", id)

	var l models.Learner
	err := r.db.QueryRowContext(ctx, `
SELECT id, name, native_language, target_language, is_premium, created_at
FROM learners
WHERE id = ?
`, id).Scan(&l.ID, &l.Name, &l.NativeLanguage, &l.TargetLanguage, &l.IsPremium, &l.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		log.Debug("learner not found: id=%d", id)
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get learner: %v", err)
		return nil, err
	}
	return &l, nil
}

func (r *learnerRepository) List(ctx context.Context) ([]models.Learner, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("listing learners")

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, native_language, target_language, is_premium, created_at
FROM learners
ORDER BY created_at ASC
`)
	if err != nil {
		log.Error("failed to list learners: %v", err)
		return nil, err
	}
	defer rows.Close()

	var learners []models.Learner
	for rows.Next() {
		var l models.Learner
		if err := rows.Scan(&l.ID, &l.Name, &l.NativeLanguage, &l.TargetLanguage, &l.IsPremium, &l.CreatedAt); err != nil {
			log.Error("failed to scan learner row: %v", err)
			return nil, err
		}
		learners = append(learners, l)
	}
	log.Debug("found %d learners", len(learners))
	return learners, rows.Err()
}

func (r *learnerRepository) Insert(ctx context.Context, l models.Learner) (int64, error) {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("inserting learner: name=%s", l.Name)

	res, err := r.db.ExecContext(ctx, `
INSERT INTO learners (name, native_language, target_language, is_premium)
VALUES (?, ?, ?, ?)
`, l.Name, l.NativeLanguage, l.TargetLanguage, l.IsPremium)
	if err != nil {
		log.Error("failed to insert learner: %v", err)
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		log.Error("failed to get learner id: %v", err)
		return 0, err
	}
	log.Debug("learner inserted: id=%d", id)
	return id, nil
}

func (r *learnerRepository) SetPremium(ctx context.Context, id int64, premium bool) error {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("setting premium: id=%d, premium=%v", id, premium)

	_, err := r.db.ExecContext(ctx, `UPDATE learners SET is_premium = ? WHERE id = ?`, premium, id)
	if err != nil {
		log.Error("failed to set premium: %v", err)
	}
	return err
}

func (r *learnerRepository) Delete(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx).WithPrefix("learner_repo")
	log.Debug("deleting learner: id=%d", id)

	_, err := r.db.ExecContext(ctx, `DELETE FROM learners WHERE id = ?`, id)
	if err != nil {
		log.Error("failed to delete learner: %v", err)
	}
	return err
}
