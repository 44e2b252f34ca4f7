package services

import (
	"context"
	"strings"
	"time"

	"github.com/mvales/lingolog/internal/errors"
	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/repository"
	"github.com/mvales/lingolog/internal/review"
)

// DiaryService handles diary-entry business logic, including the
// free-tier date gate and correction ingest.
type DiaryService interface {
	Get(ctx context.Context, learner *models.Learner, id int64) (*models.DiaryEntry, error)
	List(ctx context.Context, filter models.DiaryFilter) ([]models.DiaryEntry, int, error)
	Create(ctx context.Context, learner *models.Learner, entryDate time.Time, nativeText, targetText string) (*models.DiaryEntry, error)
	Update(ctx context.Context, learner *models.Learner, id int64, nativeText, targetText string) (*models.DiaryEntry, error)
	Delete(ctx context.Context, learner *models.Learner, id int64) error
	// AttachCorrection stores the externally produced correction and
	// derives one exercise per corrected expression.
	AttachCorrection(ctx context.Context, learner *models.Learner, id int64, correction models.Correction) ([]models.Exercise, error)
}

type diaryService struct {
	diary     repository.DiaryRepository
	exercises repository.ExerciseRepository
}

// NewDiaryService creates a new DiaryService
func NewDiaryService(diary repository.DiaryRepository, exercises repository.ExerciseRepository) DiaryService {
	return &diaryService{diary: diary, exercises: exercises}
}

func (s *diaryService) Get(ctx context.Context, learner *models.Learner, id int64) (*models.DiaryEntry, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting diary entry: id=%d", id)

	entry, err := s.diary.Get(ctx, id, learner.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if entry == nil {
		return nil, errors.NewNotFoundError("diary entry", id)
	}
	return entry, nil
}

func (s *diaryService) List(ctx context.Context, filter models.DiaryFilter) ([]models.DiaryEntry, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing diary entries: learner_id=%d", filter.LearnerID)

	entries, err := s.diary.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.diary.Count(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	return entries, total, nil
}

func (s *diaryService) Create(ctx context.Context, learner *models.Learner, entryDate time.Time, nativeText, targetText string) (*models.DiaryEntry, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating diary entry: learner_id=%d, date=%s", learner.ID, entryDate.Format("2006-01-02"))

	if strings.TrimSpace(nativeText) == "" {
		return nil, errors.NewValidationError("native_text", "must not be empty")
	}
	if err := review.CheckEntryDateAllowed(learner.Tier(), entryDate, time.Now()); err != nil {
		log.Info("diary date gate rejected entry: learner_id=%d, date=%s", learner.ID, entryDate.Format("2006-01-02"))
		return nil, err
	}

	existing, err := s.diary.GetByDate(ctx, learner.ID, entryDate)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if existing != nil {
		return nil, errors.NewConflictError("an entry for this date already exists")
	}

	id, err := s.diary.Insert(ctx, models.DiaryEntry{
		LearnerID:  learner.ID,
		EntryDate:  entryDate,
		NativeText: nativeText,
		TargetText: targetText,
	})
	if err != nil {
		log.Error("failed to insert diary entry: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.Get(ctx, learner, id)
}

func (s *diaryService) Update(ctx context.Context, learner *models.Learner, id int64, nativeText, targetText string) (*models.DiaryEntry, error) {
	log := logger.FromContext(ctx)
	log.Debug("updating diary entry: id=%d", id)

	entry, err := s.Get(ctx, learner, id)
	if err != nil {
		return nil, err
	}
	// The date gate applies to updates too: a free learner cannot edit
	// past entries.
	if err := review.CheckEntryDateAllowed(learner.Tier(), entry.EntryDate, time.Now()); err != nil {
		return nil, err
	}

	entry.NativeText = nativeText
	entry.TargetText = targetText
	if err := s.diary.Update(ctx, *entry); err != nil {
		log.Error("failed to update diary entry: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.Get(ctx, learner, id)
}

func (s *diaryService) Delete(ctx context.Context, learner *models.Learner, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting diary entry: id=%d", id)

	if _, err := s.Get(ctx, learner, id); err != nil {
		return err
	}
	if err := s.diary.Delete(ctx, id, learner.ID); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *diaryService) AttachCorrection(ctx context.Context, learner *models.Learner, id int64, correction models.Correction) ([]models.Exercise, error) {
	log := logger.FromContext(ctx)
	log.Debug("attaching correction: entry_id=%d, expressions=%d", id, len(correction.Expressions))

	if strings.TrimSpace(correction.CorrectedText) == "" {
		return nil, errors.NewValidationError("corrected_text", "must not be empty")
	}

	entry, err := s.Get(ctx, learner, id)
	if err != nil {
		return nil, err
	}
	if err := s.diary.SetCorrectedText(ctx, entry.ID, learner.ID, correction.CorrectedText); err != nil {
		log.Error("failed to store corrected text: %v", err)
		return nil, errors.NewInternalError(err)
	}

	today := time.Now()
	exercises := make([]models.Exercise, 0, len(correction.Expressions))
	for _, expr := range correction.Expressions {
		if strings.TrimSpace(expr.NativeText) == "" || strings.TrimSpace(expr.TargetText) == "" {
			continue
		}
		exercises = append(exercises, models.Exercise{
			LearnerID:      learner.ID,
			DiaryEntryID:   &entry.ID,
			NativeText:     expr.NativeText,
			TargetText:     expr.TargetText,
			NativeLanguage: learner.NativeLanguage,
			TargetLanguage: learner.TargetLanguage,
			ScheduledDate:  today,
		})
	}
	if len(exercises) == 0 {
		log.Debug("correction produced no exercises")
		return []models.Exercise{}, nil
	}

	ids, err := s.exercises.InsertBatch(ctx, exercises)
	if err != nil {
		log.Error("failed to insert exercises: %v", err)
		return nil, errors.NewInternalError(err)
	}
	for i := range ids {
		exercises[i].ID = ids[i]
	}
	log.Info("correction attached: entry_id=%d, exercises=%d", id, len(exercises))
	return exercises, nil
}
