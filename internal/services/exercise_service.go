package services

import (
	"context"

	"github.com/mvales/lingolog/internal/errors"
	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/repository"
)

// ExerciseService handles exercise management outside the review flow.
type ExerciseService interface {
	Get(ctx context.Context, learner *models.Learner, id int64) (*models.Exercise, error)
	List(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, int, error)
	SetCompleted(ctx context.Context, learner *models.Learner, id int64, completed bool) error
	Delete(ctx context.Context, learner *models.Learner, id int64) error
	History(ctx context.Context, learner *models.Learner, id int64) ([]models.Attempt, error)
}

type exerciseService struct {
	exercises repository.ExerciseRepository
	attempts  repository.AttemptRepository
}

// NewExerciseService creates a new ExerciseService
func NewExerciseService(exercises repository.ExerciseRepository, attempts repository.AttemptRepository) ExerciseService {
	return &exerciseService{exercises: exercises, attempts: attempts}
}

func (s *exerciseService) Get(ctx context.Context, learner *models.Learner, id int64) (*models.Exercise, error) {
	ex, err := s.exercises.Get(ctx, id, learner.ID)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if ex == nil {
		return nil, errors.NewNotFoundError("exercise", id)
	}
	return ex, nil
}

func (s *exerciseService) List(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, int, error) {
	log := logger.FromContext(ctx)
	log.Debug("listing exercises: learner_id=%d", filter.LearnerID)

	exercises, err := s.exercises.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	total, err := s.exercises.Count(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewInternalError(err)
	}
	return exercises, total, nil
}

func (s *exerciseService) SetCompleted(ctx context.Context, learner *models.Learner, id int64, completed bool) error {
	log := logger.FromContext(ctx)
	log.Debug("toggling exercise completion: id=%d, completed=%v", id, completed)

	if _, err := s.Get(ctx, learner, id); err != nil {
		return err
	}
	if err := s.exercises.SetCompleted(ctx, id, learner.ID, completed); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *exerciseService) Delete(ctx context.Context, learner *models.Learner, id int64) error {
	log := logger.FromContext(ctx)
	log.Debug("deleting exercise: id=%d", id)

	if _, err := s.Get(ctx, learner, id); err != nil {
		return err
	}
	if err := s.exercises.Delete(ctx, id, learner.ID); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *exerciseService) History(ctx context.Context, learner *models.Learner, id int64) ([]models.Attempt, error) {
	if _, err := s.Get(ctx, learner, id); err != nil {
		return nil, err
	}
	attempts, err := s.attempts.ListForExercise(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return attempts, nil
}
