package services

import (
	"context"
	"strings"

	"github.com/mvales/lingolog/internal/errors"
	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/repository"
)

// LearnerService handles learner profile business logic
type LearnerService interface {
	Get(ctx context.Context, id int64) (*models.Learner, error)
	List(ctx context.Context) ([]models.Learner, error)
	Create(ctx context.Context, name string, native, target models.Language) (*models.Learner, error)
	SetPremium(ctx context.Context, id int64, premium bool) error
	Delete(ctx context.Context, id int64) error
}

type learnerService struct {
	learners repository.LearnerRepository
}

// NewLearnerService creates a new LearnerService
func NewLearnerService(learners repository.LearnerRepository) LearnerService {
	return &learnerService{learners: learners}
}

func (s *learnerService) Get(ctx context.Context, id int64) (*models.Learner, error) {
	l, err := s.learners.Get(ctx, id)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	if l == nil {
		return nil, errors.NewNotFoundError("learner", id)
	}
	return l, nil
}

func (s *learnerService) List(ctx context.Context) ([]models.Learner, error) {
	learners, err := s.learners.List(ctx)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}
	return learners, nil
}

func (s *learnerService) Create(ctx context.Context, name string, native, target models.Language) (*models.Learner, error) {
	log := logger.FromContext(ctx)
	log.Debug("creating learner: name=%s", name)

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must not be empty")
	}
	if native == target {
		return nil, errors.NewValidationError("target_language", "must differ from native language")
	}

	id, err := s.learners.Insert(ctx, models.Learner{
		Name:           name,
		NativeLanguage: native,
		TargetLanguage: target,
	})
	if err != nil {
		log.Error("failed to insert learner: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return s.Get(ctx, id)
}

func (s *learnerService) SetPremium(ctx context.Context, id int64, premium bool) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.learners.SetPremium(ctx, id, premium); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}

func (s *learnerService) Delete(ctx context.Context, id int64) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.learners.Delete(ctx, id); err != nil {
		return errors.NewInternalError(err)
	}
	return nil
}
