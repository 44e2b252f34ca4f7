package services

import (
	"context"
	"time"

	"github.com/mvales/lingolog/internal/errors"
	"github.com/mvales/lingolog/internal/logger"
	"github.com/mvales/lingolog/internal/models"
	"github.com/mvales/lingolog/internal/repository"
	"github.com/mvales/lingolog/internal/review"
)

// StatsService handles statistics-related business logic
type StatsService interface {
	GetLearnerStats(ctx context.Context, learnerID int64) (*models.LearnerStats, error)
}

type statsService struct {
	stats repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(stats repository.StatsRepository) StatsService {
	return &statsService{stats: stats}
}

func (s *statsService) GetLearnerStats(ctx context.Context, learnerID int64) (*models.LearnerStats, error) {
	log := logger.FromContext(ctx)
	log.Debug("getting learner stats: learner_id=%d", learnerID)

	todayStart, todayEnd := review.DayBounds(time.Now())
	stats, err := s.stats.LearnerStats(ctx, learnerID, todayStart, todayEnd)
	if err != nil {
		log.Error("failed to get learner stats: %v", err)
		return nil, errors.NewInternalError(err)
	}
	return stats, nil
}
