package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mvales/lingolog/internal/models"
)

// MockStatsRepository is a mock implementation of repository.StatsRepository
type MockStatsRepository struct {
	mock.Mock
}

func (m *MockStatsRepository) LearnerStats(ctx context.Context, learnerID int64, todayStart, todayEnd time.Time) (*models.LearnerStats, error) {
	args := m.Called(ctx, learnerID, todayStart, todayEnd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.LearnerStats), args.Error(1)
}
