package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mvales/lingolog/internal/models"
)

// MockAttemptRepository is a mock implementation of repository.AttemptRepository
type MockAttemptRepository struct {
	mock.Mock
}

func (m *MockAttemptRepository) Insert(ctx context.Context, a models.Attempt) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockAttemptRepository) SetJudgment(ctx context.Context, id int64, remembered bool) error {
	args := m.Called(ctx, id, remembered)
	return args.Error(0)
}

func (m *MockAttemptRepository) ListForExercise(ctx context.Context, exerciseID int64) ([]models.Attempt, error) {
	args := m.Called(ctx, exerciseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Attempt), args.Error(1)
}

func (m *MockAttemptRepository) CountForLearnerBetween(ctx context.Context, learnerID int64, from, to time.Time) (int, error) {
	args := m.Called(ctx, learnerID, from, to)
	return args.Int(0), args.Error(1)
}
