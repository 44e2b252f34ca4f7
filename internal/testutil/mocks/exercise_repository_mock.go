package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mvales/lingolog/internal/models"
)

// MockExerciseRepository is a mock implementation of repository.ExerciseRepository
type MockExerciseRepository struct {
	mock.Mock
}

func (m *MockExerciseRepository) Get(ctx context.Context, id int64, learnerID int64) (*models.Exercise, error) {
	args := m.Called(ctx, id, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) List(ctx context.Context, filter models.ExerciseFilter) ([]models.Exercise, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exercise), args.Error(1)
}

func (m *MockExerciseRepository) Count(ctx context.Context, filter models.ExerciseFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockExerciseRepository) InsertBatch(ctx context.Context, exercises []models.Exercise) ([]int64, error) {
	args := m.Called(ctx, exercises)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

func (m *MockExerciseRepository) SetCompleted(ctx context.Context, id int64, learnerID int64, completed bool) error {
	args := m.Called(ctx, id, learnerID, completed)
	return args.Error(0)
}

func (m *MockExerciseRepository) Delete(ctx context.Context, id int64, learnerID int64) error {
	args := m.Called(ctx, id, learnerID)
	return args.Error(0)
}

func (m *MockExerciseRepository) ReviewPool(ctx context.Context, learnerID int64, asOf time.Time) ([]models.ExerciseWithAttempts, error) {
	args := m.Called(ctx, learnerID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ExerciseWithAttempts), args.Error(1)
}
