package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/mvales/lingolog/internal/models"
)

// MockDiaryRepository is a mock implementation of repository.DiaryRepository
type MockDiaryRepository struct {
	mock.Mock
}

func (m *MockDiaryRepository) Get(ctx context.Context, id int64, learnerID int64) (*models.DiaryEntry, error) {
	args := m.Called(ctx, id, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiaryEntry), args.Error(1)
}

func (m *MockDiaryRepository) GetByDate(ctx context.Context, learnerID int64, date time.Time) (*models.DiaryEntry, error) {
	args := m.Called(ctx, learnerID, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DiaryEntry), args.Error(1)
}

func (m *MockDiaryRepository) List(ctx context.Context, filter models.DiaryFilter) ([]models.DiaryEntry, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DiaryEntry), args.Error(1)
}

func (m *MockDiaryRepository) Count(ctx context.Context, filter models.DiaryFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockDiaryRepository) Insert(ctx context.Context, e models.DiaryEntry) (int64, error) {
	args := m.Called(ctx, e)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDiaryRepository) Update(ctx context.Context, e models.DiaryEntry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockDiaryRepository) SetCorrectedText(ctx context.Context, id int64, learnerID int64, text string) error {
	args := m.Called(ctx, id, learnerID, text)
	return args.Error(0)
}

func (m *MockDiaryRepository) Delete(ctx context.Context, id int64, learnerID int64) error {
	args := m.Called(ctx, id, learnerID)
	return args.Error(0)
}
