package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quizgen/internal/domain"
)

// MockQuestionRepo is a mock implementation of port.QuestionRepository.
type MockQuestionRepo struct {
	mock.Mock
}

func (m *MockQuestionRepo) Create(ctx context.Context, q *domain.Question) error {
	args := m.Called(ctx, q)
	return args.Error(0)
}

func (m *MockQuestionRepo) CreateBatch(ctx context.Context, qs []domain.Question) ([]domain.Question, error) {
	args := m.Called(ctx, qs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockQuestionRepo) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepo) List(ctx context.Context, filter domain.QuestionFilter, offset, limit int) ([]domain.Question, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Question), args.Int(1), args.Error(2)
}

func (m *MockQuestionRepo) Update(ctx context.Context, id int64, update domain.QuestionUpdate) (*domain.Question, error) {
	args := m.Called(ctx, id, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Question), args.Error(1)
}

func (m *MockQuestionRepo) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepo) DeleteByTeacher(ctx context.Context, teacherID string) (int64, error) {
	args := m.Called(ctx, teacherID)
	return args.Get(0).(int64), args.Error(1)
}
