package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"quizgen/internal/domain"
	"quizgen/internal/port"
)

// MockQuestionGenerator is a mock implementation of port.QuestionGenerator.
type MockQuestionGenerator struct {
	mock.Mock
}

func (m *MockQuestionGenerator) Generate(ctx context.Context, input port.GenerateInput) ([]domain.GeneratedQuestion, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GeneratedQuestion), args.Error(1)
}
