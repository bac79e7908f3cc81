package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"quizgen/internal/domain"
	"quizgen/internal/service"
)

// MockGenerationService is a mock implementation of service.GenerationService.
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) ExtractFromFile(ctx context.Context, fileID uuid.UUID) (*domain.ExtractionResult, error) {
	args := m.Called(ctx, fileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExtractionResult), args.Error(1)
}

func (m *MockGenerationService) GenerateFromFile(ctx context.Context, fileID uuid.UUID, req service.GenerateRequest) ([]domain.Question, error) {
	args := m.Called(ctx, fileID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}

func (m *MockGenerationService) GenerateFromText(ctx context.Context, text string, req service.GenerateRequest) ([]domain.Question, error) {
	args := m.Called(ctx, text, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Question), args.Error(1)
}
