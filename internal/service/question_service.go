package service

import (
	"context"
	"log"

	"quizgen/internal/domain"
	"quizgen/internal/port"
)

// QuestionService defines the question bank contract.
type QuestionService interface {
	Create(ctx context.Context, q *domain.Question) error
	GetByID(ctx context.Context, id int64) (*domain.Question, error)
	List(ctx context.Context, filter domain.QuestionFilter, offset, limit int) ([]domain.Question, int, error)
	Update(ctx context.Context, id int64, update domain.QuestionUpdate) (*domain.Question, error)
	Delete(ctx context.Context, id int64) error
	DeleteByTeacher(ctx context.Context, teacherID string) (int64, error)
}

type questionService struct {
	questionRepo port.QuestionRepository
}

// NewQuestionService creates a new QuestionService implementation.
func NewQuestionService(questionRepo port.QuestionRepository) QuestionService {
	return &questionService{questionRepo: questionRepo}
}

func (s *questionService) Create(ctx context.Context, q *domain.Question) error {
	if !domain.ValidQTypes[q.QType] {
		return domain.ErrInvalidQType
	}
	if !domain.ValidDifficulties[q.Difficulty] {
		return domain.ErrInvalidDifficulty
	}
	return s.questionRepo.Create(ctx, q)
}

func (s *questionService) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

func (s *questionService) List(ctx context.Context, filter domain.QuestionFilter, offset, limit int) ([]domain.Question, int, error) {
	if filter.QType != "" && !domain.ValidQTypes[filter.QType] {
		return nil, 0, domain.ErrInvalidQType
	}
	if filter.Difficulty != "" && !domain.ValidDifficulties[filter.Difficulty] {
		return nil, 0, domain.ErrInvalidDifficulty
	}
	return s.questionRepo.List(ctx, filter, offset, limit)
}

func (s *questionService) Update(ctx context.Context, id int64, update domain.QuestionUpdate) (*domain.Question, error) {
	if update.Difficulty != nil && !domain.ValidDifficulties[*update.Difficulty] {
		return nil, domain.ErrInvalidDifficulty
	}
	return s.questionRepo.Update(ctx, id, update)
}

func (s *questionService) Delete(ctx context.Context, id int64) error {
	return s.questionRepo.Delete(ctx, id)
}

func (s *questionService) DeleteByTeacher(ctx context.Context, teacherID string) (int64, error) {
	deleted, err := s.questionRepo.DeleteByTeacher(ctx, teacherID)
	if err != nil {
		return 0, err
	}
	log.Printf("questionService.DeleteByTeacher: deleted %d questions for teacher %s", deleted, teacherID)
	return deleted, nil
}
