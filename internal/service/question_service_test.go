package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"quizgen/internal/domain"
	"quizgen/internal/service"
	"quizgen/mocks"
)

func TestQuestionService_Create_InvalidQType(t *testing.T) {
	repo := new(mocks.MockQuestionRepo)
	svc := service.NewQuestionService(repo)

	err := svc.Create(context.Background(), &domain.Question{
		TeacherID:    "t-1",
		QuestionText: "What is water?",
		QType:        "essay",
		Difficulty:   domain.DifficultyEasy,
	})

	assert.ErrorIs(t, err, domain.ErrInvalidQType)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestQuestionService_Create_InvalidDifficulty(t *testing.T) {
	repo := new(mocks.MockQuestionRepo)
	svc := service.NewQuestionService(repo)

	err := svc.Create(context.Background(), &domain.Question{
		TeacherID:    "t-1",
		QuestionText: "What is water?",
		QType:        domain.QTypeMCQ,
		Difficulty:   "impossible",
	})

	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)
}

func TestQuestionService_Create_Success(t *testing.T) {
	repo := new(mocks.MockQuestionRepo)
	svc := service.NewQuestionService(repo)

	q := &domain.Question{
		TeacherID:    "t-1",
		QuestionText: "What is water?",
		AnswerText:   "H2O",
		QType:        domain.QTypeShortAnswer,
		Difficulty:   domain.DifficultyEasy,
	}
	repo.On("Create", mock.Anything, q).Return(nil)

	err := svc.Create(context.Background(), q)

	assert.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestQuestionService_List_FilterValidation(t *testing.T) {
	repo := new(mocks.MockQuestionRepo)
	svc := service.NewQuestionService(repo)

	_, _, err := svc.List(context.Background(), domain.QuestionFilter{QType: "essay"}, 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidQType)

	_, _, err = svc.List(context.Background(), domain.QuestionFilter{Difficulty: "brutal"}, 0, 10)
	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)
}

func TestQuestionService_List_PassesThrough(t *testing.T) {
	repo := new(mocks.MockQuestionRepo)
	svc := service.NewQuestionService(repo)

	filter := domain.QuestionFilter{TeacherID: "t-1", QType: domain.QTypeMCQ}
	expected := []domain.Question{{ID: 1, TeacherID: "t-1"}}
	repo.On("List", mock.Anything, filter, 20, 10).Return(expected, 41, nil)

	got, total, err := svc.List(context.Background(), filter, 20, 10)

	assert.NoError(t, err)
	assert.Equal(t, expected, got)
	assert.Equal(t, 41, total)
}

func TestQuestionService_Update_InvalidDifficulty(t *testing.T) {
	repo := new(mocks.MockQuestionRepo)
	svc := service.NewQuestionService(repo)

	bad := domain.Difficulty("brutal")
	_, err := svc.Update(context.Background(), 1, domain.QuestionUpdate{Difficulty: &bad})

	assert.ErrorIs(t, err, domain.ErrInvalidDifficulty)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestQuestionService_DeleteByTeacher(t *testing.T) {
	repo := new(mocks.MockQuestionRepo)
	svc := service.NewQuestionService(repo)

	repo.On("DeleteByTeacher", mock.Anything, "t-1").Return(int64(7), nil)

	deleted, err := svc.DeleteByTeacher(context.Background(), "t-1")

	assert.NoError(t, err)
	assert.Equal(t, int64(7), deleted)
}
