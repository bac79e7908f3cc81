package port

import (
	"context"

	"quizgen/internal/domain"
)

// GenerateInput carries the corrected text and generation parameters.
type GenerateInput struct {
	Text         string
	Description  string
	QType        domain.QType
	Difficulty   domain.Difficulty
	NumQuestions int
}

// QuestionGenerator abstracts LLM-based exam question synthesis.
type QuestionGenerator interface {
	Generate(ctx context.Context, input GenerateInput) ([]domain.GeneratedQuestion, error)
}
