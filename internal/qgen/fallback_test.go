package qgen

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizgen/internal/domain"
	"quizgen/internal/port"
)

// stubGenerator returns a fixed result or error and counts calls.
type stubGenerator struct {
	questions []domain.GeneratedQuestion
	err       error
	calls     int
}

func (s *stubGenerator) Generate(context.Context, port.GenerateInput) ([]domain.GeneratedQuestion, error) {
	s.calls++
	return s.questions, s.err
}

func oneQuestion(text string) []domain.GeneratedQuestion {
	return []domain.GeneratedQuestion{{Question: text, Answer: "a"}}
}

func TestFallbackFirstGeneratorWins(t *testing.T) {
	primary := &stubGenerator{questions: oneQuestion("from primary")}
	secondary := &stubGenerator{questions: oneQuestion("from secondary")}
	f := NewFallbackGenerator([]port.QuestionGenerator{primary, secondary}, []string{"primary", "secondary"})

	qs, err := f.Generate(context.Background(), port.GenerateInput{})
	require.NoError(t, err)
	assert.Equal(t, "from primary", qs[0].Question)
	assert.Zero(t, secondary.calls)
}

func TestFallbackMovesToSecondaryOnError(t *testing.T) {
	primary := &stubGenerator{err: errors.New("boom")}
	secondary := &stubGenerator{questions: oneQuestion("from secondary")}
	f := NewFallbackGenerator([]port.QuestionGenerator{primary, secondary}, []string{"primary", "secondary"})

	qs, err := f.Generate(context.Background(), port.GenerateInput{})
	require.NoError(t, err)
	assert.Equal(t, "from secondary", qs[0].Question)
}

func TestFallbackOpensCircuitOnRateLimit(t *testing.T) {
	primary := &stubGenerator{err: NewRateLimitError("primary", errors.New("429"), 300)}
	secondary := &stubGenerator{questions: oneQuestion("from secondary")}
	f := NewFallbackGenerator([]port.QuestionGenerator{primary, secondary}, []string{"primary", "secondary"})

	_, err := f.Generate(context.Background(), port.GenerateInput{})
	require.NoError(t, err)

	// Second call skips the rate-limited primary entirely.
	_, err = f.Generate(context.Background(), port.GenerateInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 2, secondary.calls)
}

func TestFallbackAllRateLimited(t *testing.T) {
	primary := &stubGenerator{err: NewRateLimitError("primary", errors.New("429"), 60)}
	secondary := &stubGenerator{err: NewRateLimitError("secondary", errors.New("429"), 120)}
	f := NewFallbackGenerator([]port.QuestionGenerator{primary, secondary}, []string{"primary", "secondary"})

	_, err := f.Generate(context.Background(), port.GenerateInput{})
	var rlErr *RateLimitError
	require.ErrorAs(t, err, &rlErr)
	assert.Equal(t, "all", rlErr.Provider)
}

func TestFallbackAllFailed(t *testing.T) {
	primary := &stubGenerator{err: errors.New("first boom")}
	secondary := &stubGenerator{err: errors.New("second boom")}
	f := NewFallbackGenerator([]port.QuestionGenerator{primary, secondary}, []string{"primary", "secondary"})

	_, err := f.Generate(context.Background(), port.GenerateInput{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second boom")
}
