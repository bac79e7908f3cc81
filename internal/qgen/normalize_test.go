package qgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quizgen/internal/domain"
)

func TestParseQuestionsWrapperObject(t *testing.T) {
	content := `{"questions":[{"question":"What is water made of?","answer":"Hydrogen and oxygen","choices":["Hydrogen and oxygen","Only hydrogen","Only oxygen","Carbon"],"rationale":"H2O is two hydrogen atoms and one oxygen atom."}]}`

	qs, err := ParseQuestions(content, domain.QTypeMCQ, domain.DifficultyEasy)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "What is water made of?", qs[0].Question)
	assert.Equal(t, "Hydrogen and oxygen", qs[0].Answer)
	assert.Len(t, qs[0].Choices, 4)
	assert.Equal(t, domain.QTypeMCQ, qs[0].QType)
	assert.Equal(t, domain.DifficultyEasy, qs[0].Difficulty)
}

func TestParseQuestionsBareArray(t *testing.T) {
	content := `[{"question":"The sky is blue.","answer":"True","rationale":"Rayleigh scattering."}]`

	qs, err := ParseQuestions(content, domain.QTypeTrueFalse, domain.DifficultyMedium)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "True", qs[0].Answer)
	assert.Empty(t, qs[0].Choices)
}

func TestParseQuestionsStripsCodeFences(t *testing.T) {
	content := "```json\n{\"questions\":[{\"question\":\"Q?\",\"answer\":\"A\"}]}\n```"

	qs, err := ParseQuestions(content, domain.QTypeShortAnswer, domain.DifficultyHard)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "Q?", qs[0].Question)
}

func TestParseQuestionsAcceptsOptionsField(t *testing.T) {
	content := `{"questions":[{"question":"Q?","answer":"two","options":["one","two","three","four"]}]}`

	qs, err := ParseQuestions(content, domain.QTypeMCQ, domain.DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three", "four"}, qs[0].Choices)
}

func TestParseQuestionsMapsLetterAnswer(t *testing.T) {
	content := `{"questions":[{"question":"Q?","answer":"B","choices":["alpha","beta","gamma","delta"]}]}`

	qs, err := ParseQuestions(content, domain.QTypeMCQ, domain.DifficultyEasy)
	require.NoError(t, err)
	assert.Equal(t, "beta", qs[0].Answer)
}

func TestParseQuestionsPadsChoices(t *testing.T) {
	content := `{"questions":[{"question":"Q?","answer":"yes","choices":["yes","no"]}]}`

	qs, err := ParseQuestions(content, domain.QTypeMCQ, domain.DifficultyEasy)
	require.NoError(t, err)
	assert.Len(t, qs[0].Choices, 4)
	assert.Equal(t, "yes", qs[0].Choices[0])
}

func TestParseQuestionsSkipsIncomplete(t *testing.T) {
	content := `{"questions":[{"question":"","answer":"A"},{"question":"Valid?","answer":"yes"}]}`

	qs, err := ParseQuestions(content, domain.QTypeShortAnswer, domain.DifficultyEasy)
	require.NoError(t, err)
	require.Len(t, qs, 1)
	assert.Equal(t, "Valid?", qs[0].Question)
}

func TestParseQuestionsRejectsGarbage(t *testing.T) {
	_, err := ParseQuestions("the model refused to answer", domain.QTypeMCQ, domain.DifficultyEasy)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)

	_, err = ParseQuestions(`{"questions":[]}`, domain.QTypeMCQ, domain.DifficultyEasy)
	assert.ErrorIs(t, err, domain.ErrGenerationFailed)
}

func TestResolveLetterAnswerOutOfRange(t *testing.T) {
	assert.Equal(t, "E", resolveLetterAnswer("E", []string{"a", "b", "c", "d"}))
	assert.Equal(t, "c", resolveLetterAnswer("c)", []string{"a", "b", "c", "d"}))
	assert.Equal(t, "whole answer", resolveLetterAnswer("whole answer", []string{"a", "b"}))
}
