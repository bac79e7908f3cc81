package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"quizgen/internal/domain"
)

func TestBuildQuestionWhereEmptyFilter(t *testing.T) {
	clause, args := buildQuestionWhere(domain.QuestionFilter{})
	assert.Empty(t, clause)
	assert.Empty(t, args)
}

func TestBuildQuestionWhereSingleFilter(t *testing.T) {
	clause, args := buildQuestionWhere(domain.QuestionFilter{TeacherID: "t-1"})
	assert.Equal(t, "WHERE teacher_id = $1", clause)
	assert.Equal(t, []interface{}{"t-1"}, args)
}

func TestBuildQuestionWhereNumbersArgsInOrder(t *testing.T) {
	clause, args := buildQuestionWhere(domain.QuestionFilter{
		TeacherID:  "t-1",
		QType:      domain.QTypeMCQ,
		Difficulty: domain.DifficultyHard,
		Subject:    "biology",
		ClassID:    "c-9",
	})
	assert.Equal(t,
		"WHERE teacher_id = $1 AND qtype = $2 AND difficulty = $3 AND subject = $4 AND class_id = $5",
		clause)
	assert.Len(t, args, 5)
	assert.Equal(t, domain.DifficultyHard, args[2])
}

func TestNullableJSON(t *testing.T) {
	assert.Nil(t, nullableJSON(nil))
	assert.Equal(t, []byte(`["a"]`), nullableJSON([]byte(`["a"]`)))
}
