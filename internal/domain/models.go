package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Question represents a generated exam question persisted in the question bank.
type Question struct {
	ID           int64           `db:"id" json:"id"`
	TeacherID    string          `db:"teacher_id" json:"teacher_id"`
	QuestionText string          `db:"question_text" json:"question_text"`
	AnswerText   string          `db:"answer_text" json:"answer_text"`
	Choices      json.RawMessage `db:"choices" json:"choices,omitempty"`
	Rationale    string          `db:"rationale" json:"rationale"`
	QType        QType           `db:"qtype" json:"qtype"`
	Difficulty   Difficulty      `db:"difficulty" json:"difficulty"`
	ClassID      string          `db:"class_id" json:"class_id,omitempty"`
	Subject      string          `db:"subject" json:"subject,omitempty"`
	Metadata     json.RawMessage `db:"metadata" json:"metadata,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// ChoiceList decodes the JSONB choices column into a string slice.
// Returns nil for questions without choices (true/false, short answer).
func (q *Question) ChoiceList() []string {
	if len(q.Choices) == 0 {
		return nil
	}
	var choices []string
	if err := json.Unmarshal(q.Choices, &choices); err != nil {
		return nil
	}
	return choices
}

// QuestionFilter narrows question listings. Zero values mean "no filter".
type QuestionFilter struct {
	TeacherID  string
	QType      QType
	Difficulty Difficulty
	Subject    string
	ClassID    string
}

// QuestionUpdate carries the editable question fields. Nil pointers leave
// the stored value unchanged.
type QuestionUpdate struct {
	QuestionText *string
	AnswerText   *string
	Choices      []string
	Rationale    *string
	Difficulty   *Difficulty
	ClassID      *string
	Subject      *string
}

// FileMeta represents metadata for an uploaded source document.
type FileMeta struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	UploadedBy   string     `db:"uploaded_by" json:"uploaded_by"`
	FileName     string     `db:"file_name" json:"file_name"`
	OriginalName string     `db:"original_name" json:"original_name"`
	FileType     FileType   `db:"file_type" json:"file_type"`
	FileSize     int64      `db:"file_size" json:"file_size"`
	S3Bucket     string     `db:"s3_bucket" json:"s3_bucket"`
	S3Key        string     `db:"s3_key" json:"s3_key"`
	ContentType  string     `db:"content_type" json:"content_type"`
	Status       FileStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// ExtractionResult is the outcome of extracting and correcting text from
// one uploaded document. It is created once per file and never mutated.
type ExtractionResult struct {
	Text        string     `json:"text"`
	Confidence  Confidence `json:"confidence"`
	Description string     `json:"description"`
}

// GeneratedQuestion is one question as produced by the LLM generator,
// before persistence assigns IDs and timestamps.
type GeneratedQuestion struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Choices    []string   `json:"choices,omitempty"`
	Rationale  string     `json:"rationale"`
	QType      QType      `json:"qtype"`
	Difficulty Difficulty `json:"difficulty"`
}
