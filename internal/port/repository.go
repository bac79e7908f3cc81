package port

import (
	"context"

	"github.com/google/uuid"

	"quizgen/internal/domain"
)

// QuestionRepository defines the contract for question persistence.
type QuestionRepository interface {
	Create(ctx context.Context, q *domain.Question) error
	CreateBatch(ctx context.Context, qs []domain.Question) ([]domain.Question, error)
	GetByID(ctx context.Context, id int64) (*domain.Question, error)
	List(ctx context.Context, filter domain.QuestionFilter, offset, limit int) ([]domain.Question, int, error)
	Update(ctx context.Context, id int64, update domain.QuestionUpdate) (*domain.Question, error)
	Delete(ctx context.Context, id int64) error
	DeleteByTeacher(ctx context.Context, teacherID string) (int64, error)
}

// FileMetaRepository defines the contract for uploaded-file metadata persistence.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, fileID uuid.UUID) (*domain.FileMeta, error)
	List(ctx context.Context, offset, limit int) ([]domain.FileMeta, int, error)
	UpdateStatus(ctx context.Context, fileID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, fileID uuid.UUID) error
}
