package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"quizgen/internal/domain"
	"quizgen/internal/port"
)

type questionRepo struct {
	db *sqlx.DB
}

// NewQuestionRepo creates a new PostgreSQL-backed QuestionRepository.
func NewQuestionRepo(db *sqlx.DB) port.QuestionRepository {
	return &questionRepo{db: db}
}

func (r *questionRepo) Create(ctx context.Context, q *domain.Question) error {
	now := time.Now().UTC()
	q.CreatedAt = now
	q.UpdatedAt = now
	if len(q.Metadata) == 0 {
		q.Metadata = json.RawMessage(`{}`)
	}

	query := `INSERT INTO questions
		(teacher_id, question_text, answer_text, choices, rationale, qtype,
		 difficulty, class_id, subject, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	err := r.db.QueryRowxContext(ctx, query,
		q.TeacherID, q.QuestionText, q.AnswerText, nullableJSON(q.Choices), q.Rationale,
		q.QType, q.Difficulty, q.ClassID, q.Subject, q.Metadata,
		q.CreatedAt, q.UpdatedAt).Scan(&q.ID)
	if err != nil {
		return fmt.Errorf("questionRepo.Create: %w", err)
	}
	return nil
}

func (r *questionRepo) CreateBatch(ctx context.Context, qs []domain.Question) ([]domain.Question, error) {
	if len(qs) == 0 {
		return nil, nil
	}
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("questionRepo.CreateBatch begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	query := `INSERT INTO questions
		(teacher_id, question_text, answer_text, choices, rationale, qtype,
		 difficulty, class_id, subject, metadata, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`

	for i := range qs {
		qs[i].CreatedAt = now
		qs[i].UpdatedAt = now
		if len(qs[i].Metadata) == 0 {
			qs[i].Metadata = json.RawMessage(`{}`)
		}
		err := tx.QueryRowxContext(ctx, query,
			qs[i].TeacherID, qs[i].QuestionText, qs[i].AnswerText, nullableJSON(qs[i].Choices),
			qs[i].Rationale, qs[i].QType, qs[i].Difficulty, qs[i].ClassID, qs[i].Subject,
			qs[i].Metadata, qs[i].CreatedAt, qs[i].UpdatedAt).Scan(&qs[i].ID)
		if err != nil {
			return nil, fmt.Errorf("questionRepo.CreateBatch insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("questionRepo.CreateBatch commit: %w", err)
	}
	return qs, nil
}

func (r *questionRepo) GetByID(ctx context.Context, id int64) (*domain.Question, error) {
	var q domain.Question
	err := r.db.GetContext(ctx, &q, "SELECT * FROM questions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("questionRepo.GetByID: %w", err)
	}
	return &q, nil
}

// buildQuestionWhere constructs a dynamic WHERE clause for question queries.
// It returns the clause string (possibly empty) and the positional arguments.
func buildQuestionWhere(filter domain.QuestionFilter) (clause string, args []interface{}) {
	argN := 1
	add := func(cond string, val interface{}) {
		if clause == "" {
			clause = "WHERE "
		} else {
			clause += " AND "
		}
		clause += fmt.Sprintf(cond, argN)
		args = append(args, val)
		argN++
	}

	if filter.TeacherID != "" {
		add("teacher_id = $%d", filter.TeacherID)
	}
	if filter.QType != "" {
		add("qtype = $%d", filter.QType)
	}
	if filter.Difficulty != "" {
		add("difficulty = $%d", filter.Difficulty)
	}
	if filter.Subject != "" {
		add("subject = $%d", filter.Subject)
	}
	if filter.ClassID != "" {
		add("class_id = $%d", filter.ClassID)
	}
	return clause, args
}

func (r *questionRepo) List(ctx context.Context, filter domain.QuestionFilter, offset, limit int) ([]domain.Question, int, error) {
	clause, args := buildQuestionWhere(filter)

	var total int
	err := r.db.GetContext(ctx, &total,
		fmt.Sprintf("SELECT COUNT(*) FROM questions %s", clause), args...)
	if err != nil {
		return nil, 0, fmt.Errorf("questionRepo.List count: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT * FROM questions %s ORDER BY created_at DESC, id DESC LIMIT $%d OFFSET $%d",
		clause, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var questions []domain.Question
	if err := r.db.SelectContext(ctx, &questions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("questionRepo.List: %w", err)
	}
	return questions, total, nil
}

func (r *questionRepo) Update(ctx context.Context, id int64, update domain.QuestionUpdate) (*domain.Question, error) {
	current, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.QuestionText != nil {
		current.QuestionText = *update.QuestionText
	}
	if update.AnswerText != nil {
		current.AnswerText = *update.AnswerText
	}
	if update.Choices != nil {
		encoded, err := json.Marshal(update.Choices)
		if err != nil {
			return nil, fmt.Errorf("questionRepo.Update choices: %w", err)
		}
		current.Choices = encoded
	}
	if update.Rationale != nil {
		current.Rationale = *update.Rationale
	}
	if update.Difficulty != nil {
		current.Difficulty = *update.Difficulty
	}
	if update.ClassID != nil {
		current.ClassID = *update.ClassID
	}
	if update.Subject != nil {
		current.Subject = *update.Subject
	}
	current.UpdatedAt = time.Now().UTC()

	query := `UPDATE questions SET
		question_text = $1, answer_text = $2, choices = $3, rationale = $4,
		difficulty = $5, class_id = $6, subject = $7, updated_at = $8
		WHERE id = $9`
	result, err := r.db.ExecContext(ctx, query,
		current.QuestionText, current.AnswerText, nullableJSON(current.Choices),
		current.Rationale, current.Difficulty, current.ClassID, current.Subject,
		current.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("questionRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return nil, domain.ErrQuestionNotFound
	}
	return current, nil
}

func (r *questionRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM questions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("questionRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrQuestionNotFound
	}
	return nil
}

func (r *questionRepo) DeleteByTeacher(ctx context.Context, teacherID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM questions WHERE teacher_id = $1", teacherID)
	if err != nil {
		return 0, fmt.Errorf("questionRepo.DeleteByTeacher: %w", err)
	}
	rows, _ := result.RowsAffected()
	return rows, nil
}

// nullableJSON maps empty JSON payloads to NULL so jsonb columns stay
// NULL rather than holding empty strings.
func nullableJSON(raw json.RawMessage) interface{} {
	if len(raw) == 0 {
		return nil
	}
	return []byte(raw)
}
