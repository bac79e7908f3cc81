package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"quizgen/internal/domain"
	"quizgen/internal/port"
)

// GenerateRequest is the DTO for question generation requests.
type GenerateRequest struct {
	TeacherID    string
	QType        domain.QType
	Difficulty   domain.Difficulty
	NumQuestions int
	ClassID      string
	Subject      string
	Description  string
}

// GenerationService turns uploaded documents into persisted exam questions.
type GenerationService interface {
	ExtractFromFile(ctx context.Context, fileID uuid.UUID) (*domain.ExtractionResult, error)
	GenerateFromFile(ctx context.Context, fileID uuid.UUID, req GenerateRequest) ([]domain.Question, error)
	GenerateFromText(ctx context.Context, text string, req GenerateRequest) ([]domain.Question, error)
}

type generationService struct {
	fileService  FileService
	questionRepo port.QuestionRepository
	extractor    port.TextExtractor
	generator    port.QuestionGenerator
}

// NewGenerationService creates a new GenerationService implementation.
func NewGenerationService(
	fileService FileService,
	questionRepo port.QuestionRepository,
	extractor port.TextExtractor,
	generator port.QuestionGenerator,
) GenerationService {
	return &generationService{
		fileService:  fileService,
		questionRepo: questionRepo,
		extractor:    extractor,
		generator:    generator,
	}
}

// ExtractFromFile downloads a stored document and runs text extraction on it.
func (s *generationService) ExtractFromFile(ctx context.Context, fileID uuid.UUID) (*domain.ExtractionResult, error) {
	meta, data, err := s.fileService.Download(ctx, fileID)
	if err != nil {
		return nil, err
	}

	// The extractor works on paths, so stage the bytes in a temp file.
	tmpDir, err := os.MkdirTemp("", "quizgen-extract-")
	if err != nil {
		return nil, fmt.Errorf("creating temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	tmpPath := filepath.Join(tmpDir, meta.FileName)
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing temp file: %w", err)
	}

	log.Printf("generationService.ExtractFromFile: extracting text from file %s (%s)", fileID, meta.FileType)
	return s.extractor.Extract(ctx, tmpPath)
}

func (s *generationService) GenerateFromFile(ctx context.Context, fileID uuid.UUID, req GenerateRequest) ([]domain.Question, error) {
	if err := validateGenerateRequest(&req); err != nil {
		return nil, err
	}

	result, err := s.ExtractFromFile(ctx, fileID)
	if err != nil {
		return nil, err
	}

	return s.generate(ctx, result.Text, result.Confidence, fileID.String(), req)
}

func (s *generationService) GenerateFromText(ctx context.Context, text string, req GenerateRequest) ([]domain.Question, error) {
	if err := validateGenerateRequest(&req); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, domain.ErrNoTextExtracted
	}
	return s.generate(ctx, text, "", "", req)
}

func (s *generationService) generate(ctx context.Context, text string, confidence domain.Confidence, sourceFileID string, req GenerateRequest) ([]domain.Question, error) {
	generated, err := s.generator.Generate(ctx, port.GenerateInput{
		Text:         text,
		Description:  req.Description,
		QType:        req.QType,
		Difficulty:   req.Difficulty,
		NumQuestions: req.NumQuestions,
	})
	if err != nil {
		return nil, err
	}

	questions := make([]domain.Question, 0, len(generated))
	for _, g := range generated {
		q, err := toQuestion(g, confidence, sourceFileID, req)
		if err != nil {
			log.Printf("generationService.generate: skipping question: %v", err)
			continue
		}
		questions = append(questions, q)
	}
	if len(questions) == 0 {
		return nil, domain.ErrGenerationFailed
	}

	persisted, err := s.questionRepo.CreateBatch(ctx, questions)
	if err != nil {
		return nil, fmt.Errorf("persisting generated questions: %w", err)
	}

	log.Printf("generationService.generate: persisted %d questions for teacher %s", len(persisted), req.TeacherID)
	return persisted, nil
}

func toQuestion(g domain.GeneratedQuestion, confidence domain.Confidence, sourceFileID string, req GenerateRequest) (domain.Question, error) {
	var choices json.RawMessage
	if len(g.Choices) > 0 {
		b, err := json.Marshal(g.Choices)
		if err != nil {
			return domain.Question{}, fmt.Errorf("encoding choices: %w", err)
		}
		choices = b
	}

	meta := map[string]string{"generated": "true"}
	if confidence != "" {
		meta["extraction_confidence"] = string(confidence)
	}
	if sourceFileID != "" {
		meta["source_file_id"] = sourceFileID
	}
	metadata, err := json.Marshal(meta)
	if err != nil {
		return domain.Question{}, fmt.Errorf("encoding metadata: %w", err)
	}

	return domain.Question{
		TeacherID:    req.TeacherID,
		QuestionText: g.Question,
		AnswerText:   g.Answer,
		Choices:      choices,
		Rationale:    g.Rationale,
		QType:        req.QType,
		Difficulty:   req.Difficulty,
		ClassID:      req.ClassID,
		Subject:      req.Subject,
		Metadata:     metadata,
	}, nil
}

func validateGenerateRequest(req *GenerateRequest) error {
	if !domain.ValidQTypes[req.QType] {
		return domain.ErrInvalidQType
	}
	if !domain.ValidDifficulties[req.Difficulty] {
		return domain.ErrInvalidDifficulty
	}
	if req.NumQuestions <= 0 {
		req.NumQuestions = 5
	}
	if req.NumQuestions > 20 {
		req.NumQuestions = 20
	}
	return nil
}
