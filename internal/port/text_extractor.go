package port

import (
	"context"

	"quizgen/internal/domain"
)

// TextExtractor turns an uploaded document on the local filesystem into
// corrected text. This is the single contract the rest of the system has
// with the OCR/correction core.
type TextExtractor interface {
	Extract(ctx context.Context, filePath string) (*domain.ExtractionResult, error)
}
