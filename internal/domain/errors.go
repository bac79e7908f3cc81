package domain

import "errors"

var (
	ErrNotFound            = errors.New("resource not found")
	ErrQuestionNotFound    = errors.New("question not found")
	ErrFileNotFound        = errors.New("file not found")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
	ErrInvalidQType        = errors.New("invalid question type")
	ErrInvalidDifficulty   = errors.New("invalid difficulty level")

	// ErrNoTextRecognized signals OCR produced nothing usable for a unit
	// (image or PDF page) after every preprocessing variant and engine
	// profile was tried. Non-fatal at the document level.
	ErrNoTextRecognized = errors.New("no text recognized by OCR")

	// ErrEngineUnavailable signals the OCR engine could not initialize
	// (missing tesseract binary or language data). Fatal for extraction.
	ErrEngineUnavailable = errors.New("ocr engine unavailable")

	// ErrMalformedDocument signals the input file could not be decoded.
	ErrMalformedDocument = errors.New("document cannot be decoded")

	// ErrNoTextExtracted signals every unit of a document failed; the
	// whole extraction is reported as an error.
	ErrNoTextExtracted = errors.New("no text could be extracted from document")

	// ErrGenerationFailed signals the LLM provider returned no usable
	// questions after all retries.
	ErrGenerationFailed = errors.New("question generation failed")
)
