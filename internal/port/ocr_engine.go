package port

import "context"

// WordBox is a single recognized token with its engine-reported confidence
// (0–1) and pixel bounding box.
type WordBox struct {
	Text       string
	Confidence float64
	X          int
	Y          int
	Width      int
	Height     int
}

// EngineProfile selects an OCR engine configuration: page segmentation
// assumption plus engine variables. No single profile is reliably best
// across document layouts, so candidates are generated under several.
type EngineProfile struct {
	Name        string
	PageSegMode int
	Variables   map[string]string
}

// OCREngine abstracts a word-level OCR engine. Implementations must be
// safe for concurrent use across unrelated documents.
type OCREngine interface {
	// Recognize runs OCR over PNG-encoded image bytes under the given
	// profile and returns word-level detections in engine order.
	Recognize(ctx context.Context, png []byte, profile EngineProfile) ([]WordBox, error)
}
