package ocr

import (
	"context"
	"fmt"

	"github.com/otiai10/gosseract/v2"

	"quizgen/internal/domain"
	"quizgen/internal/port"
)

// Tesseract implements port.OCREngine on top of the tesseract C API.
// A fresh client is created per call: gosseract clients are not safe
// for concurrent use and per-call construction keeps the engine
// stateless. Concurrency is bounded by the caller.
type Tesseract struct {
	language string
}

// NewTesseract creates an engine recognizing the given language.
func NewTesseract(language string) *Tesseract {
	if language == "" {
		language = "eng"
	}
	return &Tesseract{language: language}
}

// Recognize runs tesseract over PNG bytes with the given profile and
// returns per-word boxes with confidence on a 0..1 scale. The
// underlying C call cannot be interrupted, so on context cancellation
// the call returns early and the worker finishes in the background.
func (t *Tesseract) Recognize(ctx context.Context, png []byte, profile port.EngineProfile) ([]port.WordBox, error) {
	type result struct {
		words []port.WordBox
		err   error
	}
	ch := make(chan result, 1)
	go func() {
		words, err := t.recognize(png, profile)
		ch <- result{words, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		return res.words, res.err
	}
}

func (t *Tesseract) recognize(png []byte, profile port.EngineProfile) ([]port.WordBox, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return nil, fmt.Errorf("%w: language %q: %v", domain.ErrEngineUnavailable, t.language, err)
	}
	if err := client.SetPageSegMode(gosseract.PageSegMode(profile.PageSegMode)); err != nil {
		return nil, fmt.Errorf("setting segmentation mode %d: %w", profile.PageSegMode, err)
	}
	for name, value := range profile.Variables {
		if err := client.SetVariable(gosseract.SettableVariable(name), value); err != nil {
			return nil, fmt.Errorf("setting variable %s: %w", name, err)
		}
	}
	if err := client.SetImageFromBytes(png); err != nil {
		return nil, fmt.Errorf("loading image: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEngineUnavailable, err)
	}

	words := make([]port.WordBox, 0, len(boxes))
	for _, box := range boxes {
		words = append(words, port.WordBox{
			Text:       box.Word,
			Confidence: box.Confidence / 100,
			X:          box.Box.Min.X,
			Y:          box.Box.Min.Y,
			Width:      box.Box.Dx(),
			Height:     box.Box.Dy(),
		})
	}
	return words, nil
}
