package extract

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"quizgen/internal/domain"
	"quizgen/internal/ocr"
)

// ImageRecognizer produces text from encoded image bytes.
type ImageRecognizer interface {
	BestText(ctx context.Context, imageBytes []byte) (string, error)
}

// Corrector cleans up raw recognized text.
type Corrector interface {
	Correct(text string) string
}

// Adapter implements port.TextExtractor. It routes a document to the
// cheapest extraction path that works: the PDF text layer when it is
// present and trustworthy, OCR over embedded page images otherwise,
// and direct OCR for plain image files. The result carries a
// confidence grade reflecting which path produced it.
type Adapter struct {
	recognizer    ImageRecognizer
	corrector     Corrector
	maxPDFPages   int
	minTextLayer  int
	maxConcurrent int
	unitTimeout   time.Duration
}

// Config tunes the adapter. Zero values fall back to defaults; a zero
// UnitTimeout disables the per-unit deadline.
type Config struct {
	MaxPDFPages   int
	MinTextLayer  int
	MaxConcurrent int
	UnitTimeout   time.Duration
}

// NewAdapter creates an extraction adapter.
func NewAdapter(recognizer ImageRecognizer, corrector Corrector, cfg Config) *Adapter {
	if cfg.MaxPDFPages < 1 {
		cfg.MaxPDFPages = 10
	}
	if cfg.MinTextLayer < 1 {
		cfg.MinTextLayer = 50
	}
	if cfg.MaxConcurrent < 1 {
		cfg.MaxConcurrent = 4
	}
	return &Adapter{
		recognizer:    recognizer,
		corrector:     corrector,
		maxPDFPages:   cfg.MaxPDFPages,
		minTextLayer:  cfg.MinTextLayer,
		maxConcurrent: cfg.MaxConcurrent,
		unitTimeout:   cfg.UnitTimeout,
	}
}

// bestText runs recognition under the per-unit deadline, if one is set.
func (a *Adapter) bestText(ctx context.Context, imageBytes []byte) (string, error) {
	if a.unitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.unitTimeout)
		defer cancel()
	}
	return a.recognizer.BestText(ctx, imageBytes)
}

// Extract pulls text from a document on disk.
func (a *Adapter) Extract(ctx context.Context, filePath string) (*domain.ExtractionResult, error) {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".pdf":
		return a.extractPDF(ctx, filePath)
	case ".jpg", ".jpeg", ".png":
		return a.extractImage(ctx, filePath)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFileType, filepath.Ext(filePath))
	}
}

func (a *Adapter) extractPDF(ctx context.Context, filePath string) (*domain.ExtractionResult, error) {
	text, err := textLayer(filePath)
	if err != nil {
		return nil, err
	}
	if usableTextLayer(text, a.minTextLayer) {
		return &domain.ExtractionResult{
			Text:        a.corrector.Correct(text),
			Confidence:  domain.ConfidenceHigh,
			Description: "pdf text layer",
		}, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading pdf: %w", err)
	}
	info, err := inspectPDF(data)
	if err != nil {
		return nil, err
	}
	if len(info.imagePages) == 0 {
		return nil, fmt.Errorf("%w: pdf has no text layer and no page images", domain.ErrNoTextExtracted)
	}

	images, err := embeddedImages(data)
	if err != nil {
		return nil, err
	}
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no decodable page images", domain.ErrNoTextExtracted)
	}
	if len(images) > a.maxPDFPages {
		log.Printf("extract: pdf has %d page images, processing first %d", len(images), a.maxPDFPages)
		images = images[:a.maxPDFPages]
	}

	texts, failed := a.recognizePages(ctx, images)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: recognition failed on all %d page images", domain.ErrNoTextExtracted, len(images))
	}

	confidence := domain.ConfidenceMedium
	if failed > 0 {
		confidence = domain.ConfidenceLow
	}
	return &domain.ExtractionResult{
		Text:        strings.Join(texts, "\n\n"),
		Confidence:  confidence,
		Description: fmt.Sprintf("ocr over %d page images (%d failed)", len(images), failed),
	}, nil
}

// recognizePages OCRs page images concurrently while keeping page
// order in the output. Failed or empty pages are dropped; failures are
// counted so the caller can degrade the confidence grade.
func (a *Adapter) recognizePages(ctx context.Context, images []image.Image) ([]string, int) {
	results := make([]string, len(images))
	failures := make([]bool, len(images))
	sem := make(chan struct{}, a.maxConcurrent)
	var wg sync.WaitGroup
	for i, img := range images {
		wg.Add(1)
		go func(i int, img image.Image) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				failures[i] = true
				return
			}
			png, err := ocr.EncodePNG(img)
			if err != nil {
				log.Printf("extract: encoding page %d failed: %v", i+1, err)
				failures[i] = true
				return
			}
			text, err := a.bestText(ctx, png)
			if err != nil {
				if !errors.Is(err, domain.ErrNoTextRecognized) {
					log.Printf("extract: page %d recognition failed: %v", i+1, err)
					failures[i] = true
				}
				return
			}
			results[i] = a.corrector.Correct(text)
		}(i, img)
	}
	wg.Wait()

	var texts []string
	failed := 0
	for i, text := range results {
		if failures[i] {
			failed++
			continue
		}
		if text != "" {
			texts = append(texts, text)
		}
	}
	return texts, failed
}

func (a *Adapter) extractImage(ctx context.Context, filePath string) (*domain.ExtractionResult, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}
	text, err := a.bestText(ctx, data)
	if err != nil {
		if errors.Is(err, domain.ErrNoTextRecognized) {
			return nil, fmt.Errorf("%w: %v", domain.ErrNoTextExtracted, err)
		}
		return nil, err
	}
	corrected := a.corrector.Correct(text)

	confidence := domain.ConfidenceMedium
	if len(corrected) > 10 {
		confidence = domain.ConfidenceHigh
	}
	return &domain.ExtractionResult{
		Text:        corrected,
		Confidence:  confidence,
		Description: "image ocr",
	}, nil
}
