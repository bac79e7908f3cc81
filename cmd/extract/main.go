// Command extract runs text extraction against a local document and prints
// the corrected text. Useful for tuning OCR settings without the full server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"quizgen/internal/correct"
	"quizgen/internal/extract"
	"quizgen/internal/ocr"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		filePath      = flag.String("file", "", "path to a PDF, JPG, or PNG document")
		language      = flag.String("lang", "eng", "OCR language")
		minConfidence = flag.Float64("min-confidence", 0.4, "minimum word confidence (0-1)")
		maxPages      = flag.Int("max-pages", 10, "maximum PDF pages to process")
		timeout       = flag.Duration("timeout", 5*time.Minute, "overall extraction timeout")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		return fmt.Errorf("missing required -file flag")
	}

	engine := ocr.NewTesseract(*language)
	scorer := ocr.NewScorer(*minConfidence)
	recognizer := ocr.NewRecognizer(engine, scorer, 0)
	extractor := extract.NewAdapter(recognizer, correct.New(), extract.Config{
		MaxPDFPages: *maxPages,
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	start := time.Now()
	result, err := extractor.Extract(ctx, *filePath)
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	fmt.Printf("confidence: %s (took %s)\n\n", result.Confidence, time.Since(start).Round(time.Millisecond))
	fmt.Println(result.Text)
	return nil
}
