package ocr

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"runtime"
	"sync"

	"github.com/disintegration/imaging"

	"quizgen/internal/domain"
	"quizgen/internal/port"
)

// Candidate is one recognition attempt: a preprocessing variant run
// through one engine profile, with its reconstructed text and score.
type Candidate struct {
	Variant string
	Profile string
	Text    string
	Score   float64
	Words   int
}

// Recognizer produces text from a single image by racing every
// preprocessing variant against every engine profile and keeping the
// highest-scoring reconstruction.
type Recognizer struct {
	engine  port.OCREngine
	scorer  *Scorer
	workers int
}

// NewRecognizer creates a recognizer. workers bounds concurrent engine
// calls; values below 1 fall back to the CPU count.
func NewRecognizer(engine port.OCREngine, scorer *Scorer, workers int) *Recognizer {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	return &Recognizer{engine: engine, scorer: scorer, workers: workers}
}

// BestText decodes image bytes and returns the best candidate's text.
// It fails with domain.ErrNoTextRecognized when no attempt produced
// any usable text.
func (r *Recognizer) BestText(ctx context.Context, imageBytes []byte) (string, error) {
	img, err := imaging.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMalformedDocument, err)
	}
	candidates, err := r.Candidates(ctx, img)
	if err != nil {
		return "", err
	}
	best, err := SelectBest(candidates)
	if err != nil {
		return "", err
	}
	return best.Text, nil
}

// Candidates runs every variant/profile combination and returns the
// scored results in a fixed order. Individual attempt failures are
// logged and skipped; the method fails only when the context is
// canceled or every attempt failed.
func (r *Recognizer) Candidates(ctx context.Context, img image.Image) ([]Candidate, error) {
	variants := Variants()
	profiles := Profiles()

	type encoded struct {
		name string
		png  []byte
	}
	pngs := make([]encoded, 0, len(variants))
	for _, v := range variants {
		png, err := EncodePNG(v.Apply(img))
		if err != nil {
			log.Printf("ocr: encoding variant %s failed: %v", v.Name, err)
			continue
		}
		pngs = append(pngs, encoded{name: v.Name, png: png})
	}
	if len(pngs) == 0 {
		return nil, fmt.Errorf("%w: no variant could be encoded", domain.ErrMalformedDocument)
	}

	type attempt struct {
		variant string
		png     []byte
		profile port.EngineProfile
	}
	attempts := make([]attempt, 0, len(pngs)*len(profiles))
	for _, e := range pngs {
		for _, p := range profiles {
			attempts = append(attempts, attempt{variant: e.name, png: e.png, profile: p})
		}
	}

	results := make([]*Candidate, len(attempts))
	errs := make([]error, len(attempts))
	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup
	for i, a := range attempts {
		wg.Add(1)
		go func(i int, a attempt) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if ctx.Err() != nil {
				errs[i] = ctx.Err()
				return
			}
			words, err := r.engine.Recognize(ctx, a.png, a.profile)
			if err != nil {
				errs[i] = err
				return
			}
			kept := r.scorer.Filter(words)
			text := r.scorer.Text(kept)
			results[i] = &Candidate{
				Variant: a.variant,
				Profile: a.profile.Name,
				Text:    text,
				Score:   r.scorer.Score(text),
				Words:   len(kept),
			}
		}(i, a)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(results))
	for i, res := range results {
		if res == nil {
			log.Printf("ocr: attempt %s/%s failed: %v", attempts[i].variant, attempts[i].profile.Name, errs[i])
			continue
		}
		candidates = append(candidates, *res)
	}
	if len(candidates) == 0 {
		for _, err := range errs {
			if err != nil {
				return nil, fmt.Errorf("all recognition attempts failed: %w", err)
			}
		}
		return nil, domain.ErrNoTextRecognized
	}
	return candidates, nil
}

// SelectBest picks the highest-scoring candidate with non-empty text.
// Ties keep the earliest candidate, so selection is deterministic for
// a fixed attempt order.
func SelectBest(candidates []Candidate) (Candidate, error) {
	best := -1
	for i, c := range candidates {
		if c.Text == "" {
			continue
		}
		if best < 0 || c.Score > candidates[best].Score {
			best = i
		}
	}
	if best < 0 {
		return Candidate{}, domain.ErrNoTextRecognized
	}
	return candidates[best], nil
}
