package ocr

import (
	"sort"
	"strings"
	"unicode"

	"quizgen/internal/port"
)

const (
	// lineHeightFactor bounds the vertical distance, as a fraction of
	// word height, at which two words still belong to the same line.
	lineHeightFactor = 0.8

	// garbagePenalty weights characters outside the allowed set when
	// scoring candidate texts. Garbage costs more than real text earns
	// so a noisy long candidate loses to a clean shorter one.
	garbagePenalty = 1.2
)

// Scorer turns raw word boxes into line-structured text and rates
// candidate outputs against each other.
type Scorer struct {
	minConfidence float64
}

// NewScorer creates a scorer dropping words below minConfidence.
func NewScorer(minConfidence float64) *Scorer {
	return &Scorer{minConfidence: minConfidence}
}

// Filter drops low-confidence word boxes. Words of three or more
// characters are kept regardless: the engine underreports confidence
// on longer words far more often than it hallucinates them.
func (s *Scorer) Filter(words []port.WordBox) []port.WordBox {
	kept := make([]port.WordBox, 0, len(words))
	for _, w := range words {
		text := strings.TrimSpace(w.Text)
		if text == "" {
			continue
		}
		if w.Confidence > s.minConfidence || len(text) >= 3 {
			kept = append(kept, w)
		}
	}
	return kept
}

// Text reconstructs reading-order text from word boxes. Words are
// ordered top-to-bottom then left-to-right and grouped into lines by
// vertical proximity to the previous word, so a line that drifts
// gradually across a skewed page stays one line; lines are joined with
// newlines.
func (s *Scorer) Text(words []port.WordBox) string {
	if len(words) == 0 {
		return ""
	}
	sorted := make([]port.WordBox, len(words))
	copy(sorted, words)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Y != sorted[j].Y {
			return sorted[i].Y < sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var lines []string
	var current []port.WordBox
	for _, w := range sorted {
		if len(current) == 0 {
			current = append(current, w)
			continue
		}
		prev := current[len(current)-1]
		limit := float64(prev.Height) * lineHeightFactor
		if limit < 1 {
			limit = 1
		}
		if float64(abs(w.Y-prev.Y)) < limit {
			current = append(current, w)
			continue
		}
		lines = append(lines, joinLine(current))
		current = []port.WordBox{w}
	}
	lines = append(lines, joinLine(current))
	return strings.Join(lines, "\n")
}

func joinLine(words []port.WordBox) string {
	sort.SliceStable(words, func(i, j int) bool { return words[i].X < words[j].X })
	parts := make([]string, 0, len(words))
	for _, w := range words {
		parts = append(parts, strings.TrimSpace(w.Text))
	}
	return strings.Join(parts, " ")
}

// Score rates a candidate text: alphanumeric characters count for it,
// characters outside the allowed set count against it at a premium.
// Whitespace and common punctuation are neutral.
func (s *Scorer) Score(text string) float64 {
	var alnum, garbage int
	for _, r := range text {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			alnum++
		case unicode.IsSpace(r):
		case strings.ContainsRune(`.,!?;:-'"()`, r):
		default:
			garbage++
		}
	}
	return float64(alnum) - garbagePenalty*float64(garbage)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
