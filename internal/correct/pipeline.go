package correct

import "strings"

// Options holds the tunable policy knobs of the correction pipeline.
// The title-detection thresholds and word lists encode policy decisions
// open to tuning, so they are configuration rather than inlined constants.
type Options struct {
	// TitleMinWords is the minimum word count before a title/body split
	// is attempted. Short text has no meaningful title/body distinction.
	TitleMinWords int

	// TitleSplitLo and TitleSplitHi bound the candidate split positions,
	// measured in words from the start (inclusive lo, exclusive hi).
	TitleSplitLo int
	TitleSplitHi int

	// TitleAcceptScore is the minimum score at which a split is accepted.
	TitleAcceptScore int

	// TitleKeywords are words whose presence on the title side of a
	// candidate split raises its score.
	TitleKeywords []string

	// ContentIndicators are words that typically open body content.
	ContentIndicators []string

	// Acronyms are preserved in upper case by the capitalization stage.
	// All-caps words longer than two characters that are not listed here
	// are treated as an OCR artifact and converted to title case.
	Acronyms map[string]bool

	// FunctionWords are forced to lower case mid-sentence.
	FunctionWords map[string]bool
}

// DefaultOptions returns the pipeline defaults.
func DefaultOptions() Options {
	return Options{
		TitleMinWords:    8,
		TitleSplitLo:     3,
		TitleSplitHi:     8,
		TitleAcceptScore: 3,
		TitleKeywords: []string{
			"models", "api", "service", "features",
			"supported", "available", "overview", "introduction",
		},
		ContentIndicators: []string{
			"supports", "provides", "offers", "enables", "allows",
			"helps", "can", "that", "for", "with",
		},
		Acronyms: map[string]bool{
			"OCR": true, "API": true, "URL": true, "HTTP": true,
			"HTTPS": true, "JSON": true, "XML": true, "HTML": true,
			"CSS": true, "SQL": true,
		},
		FunctionWords: map[string]bool{
			"the": true, "and": true, "of": true, "to": true,
			"in": true, "on": true, "at": true, "by": true,
			"for": true, "with": true, "from": true, "is": true,
			"are": true, "was": true, "were": true, "a": true,
			"an": true,
		},
	}
}

// Stage is one named rewriting pass of the pipeline.
type Stage struct {
	Name  string
	Apply func(string) string
}

// Pipeline applies the ordered sequence of OCR correction stages.
// Every stage is a pure function on strings; the pipeline holds no
// mutable state and is safe for concurrent use.
type Pipeline struct {
	opts   Options
	stages []Stage
}

// New creates a Pipeline with default options.
func New() *Pipeline {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a Pipeline with the given options.
func NewWithOptions(opts Options) *Pipeline {
	p := &Pipeline{opts: opts}
	p.stages = []Stage{
		{"character_substitutions", p.fixCharacterSubstitutions},
		{"severe_distortions", p.fixSevereDistortions},
		{"repeated_words", p.fixRepeatedWords},
		{"broken_merged_words", p.fixBrokenMergedWords},
		{"verb_tenses", p.fixVerbTenses},
		{"punctuation_symbols", p.cleanPunctuationSymbols},
		{"title_structure", p.SplitTitle},
		{"capitalization", p.fixCapitalization},
		{"grammar", p.fixGrammar},
		{"final_cleanup", p.finalCleanup},
	}
	return p
}

// Stages returns the ordered stage list. Reordering is not supported:
// later stages assume the invariants established by earlier ones.
func (p *Pipeline) Stages() []Stage {
	return p.stages
}

// Correct runs the full correction pipeline over raw OCR text.
// Empty or whitespace-only input returns "" without invoking any stage.
// Corrections are mechanical and orthographic only; the pipeline never
// paraphrases or introduces words not inferable from the input.
func (p *Pipeline) Correct(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	out := strings.TrimSpace(text)
	for _, stage := range p.stages {
		out = stage.Apply(out)
	}
	return out
}
