package correct

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	lowerUpperRe     = regexp.MustCompile(`([a-z])([A-Z])`)
	sentenceUpperRe  = regexp.MustCompile(`([.!?])([A-Z])`)
	spaceBeforePunct = regexp.MustCompile(`[ \t]+([.,!?;:])`)
	punctThenLetter  = regexp.MustCompile(`([.,!?;:])[ \t]*([A-Za-z])`)
	openParenRe      = regexp.MustCompile(`[ \t]*\([ \t]*`)
	closeParenRe     = regexp.MustCompile(`[ \t]*\)[ \t]*`)
	spaceRunRe       = regexp.MustCompile(`[ \t]+`)
	makRe            = regexp.MustCompile(`(?i)\bmak\b`)
	removedSymbolsRe = regexp.MustCompile(`[\[\]{}<>]`)
	allowedCharsRe   = regexp.MustCompile(`[^\p{L}\p{N}\s.,!?;:\-'"()]`)
)

// mergedWordFixes repairs word pairs tesseract commonly fuses. Patterns
// are word-bounded so substrings inside longer words stay untouched.
var mergedWordFixes = []struct {
	re  *regexp.Regexp
	out string
}{
	{regexp.MustCompile(`\bIfyou\b`), "If you"},
	{regexp.MustCompile(`\bifyou\b`), "if you"},
	{regexp.MustCompile(`\bYouare\b`), "You are"},
	{regexp.MustCompile(`\byouare\b`), "you are"},
	{regexp.MustCompile(`\byearsago\b`), "years ago"},
	{regexp.MustCompile(`\bforentrepreneurs\b`), "for entrepreneurs"},
	{regexp.MustCompile(`\bItis\b`), "It is"},
	{regexp.MustCompile(`\bitis\b`), "it is"},
}

// fixCharacterSubstitutions replaces a small set of unambiguous OCR
// character confusions. Only substitutions that are safe in every
// context are applied here; anything ambiguous is left alone.
func (p *Pipeline) fixCharacterSubstitutions(text string) string {
	text = strings.ReplaceAll(text, "|", "I")
	return replaceStandaloneZero(text)
}

// replaceStandaloneZero rewrites the digit 0 to the letter O when it is
// not part of a number. A 0 adjacent to another digit or to a decimal
// or thousands separator is numeric and must never be altered.
func replaceStandaloneZero(text string) string {
	runes := []rune(text)
	for i, r := range runes {
		if r != '0' {
			continue
		}
		if i > 0 && numericContext(runes[i-1]) {
			continue
		}
		if i < len(runes)-1 && numericContext(runes[i+1]) {
			continue
		}
		runes[i] = 'O'
	}
	return string(runes)
}

func numericContext(r rune) bool {
	return unicode.IsDigit(r) || r == '.' || r == ','
}

// fixSevereDistortions collapses runs of three or more identical
// characters down to two and tidies whitespace around punctuation.
// Legitimate double letters survive; longer runs are always noise.
func (p *Pipeline) fixSevereDistortions(text string) string {
	out := spaceBeforePunct.ReplaceAllString(collapseCharRuns(text), "$1")
	return punctThenLetter.ReplaceAllString(out, "$1 $2")
}

func collapseCharRuns(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	var prev rune
	run := 0
	for _, r := range text {
		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}
		if run <= 2 {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// fixRepeatedWords collapses a word repeated in immediate sequence down
// to a single occurrence. Comparison is case-insensitive and ignores
// attached punctuation; the first occurrence is kept so capitalization
// survives, with any trailing punctuation carried over from the last.
// Runs separated by a newline are never collapsed: a paragraph may
// legitimately end and begin with the same word.
func (p *Pipeline) fixRepeatedWords(text string) string {
	tokens, seps := splitTokens(text)
	if len(tokens) < 2 {
		return text
	}
	var outTokens []string
	var outSeps []string
	i := 0
	for i < len(tokens) {
		j := i
		for j+1 < len(tokens) &&
			!strings.ContainsRune(seps[j], '\n') &&
			wordKey(tokens[j+1]) != "" &&
			wordKey(tokens[j+1]) == wordKey(tokens[i]) {
			j++
		}
		kept := tokens[i]
		if j > i {
			if tail := trailingPunct(tokens[j]); tail != "" && trailingPunct(kept) == "" {
				kept += tail
			}
		}
		outTokens = append(outTokens, kept)
		if j < len(seps) {
			outSeps = append(outSeps, seps[j])
		}
		i = j + 1
	}
	var b strings.Builder
	for k, tok := range outTokens {
		b.WriteString(tok)
		if k < len(outSeps) {
			b.WriteString(outSeps[k])
		}
	}
	return b.String()
}

// splitTokens splits text into whitespace-separated tokens and the
// separator runs between them. len(seps) == len(tokens)-1 unless the
// text has trailing whitespace.
func splitTokens(text string) (tokens, seps []string) {
	start := 0
	inSep := false
	for i, r := range text {
		if unicode.IsSpace(r) != inSep {
			if i > start {
				if inSep {
					seps = append(seps, text[start:i])
				} else {
					tokens = append(tokens, text[start:i])
				}
			}
			start = i
			inSep = !inSep
		}
	}
	if start < len(text) {
		if inSep {
			seps = append(seps, text[start:])
		} else {
			tokens = append(tokens, text[start:])
		}
	}
	return tokens, seps
}

// wordKey lowercases a token and strips leading and trailing
// non-alphanumeric characters for repeat comparison. Tokens with no
// alphanumeric core return "" and never participate in collapsing.
func wordKey(tok string) string {
	trimmed := strings.TrimFunc(tok, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	return strings.ToLower(trimmed)
}

func trailingPunct(tok string) string {
	end := len(tok)
	for end > 0 {
		r := rune(tok[end-1])
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			break
		}
		end--
	}
	return tok[end:]
}

// fixBrokenMergedWords inserts the space lost between fused words and
// repairs a table of known mergers, then restores sentence-initial
// capitals so later stages see well-formed sentence starts.
func (p *Pipeline) fixBrokenMergedWords(text string) string {
	text = lowerUpperRe.ReplaceAllString(text, "$1 $2")
	for _, fix := range mergedWordFixes {
		text = fix.re.ReplaceAllString(text, fix.out)
	}
	text = capitalizeAfterSentencePunct(text)
	return spaceBeforePunct.ReplaceAllString(text, "$1")
}

// capitalizeAfterSentencePunct upper-cases the first letter following
// sentence-final punctuation. Digits after a period are untouched, so
// decimal numbers pass through.
func capitalizeAfterSentencePunct(text string) string {
	runes := []rune(text)
	afterSentence := false
	for i, r := range runes {
		switch {
		case r == '.' || r == '!' || r == '?':
			afterSentence = true
		case unicode.IsSpace(r) || r == '"' || r == '\'' || r == ')':
			// carries across closing quotes and space
		case afterSentence && unicode.IsLower(r):
			runes[i] = unicode.ToUpper(r)
			afterSentence = false
		default:
			afterSentence = false
		}
	}
	return string(runes)
}

// fixVerbTenses repairs verb truncations. The table is deliberately
// tiny: only truncations observed to be unambiguous are listed.
func (p *Pipeline) fixVerbTenses(text string) string {
	return makRe.ReplaceAllString(text, "make")
}

// cleanPunctuationSymbols normalizes the character inventory: quotes
// become ASCII, bracket noise is dropped, anything outside the allowed
// set is removed, and spacing around punctuation is regularized. Runs
// of blank lines collapse to a single paragraph break; single newlines
// join into one flowing line.
func (p *Pipeline) cleanPunctuationSymbols(text string) string {
	for _, q := range []string{"“", "”", "„", "`", "´"} {
		text = strings.ReplaceAll(text, q, `"`)
	}
	for _, q := range []string{"‘", "’"} {
		text = strings.ReplaceAll(text, q, "'")
	}
	text = removedSymbolsRe.ReplaceAllString(text, "")
	text = allowedCharsRe.ReplaceAllString(text, "")

	text = normalizeWhitespace(text)
	text = punctThenLetter.ReplaceAllString(text, "$1 $2")
	text = openParenRe.ReplaceAllString(text, " (")
	text = closeParenRe.ReplaceAllString(text, ") ")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}

// normalizeWhitespace collapses horizontal whitespace runs to a single
// space. A run containing two or more newlines is a paragraph break and
// is preserved as exactly "\n\n"; a single newline joins its lines.
func normalizeWhitespace(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	i := 0
	runes := []rune(text)
	for i < len(runes) {
		if !unicode.IsSpace(runes[i]) {
			b.WriteRune(runes[i])
			i++
			continue
		}
		newlines := 0
		for i < len(runes) && unicode.IsSpace(runes[i]) {
			if runes[i] == '\n' {
				newlines++
			}
			i++
		}
		if newlines >= 2 {
			b.WriteString("\n\n")
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// fixCapitalization fixes sentence capitals, preserves known acronyms,
// converts spurious all-caps words to title case and lowercases
// function words mid-sentence. Sections separated by a paragraph break
// are processed independently. The grammar stage's sentence-capital and
// word-split passes run first so this stage sees the token shapes the
// rest of the pipeline converges to.
func (p *Pipeline) fixCapitalization(text string) string {
	text = capitalizeAfterSentencePunct(text)
	text = lowerUpperRe.ReplaceAllString(text, "$1 $2")
	sections := strings.Split(text, "\n\n")
	for i, section := range sections {
		sections[i] = p.capitalizeSection(section)
	}
	return strings.Join(sections, "\n\n")
}

func (p *Pipeline) capitalizeSection(section string) string {
	words := strings.Fields(section)
	if len(words) == 0 {
		return section
	}
	sentenceStart := true
	for i, word := range words {
		core, lead, tail := splitWordCore(word)
		if core != "" {
			words[i] = lead + p.recaseWord(core, sentenceStart) + tail
			sentenceStart = false
		}
		if strings.ContainsAny(tail, ".!?") {
			sentenceStart = true
		}
	}
	return strings.Join(words, " ")
}

// recaseWord settles the casing of one word core. The all-caps check
// runs again after a sentence-start capital is applied, so feeding the
// result back through produces the same word.
func (p *Pipeline) recaseWord(core string, sentenceStart bool) string {
	if isAllCapsWord(core) && !p.opts.Acronyms[core] {
		core = titleCaseWord(core)
	}
	if !sentenceStart && p.opts.FunctionWords[strings.ToLower(core)] {
		return strings.ToLower(core)
	}
	if sentenceStart {
		core = upperFirst(core)
		if isAllCapsWord(core) && !p.opts.Acronyms[core] {
			core = titleCaseWord(core)
		}
	}
	return core
}

// splitWordCore splits a token into leading punctuation, the
// alphanumeric core and trailing punctuation.
func splitWordCore(word string) (core, lead, tail string) {
	runes := []rune(word)
	start := 0
	for start < len(runes) && !isWordRune(runes[start]) {
		start++
	}
	end := len(runes)
	for end > start && !isWordRune(runes[end-1]) {
		end--
	}
	return string(runes[start:end]), string(runes[:start]), string(runes[end:])
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// isAllCapsWord reports whether a word of more than two letters is
// entirely upper case. Short all-caps words like "A" or "OK" are left
// for the acronym list to decide.
func isAllCapsWord(word string) bool {
	letters := 0
	for _, r := range word {
		if unicode.IsLetter(r) {
			if !unicode.IsUpper(r) {
				return false
			}
			letters++
		}
	}
	return letters > 2
}

func titleCaseWord(word string) string {
	return upperFirst(strings.ToLower(word))
}

func upperFirst(word string) string {
	if word == "" {
		return word
	}
	runes := []rune(word)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// fixGrammar enforces sentence spacing: a space after sentence-final
// punctuation and between a lower-case letter run into an upper-case
// one, then re-checks sentence-initial capitals.
func (p *Pipeline) fixGrammar(text string) string {
	text = sentenceUpperRe.ReplaceAllString(text, "$1 $2")
	text = capitalizeAfterSentencePunct(text)
	return lowerUpperRe.ReplaceAllString(text, "$1 $2")
}

// finalCleanup is the closing pass: it re-applies the character
// allow-list, collapses any character runs or word repeats the removals
// uncovered, normalizes spacing paragraph by paragraph and guarantees
// the text ends with sentence punctuation. Paragraph breaks survive.
func (p *Pipeline) finalCleanup(text string) string {
	text = allowedCharsRe.ReplaceAllString(text, "")
	text = collapseCharRuns(text)

	var paragraphs []string
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(spaceRunRe.ReplaceAllString(para, " "))
		if para != "" {
			paragraphs = append(paragraphs, para)
		}
	}
	text = strings.Join(paragraphs, "\n\n")

	text = p.fixRepeatedWords(text)
	text = openParenRe.ReplaceAllString(text, " (")
	text = closeParenRe.ReplaceAllString(text, ") ")
	text = punctThenLetter.ReplaceAllString(text, "$1 $2")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = strings.TrimSpace(text)

	if text != "" && !strings.ContainsAny(text[len(text)-1:], ".!?") {
		text += "."
	}
	return text
}
