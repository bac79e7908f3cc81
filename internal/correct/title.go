package correct

import "strings"

// SplitTitle detects a heading fused into the first line of OCR output
// and separates it from the body with a paragraph break. Candidate
// split positions are scored against the configured keyword lists; if
// no candidate reaches the acceptance threshold the text is returned
// with terminal punctuation ensured but otherwise unchanged.
//
// The scoring is deterministic and re-running it on already split text
// picks the same boundary, so the stage is stable under repetition.
func (p *Pipeline) SplitTitle(text string) string {
	words := strings.Fields(text)
	if len(words) <= p.opts.TitleMinWords {
		return ensureTerminal(text)
	}

	hi := p.opts.TitleSplitHi
	if hi > len(words) {
		hi = len(words)
	}

	bestScore := 0
	bestSplit := -1
	for i := p.opts.TitleSplitLo; i < hi; i++ {
		score := p.scoreSplit(words, i)
		if score > bestScore {
			bestScore = score
			bestSplit = i
		}
	}
	if bestSplit < 0 || bestScore < p.opts.TitleAcceptScore {
		return ensureTerminal(text)
	}

	title := strings.Join(words[:bestSplit], " ")
	body := strings.Join(words[bestSplit:], " ")
	return ensureTerminal(title) + "\n\n" + ensureTerminal(body)
}

// scoreSplit rates the split before words[i]. Title keywords on the
// title side and content indicators opening the body both count in
// favor; early splits get a small bonus and a content indicator sitting
// exactly on the boundary is the strongest signal.
func (p *Pipeline) scoreSplit(words []string, i int) int {
	score := 0

	titlePart := strings.ToLower(strings.Join(words[:i], " "))
	for _, kw := range p.opts.TitleKeywords {
		if strings.Contains(titlePart, kw) {
			score += 2
			break
		}
	}

	for j := i; j < i+2 && j < len(words); j++ {
		if p.isContentIndicator(words[j]) {
			score += 2
			break
		}
	}

	if i <= 5 {
		score++
	}
	if p.isContentIndicator(words[i]) {
		score += 3
	}
	return score
}

func (p *Pipeline) isContentIndicator(word string) bool {
	key := wordKey(word)
	for _, ind := range p.opts.ContentIndicators {
		if key == ind {
			return true
		}
	}
	return false
}

func ensureTerminal(text string) string {
	text = strings.TrimSpace(text)
	if text != "" && !strings.ContainsAny(text[len(text)-1:], ".!?") {
		text += "."
	}
	return text
}
