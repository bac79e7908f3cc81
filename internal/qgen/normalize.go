package qgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"quizgen/internal/domain"
)

// rawQuestion is the loosely-typed shape LLMs actually return. Models
// disagree on field names, so several spellings are accepted.
type rawQuestion struct {
	Question  string   `json:"question"`
	Text      string   `json:"question_text"`
	Answer    string   `json:"answer"`
	Choices   []string `json:"choices"`
	Options   []string `json:"options"`
	Rationale string   `json:"rationale"`
	Reason    string   `json:"explanation"`
}

// ParseQuestions normalizes a provider's completion text into domain
// questions. It tolerates markdown code fences, a bare array instead
// of the requested wrapper object, "options" in place of "choices" and
// letter answers ("B") in place of the choice text.
func ParseQuestions(content string, qtype domain.QType, difficulty domain.Difficulty) ([]domain.GeneratedQuestion, error) {
	payload := stripCodeFences(content)

	var raws []rawQuestion
	var wrapper struct {
		Questions []rawQuestion `json:"questions"`
	}
	if err := json.Unmarshal([]byte(payload), &wrapper); err == nil && len(wrapper.Questions) > 0 {
		raws = wrapper.Questions
	} else if err := json.Unmarshal([]byte(payload), &raws); err != nil {
		return nil, fmt.Errorf("%w: parsing completion JSON: %v", domain.ErrGenerationFailed, err)
	}

	questions := make([]domain.GeneratedQuestion, 0, len(raws))
	for _, raw := range raws {
		q, ok := normalizeQuestion(raw, qtype, difficulty)
		if ok {
			questions = append(questions, q)
		}
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("%w: completion contained no usable questions", domain.ErrGenerationFailed)
	}
	return questions, nil
}

func normalizeQuestion(raw rawQuestion, qtype domain.QType, difficulty domain.Difficulty) (domain.GeneratedQuestion, bool) {
	text := strings.TrimSpace(raw.Question)
	if text == "" {
		text = strings.TrimSpace(raw.Text)
	}
	answer := strings.TrimSpace(raw.Answer)
	if text == "" || answer == "" {
		return domain.GeneratedQuestion{}, false
	}

	rationale := strings.TrimSpace(raw.Rationale)
	if rationale == "" {
		rationale = strings.TrimSpace(raw.Reason)
	}

	q := domain.GeneratedQuestion{
		Question:   text,
		Answer:     answer,
		Rationale:  rationale,
		QType:      qtype,
		Difficulty: difficulty,
	}

	if qtype == domain.QTypeMCQ {
		choices := raw.Choices
		if len(choices) == 0 {
			choices = raw.Options
		}
		choices = cleanChoices(choices)
		if len(choices) == 0 {
			return domain.GeneratedQuestion{}, false
		}
		q.Answer = resolveLetterAnswer(answer, choices)
		q.Choices = padChoices(choices, 4)
	}
	return q, true
}

func cleanChoices(choices []string) []string {
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		c = strings.TrimSpace(c)
		if c != "" {
			out = append(out, c)
		}
	}
	return out
}

// resolveLetterAnswer maps a bare letter answer like "B" or "b)" to
// the corresponding choice text. Answers that are not a single letter
// within range pass through unchanged.
func resolveLetterAnswer(answer string, choices []string) string {
	letter := strings.TrimRight(strings.TrimSpace(answer), ".):")
	if len(letter) != 1 {
		return answer
	}
	idx := -1
	c := letter[0]
	switch {
	case c >= 'A' && c <= 'Z':
		idx = int(c - 'A')
	case c >= 'a' && c <= 'z':
		idx = int(c - 'a')
	}
	if idx >= 0 && idx < len(choices) {
		return choices[idx]
	}
	return answer
}

// padChoices guarantees at least n choices so the client UI always has
// a full answer grid.
func padChoices(choices []string, n int) []string {
	for i := len(choices); i < n; i++ {
		choices = append(choices, fmt.Sprintf("None of the above (%d)", i+1))
	}
	return choices
}

// stripCodeFences removes a surrounding markdown code fence, with or
// without a language tag.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		firstLine := strings.TrimSpace(s[:idx])
		if firstLine == "json" || firstLine == "" {
			s = s[idx+1:]
		}
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
