package correct

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrectEmptyInput(t *testing.T) {
	p := New()
	assert.Equal(t, "", p.Correct(""))
	assert.Equal(t, "", p.Correct("   \n\t  "))
}

func TestCorrectIsIdempotent(t *testing.T) {
	p := New()
	inputs := []string{
		"the the the hands must be washed",
		"Ifyou are not informed about the changes",
		"Cook for 350 degrees and 2 cups of flour",
		"Supported Models API Supports powerful multimodal models for document processing " +
			"and image analysis with high accuracy across many languages and domains " +
			"including invoices receipts contracts and handwritten notes in production settings today",
		"this   text  has |  weird   spacing and 0 strange artifacts",
		"heLLo worldTHIS is a teST of mixed capitalization across words",
	}
	for _, in := range inputs {
		once := p.Correct(in)
		twice := p.Correct(once)
		assert.Equal(t, once, twice, "input %q", in)
	}
}

func TestCorrectIsIdempotentOnPunctuationFusedWords(t *testing.T) {
	p := New()
	// Quote normalization and symbol removal fuse letters with
	// punctuation; the recasing of such tokens must not drift on a
	// second run.
	for _, in := range []string{
		"|.‘a>|,?",
		"he said.‘and then",
		"COUNT.'EM all",
	} {
		once := p.Correct(in)
		assert.Equal(t, once, p.Correct(once), "input %q", in)
	}
}

func TestCorrectIsIdempotentOnRandomNoise(t *testing.T) {
	p := New()
	alphabet := []rune("aAbé0|>‘’'\".,!?- \n()")
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 3000; i++ {
		runes := make([]rune, rng.Intn(14))
		for j := range runes {
			runes[j] = alphabet[rng.Intn(len(alphabet))]
		}
		in := string(runes)
		once := p.Correct(in)
		twice := p.Correct(once)
		require.Equal(t, once, twice, "input %q", in)
	}
}

func TestCorrectCollapsesRepeatedWords(t *testing.T) {
	p := New()
	out := p.Correct("the the the hands must be washed")
	assert.Contains(t, strings.ToLower(out), "the hands must be washed")
	assert.NotContains(t, strings.ToLower(out), "the the")
}

func TestCorrectRepairsMergedWords(t *testing.T) {
	p := New()
	out := p.Correct("Ifyou are not informed")
	assert.Contains(t, strings.ToLower(out), "if you are not informed")
}

func TestCorrectPreservesDigits(t *testing.T) {
	p := New()
	out := p.Correct("Cook for 350 degrees and 2 cups")
	assert.Contains(t, out, "350")
	assert.Contains(t, out, "2 cups")
}

func TestCorrectStandaloneZeroBecomesLetter(t *testing.T) {
	p := New()
	out := p.Correct("the letter 0 was misread")
	assert.Contains(t, out, "O")
	assert.NotContains(t, out, " 0 ")
}

func TestCorrectPipeBecomesI(t *testing.T) {
	p := New()
	out := p.Correct("| think this works")
	assert.NotContains(t, out, "|")
	assert.Contains(t, out, "I think")
}

func TestCorrectEnsuresTerminalPunctuation(t *testing.T) {
	p := New()
	for _, in := range []string{
		"no punctuation here",
		"already has some!",
		"ends with question?",
	} {
		out := p.Correct(in)
		require.NotEmpty(t, out)
		last := out[len(out)-1:]
		assert.Contains(t, ".!?", last, "input %q", in)
	}
}

func TestCorrectPreservesAcronyms(t *testing.T) {
	p := New()
	out := p.Correct("the system supports OCR and API integration for JSON payloads")
	assert.Contains(t, out, "OCR")
	assert.Contains(t, out, "API")
	assert.Contains(t, out, "JSON")
}

func TestCorrectDowncasesShoutedWords(t *testing.T) {
	p := New()
	out := p.Correct("the RESULT was VERY surprising")
	assert.Contains(t, out, "Result")
	assert.Contains(t, out, "Very")
	assert.NotContains(t, out, "RESULT")
}

func TestCorrectCollapsesCharacterRuns(t *testing.T) {
	p := New()
	out := p.Correct("the misssssing letter")
	assert.Contains(t, out, "missing")
}

func TestCorrectKeepsDoubleLetters(t *testing.T) {
	p := New()
	out := p.Correct("a little bottle of good food")
	lower := strings.ToLower(out)
	assert.Contains(t, lower, "little")
	assert.Contains(t, lower, "bottle")
	assert.Contains(t, lower, "good")
	assert.Contains(t, lower, "food")
}

func TestCorrectSplitsFusedWords(t *testing.T) {
	p := New()
	out := p.Correct("the reportSays the numbers wereGood last quarter")
	lower := strings.ToLower(out)
	assert.Contains(t, lower, "report says")
	assert.Contains(t, lower, "were good")
}

func TestCorrectNormalizesWhitespace(t *testing.T) {
	p := New()
	out := p.Correct("too    many     spaces   between    words")
	assert.NotContains(t, out, "  ")
}

func TestCorrectStripsDisallowedSymbols(t *testing.T) {
	p := New()
	out := p.Correct("text with [brackets] and {braces} and <angles> removed")
	assert.NotContains(t, out, "[")
	assert.NotContains(t, out, "{")
	assert.NotContains(t, out, "<")
	assert.Contains(t, strings.ToLower(out), "brackets")
}

func TestCorrectKeepsParentheses(t *testing.T) {
	p := New()
	out := p.Correct("keep these (parenthetical remarks) intact")
	assert.Contains(t, out, "(")
	assert.Contains(t, out, ")")
}

func TestCorrectFixesVerbTruncation(t *testing.T) {
	p := New()
	out := p.Correct("we mak decisions quickly")
	assert.Contains(t, strings.ToLower(out), "make decisions")
}

func TestCorrectCapitalizesSentenceStarts(t *testing.T) {
	p := New()
	out := p.Correct("first sentence. second sentence here. third one")
	assert.Contains(t, out, "First")
	assert.Contains(t, out, "Second")
	assert.Contains(t, out, "Third")
}

func TestStagesAreOrderedAndNamed(t *testing.T) {
	p := New()
	stages := p.Stages()
	require.Len(t, stages, 10)
	assert.Equal(t, "character_substitutions", stages[0].Name)
	assert.Equal(t, "title_structure", stages[6].Name)
	assert.Equal(t, "final_cleanup", stages[9].Name)
}

func TestCorrectNeverInventsWords(t *testing.T) {
	p := New()
	in := "plain simple text without any artifacts"
	out := p.Correct(in)
	for _, w := range strings.Fields(in) {
		assert.Contains(t, strings.ToLower(out), w)
	}
}
