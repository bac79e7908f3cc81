package qgen

import (
	"fmt"
	"strings"

	"quizgen/internal/domain"
	"quizgen/internal/port"
)

// maxSourceChars bounds how much source text goes into the prompt.
// Longer passages add cost without improving question quality.
const maxSourceChars = 1000

// BuildQuestionPrompt returns the generation prompt for the given input.
func BuildQuestionPrompt(input port.GenerateInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "You are an exam-question author for teachers. Based on the study material below, write exactly %d %s question(s) at %s difficulty.\n\n",
		input.NumQuestions, qtypeLabel(input.QType), input.Difficulty)

	if input.Description != "" {
		fmt.Fprintf(&b, "Context about the material: %s\n\n", input.Description)
	}

	b.WriteString("STUDY MATERIAL:\n")
	b.WriteString(truncateText(input.Text, maxSourceChars))
	b.WriteString("\n\n")

	b.WriteString("IMPORTANT INSTRUCTIONS:\n")
	b.WriteString("- Every question must be answerable from the study material alone.\n")
	b.WriteString("- Include a short rationale explaining why the answer is correct.\n")
	switch input.QType {
	case domain.QTypeMCQ:
		b.WriteString("- Provide exactly 4 answer choices per question, with only one correct.\n")
		b.WriteString("- The \"answer\" field must repeat the correct choice text, not a letter.\n")
	case domain.QTypeTrueFalse:
		b.WriteString("- The \"answer\" field must be exactly \"True\" or \"False\".\n")
		b.WriteString("- Omit the \"choices\" field.\n")
	case domain.QTypeShortAnswer:
		b.WriteString("- The \"answer\" field holds a model answer of one or two sentences.\n")
		b.WriteString("- Omit the \"choices\" field.\n")
	}
	b.WriteString(difficultyInstruction(input.Difficulty))

	b.WriteString("\nReturn ONLY valid JSON with no markdown formatting, no code fences, no explanation.\n")
	b.WriteString(`Return a JSON object with a single top-level key "questions": an array of objects with keys "question", "answer", "choices", "rationale".`)
	b.WriteString("\n")
	return b.String()
}

func qtypeLabel(q domain.QType) string {
	switch q {
	case domain.QTypeMCQ:
		return "multiple-choice"
	case domain.QTypeTrueFalse:
		return "true/false"
	case domain.QTypeShortAnswer:
		return "short-answer"
	default:
		return string(q)
	}
}

func difficultyInstruction(d domain.Difficulty) string {
	switch d {
	case domain.DifficultyEasy:
		return "- Target recall of facts stated directly in the material.\n"
	case domain.DifficultyMedium:
		return "- Target comprehension: require connecting two facts from the material.\n"
	case domain.DifficultyHard:
		return "- Target application or analysis: require reasoning beyond direct recall, while staying answerable from the material.\n"
	default:
		return ""
	}
}

func truncateText(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
