package quizgen

import (
	"strings"
	"unicode/utf8"
)

const (
	// MaxPromptChars caps how much document text goes into the generation
	// prompt. Longer text is truncated to respect model context limits;
	// coverage beyond this point is best-effort, not a correctness concern.
	MaxPromptChars = 3000

	// MaxQuestions is the upper bound requested from the model per document.
	MaxQuestions = 20
)

// promptHeader is the instruction block sent ahead of the document content.
const promptHeader = `You are a quiz generator assistant for corporate training.

Based on the following document content, create up to 20 multiple-choice questions (MCQs) with 4 options each (A-D) and clearly mark the correct answer.

Guidelines:
1. Questions should test understanding of key concepts
2. Each question should have exactly 4 options
3. Mark the correct answer clearly
4. Keep language simple and professional
5. Focus on important information
6. Questions should be based on the actual content provided
7. Generate as many questions as possible (up to 20) based on the content
8. Ensure questions cover different aspects of the content
9. Include both basic and advanced level questions

Here is the document content:
`

// BuildPrompt assembles the generation prompt for the given normalized
// document text, truncating the text to MaxPromptChars.
func BuildPrompt(text string) string {
	var b strings.Builder
	b.WriteString(promptHeader)
	if len(text) > MaxPromptChars {
		cut := MaxPromptChars
		// Back off to a rune boundary so truncation never splits a character.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		b.WriteString(text[:cut])
		b.WriteString("...")
	} else {
		b.WriteString(text)
	}
	return b.String()
}
