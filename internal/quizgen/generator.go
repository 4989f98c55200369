package quizgen

import (
	"context"
	"log"

	"sopquiz/internal/models"
)

// TextGenerator produces a single free-text completion for a prompt. It is
// the only upstream dependency of the Generator and is injected so tests can
// substitute a double for the real model client.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Generator turns normalized document text into a validated question set,
// bridging the model's unreliable free-text output to the strict Question
// schema. It is stateless between calls and safe for concurrent use.
type Generator struct {
	client TextGenerator
}

// NewGenerator creates a Generator backed by the given model client.
func NewGenerator(client TextGenerator) *Generator {
	return &Generator{client: client}
}

// Generate produces questions for the given document text. It never fails:
// a model error or an unparseable response degrades to the fixed fallback
// set, flagged via IsFallback so callers can warn the user that the content
// is not derived from their document.
//
// The model is invoked exactly once per call; there are no retries.
func (g *Generator) Generate(ctx context.Context, text string) *models.GenerationResult {
	prompt := BuildPrompt(text)

	content, err := g.client.GenerateText(ctx, prompt)
	if err != nil {
		kind := Classify(err)
		log.Printf("WARN: Question generation failed (%s), serving fallback questions: %v", kind, err)
		return fallbackResult(kind)
	}

	questions := ParseQuestions(content)
	if len(questions) == 0 {
		log.Printf("WARN: Model response yielded no parseable questions, serving fallback questions")
		return fallbackResult(FailureGeneration)
	}

	log.Printf("INFO: Parsed %d questions from model response", len(questions))
	return &models.GenerationResult{Questions: questions}
}

func fallbackResult(kind FailureKind) *models.GenerationResult {
	return &models.GenerationResult{
		Questions:   FallbackQuestions(),
		IsFallback:  true,
		FailureKind: string(kind),
	}
}
