package quizgen

import "sopquiz/internal/models"

// fallbackQuestions is the fixed question set substituted when generation
// fails or yields nothing parseable. The content is deliberately generic: it
// is NOT derived from the uploaded document, which is why callers must
// surface the IsFallback flag to the user.
var fallbackQuestions = []models.Question{
	{
		Question: "What is the main topic of the document?",
		Options: []string{
			"Technical specifications",
			"Business strategy",
			"Project management",
			"Customer service",
		},
		CorrectAnswer: 0,
	},
	{
		Question: "Which section contains the most important information?",
		Options: []string{
			"Introduction",
			"Methodology",
			"Results",
			"Conclusion",
		},
		CorrectAnswer: 2,
	},
	{
		Question: "What is the primary goal mentioned in the document?",
		Options: []string{
			"Increase efficiency",
			"Reduce costs",
			"Improve quality",
			"Expand market share",
		},
		CorrectAnswer: 0,
	},
}

// FallbackQuestions returns a fresh copy of the built-in fallback set so
// callers can never mutate the canonical content.
func FallbackQuestions() []models.Question {
	questions := make([]models.Question, len(fallbackQuestions))
	for i, q := range fallbackQuestions {
		options := make([]string, len(q.Options))
		copy(options, q.Options)
		questions[i] = models.Question{
			Question:      q.Question,
			Options:       options,
			CorrectAnswer: q.CorrectAnswer,
		}
	}
	return questions
}
