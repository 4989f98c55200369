package models

import (
	"time"

	"github.com/google/uuid"
)

// Question represents a single multiple-choice quiz item.
type Question struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
}

// Valid reports whether the question satisfies the public contract:
// non-empty prompt, at least two options, and an in-range answer index.
func (q Question) Valid() bool {
	return q.Question != "" &&
		len(q.Options) >= 2 &&
		q.CorrectAnswer >= 0 && q.CorrectAnswer < len(q.Options)
}

// GenerationResult is what one generation call produces. Questions is never
// empty: when the model call fails or yields nothing parseable, the fixed
// fallback set is substituted and IsFallback is set so callers can warn the
// user that the content is not derived from their document.
type GenerationResult struct {
	Questions  []Question `json:"questions"`
	IsFallback bool       `json:"isFallback"`
	// FailureKind describes why fallback content was served ("rate_limited",
	// "authentication_failed", "service_unavailable", "generation_failed").
	// Empty on the non-fallback path. Used for logging and UI banners only.
	FailureKind string `json:"failureKind,omitempty"`
}

// Quiz represents a stored quiz generated from one SOP document.
type Quiz struct {
	ID             uuid.UUID  `json:"id"`
	Title          string     `json:"title"`
	SourceFilename string     `json:"source_filename,omitempty"`
	SourceURL      string     `json:"source_url,omitempty"`
	IsFallback     bool       `json:"is_fallback"`
	PassingScore   int        `json:"passing_score"`
	Questions      []Question `json:"questions,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// Attempt represents one candidate's graded submission for a quiz.
type Attempt struct {
	ID            uuid.UUID `json:"id"`
	QuizID        uuid.UUID `json:"quiz_id"`
	CandidateName string    `json:"candidate_name"`
	Answers       []int     `json:"answers"`
	Score         int       `json:"score"` // percentage, 0-100
	Passed        bool      `json:"passed"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizListResponse represents the response for listing quizzes.
type QuizListResponse struct {
	Quizzes []Quiz `json:"quizzes"`
	Total   int    `json:"total"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
}
