package quizgen

import (
	"errors"
	"fmt"
)

// FailureKind labels why a generation call failed. The distinction exists for
// logging and user-facing banners only; every kind is handled the same way
// (fallback content), never propagated as an error past the Generator.
type FailureKind string

const (
	FailureRateLimited        FailureKind = "rate_limited"
	FailureAuthentication     FailureKind = "authentication_failed"
	FailureServiceUnavailable FailureKind = "service_unavailable"
	FailureGeneration         FailureKind = "generation_failed"
)

// GenerationError wraps a generation-service failure with its classified kind.
type GenerationError struct {
	Kind FailureKind
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed (%s): %v", e.Kind, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// Classify extracts the FailureKind from an error, defaulting to the generic
// FailureGeneration for anything unclassified (network errors, timeouts).
func Classify(err error) FailureKind {
	var genErr *GenerationError
	if errors.As(err, &genErr) {
		return genErr.Kind
	}
	return FailureGeneration
}
