package gemini

import (
	"errors"
	"fmt"
	"testing"

	"sopquiz/internal/quizgen"

	"google.golang.org/api/googleapi"
)

func TestClassifyByHTTPStatus(t *testing.T) {
	cases := []struct {
		code int
		want quizgen.FailureKind
	}{
		{429, quizgen.FailureRateLimited},
		{401, quizgen.FailureAuthentication},
		{403, quizgen.FailureAuthentication},
		{500, quizgen.FailureServiceUnavailable},
		{502, quizgen.FailureServiceUnavailable},
		{503, quizgen.FailureServiceUnavailable},
		{404, quizgen.FailureGeneration},
		{400, quizgen.FailureGeneration},
	}
	for _, tc := range cases {
		err := classify(&googleapi.Error{Code: tc.code, Message: "upstream"})
		var genErr *quizgen.GenerationError
		if !errors.As(err, &genErr) {
			t.Fatalf("code %d: expected *quizgen.GenerationError, got %T", tc.code, err)
		}
		if genErr.Kind != tc.want {
			t.Fatalf("code %d: kind = %q, want %q", tc.code, genErr.Kind, tc.want)
		}
	}
}

func TestClassifyWrappedAPIError(t *testing.T) {
	// errors.As must see through wrapping added by intermediate layers.
	wrapped := fmt.Errorf("generate content: %w", &googleapi.Error{Code: 429})
	var genErr *quizgen.GenerationError
	if !errors.As(classify(wrapped), &genErr) {
		t.Fatalf("expected *quizgen.GenerationError")
	}
	if genErr.Kind != quizgen.FailureRateLimited {
		t.Fatalf("kind = %q, want %q", genErr.Kind, quizgen.FailureRateLimited)
	}
}

func TestClassifyNonAPIError(t *testing.T) {
	// Network errors and timeouts carry no HTTP status and stay generic.
	err := classify(errors.New("dial tcp: connection refused"))
	var genErr *quizgen.GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected *quizgen.GenerationError, got %T", err)
	}
	if genErr.Kind != quizgen.FailureGeneration {
		t.Fatalf("kind = %q, want %q", genErr.Kind, quizgen.FailureGeneration)
	}
}
