// Package gemini backs the question generator with Google's Gemini API.
// It implements quizgen.TextGenerator so the generator itself never sees the
// concrete client.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"sopquiz/internal/quizgen"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// ModelName is the Gemini model to use.
const ModelName = "gemini-2.0-flash"

// Client wraps the Gemini client.
type Client struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewClient creates a new Gemini client from the GEMINI_API_KEY environment
// variable.
func NewClient(ctx context.Context) (*Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(ModelName)
	model.SetTemperature(0.7)
	model.SetMaxOutputTokens(2000)

	return &Client{
		client: client,
		model:  model,
	}, nil
}

// Close closes the Gemini client.
func (c *Client) Close() {
	c.client.Close()
}

// GenerateText sends the prompt to Gemini and returns the raw completion
// text. A single attempt is made; failures are classified for the caller's
// fallback handling but never retried here.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", classify(err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &quizgen.GenerationError{
			Kind: quizgen.FailureGeneration,
			Err:  fmt.Errorf("no content generated"),
		}
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", &quizgen.GenerationError{
			Kind: quizgen.FailureGeneration,
			Err:  fmt.Errorf("response contained no text parts"),
		}
	}
	return b.String(), nil
}

// classify maps an API error to the generation failure taxonomy by HTTP
// status: 429 is a quota/rate problem, 401/403 an API key problem, 5xx an
// outage. Everything else (network errors, timeouts) stays generic.
func classify(err error) error {
	kind := quizgen.FailureGeneration

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429:
			kind = quizgen.FailureRateLimited
		case 401, 403:
			kind = quizgen.FailureAuthentication
		case 500, 502, 503:
			kind = quizgen.FailureServiceUnavailable
		}
	}

	return &quizgen.GenerationError{Kind: kind, Err: err}
}
