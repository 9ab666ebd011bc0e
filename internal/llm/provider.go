package llm

import (
	"context"

	"github.com/scrollconnect/postpilot/internal/domain"
)

// Classifier decides whether the content brief is complete enough to
// generate from, given the newest user context and the prior transcript.
type Classifier interface {
	ClassifyCompleteness(ctx context.Context, question, transcript string) (*domain.CompletenessDecision, error)
}

// Describer turns raw image bytes into a text description of
// event-relevant content.
type Describer interface {
	DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error)
}

// Generator produces the final social-media content from the full
// transcript and the newest request.
type Generator interface {
	GenerateContent(ctx context.Context, question, transcript string) (string, error)
}

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider identifier
	Name() string

	// AvailableModels returns list of supported models
	AvailableModels() []string

	// DefaultModel returns the default model
	DefaultModel() string

	// IsConfigured checks if provider has valid credentials
	IsConfigured() bool

	Classifier
	Describer
	Generator
}
