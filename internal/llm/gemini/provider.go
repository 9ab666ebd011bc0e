package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/scrollconnect/postpilot/internal/config"
	"github.com/scrollconnect/postpilot/internal/domain"
	"github.com/scrollconnect/postpilot/internal/llm"
	"google.golang.org/api/option"
)

type Provider struct {
	apiKey string
	model  string
}

func NewProvider(cfg config.GeminiConfig) *Provider {
	return &Provider{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

func (p *Provider) Name() string {
	return "gemini"
}

func (p *Provider) AvailableModels() []string {
	return []string{
		"gemini-2.5-flash",
		"gemini-1.5-flash",
		"gemini-1.5-pro",
	}
}

func (p *Provider) DefaultModel() string {
	if p.model != "" {
		return p.model
	}
	return "gemini-1.5-flash"
}

func (p *Provider) IsConfigured() bool {
	return p.apiKey != ""
}

// ClassifyCompleteness runs the context-analysis prompt and parses the
// strict JSON verdict.
func (p *Provider) ClassifyCompleteness(ctx context.Context, question, transcript string) (*domain.CompletenessDecision, error) {
	// Temperature 0 keeps the verdict deterministic for a given transcript.
	var temperature float32 = 0.0
	output, err := p.generate(ctx, &temperature, genai.Text(llm.BuildClassifierPrompt(question, transcript)))
	if err != nil {
		return nil, fmt.Errorf("gemini classification error: %w", err)
	}
	return llm.ParseDecision(output)
}

// DescribeImage sends the raw image inline with the analysis prompt.
func (p *Provider) DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	format := strings.TrimPrefix(mimeType, "image/")
	output, err := p.generate(ctx, nil,
		genai.Text(llm.BuildDescribePrompt()),
		genai.ImageData(format, data),
	)
	if err != nil {
		return "", fmt.Errorf("gemini image analysis error: %w", err)
	}
	return strings.TrimSpace(output), nil
}

// GenerateContent produces the final post content.
func (p *Provider) GenerateContent(ctx context.Context, question, transcript string) (string, error) {
	output, err := p.generate(ctx, nil, genai.Text(llm.BuildGenerationPrompt(question, transcript)))
	if err != nil {
		return "", fmt.Errorf("gemini generation error: %w", err)
	}
	if strings.TrimSpace(output) == "" {
		return "I'm not sure how to respond.", nil
	}
	return output, nil
}

func (p *Provider) generate(ctx context.Context, temperature *float32, parts ...genai.Part) (string, error) {
	if !p.IsConfigured() {
		return "", fmt.Errorf("gemini provider is not configured (missing API key)")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.DefaultModel())
	if temperature != nil {
		model.Temperature = temperature
	}

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	var output string
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			output += string(text)
		}
	}

	return output, nil
}
