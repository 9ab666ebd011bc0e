package llm_test

import (
	"context"
	"testing"

	"github.com/scrollconnect/postpilot/internal/domain"
	"github.com/scrollconnect/postpilot/internal/llm"
)

// stubProvider is a minimal Provider for registry tests.
type stubProvider struct {
	name       string
	configured bool
}

func (s *stubProvider) Name() string              { return s.name }
func (s *stubProvider) AvailableModels() []string { return []string{s.name + "-model"} }
func (s *stubProvider) DefaultModel() string      { return s.name + "-model" }
func (s *stubProvider) IsConfigured() bool        { return s.configured }

func (s *stubProvider) ClassifyCompleteness(ctx context.Context, question, transcript string) (*domain.CompletenessDecision, error) {
	return &domain.CompletenessDecision{Message: llm.ReadyMessage, Complete: true}, nil
}

func (s *stubProvider) DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	return "", nil
}

func (s *stubProvider) GenerateContent(ctx context.Context, question, transcript string) (string, error) {
	return "", nil
}

func TestRouter_DefaultProvider(t *testing.T) {
	router := llm.NewRouter("gemini")

	if got := router.DefaultProvider(); got != "gemini" {
		t.Errorf("DefaultProvider() = %q, want %q", got, "gemini")
	}
}

func TestRouter_GetProvider(t *testing.T) {
	router := llm.NewRouter("gemini")
	router.RegisterProvider(&stubProvider{name: "gemini", configured: true})

	t.Run("by name", func(t *testing.T) {
		p, err := router.GetProvider("gemini")
		if err != nil {
			t.Fatalf("GetProvider() unexpected error: %v", err)
		}
		if p.Name() != "gemini" {
			t.Errorf("Name() = %q, want %q", p.Name(), "gemini")
		}
	})

	t.Run("empty name falls back to default", func(t *testing.T) {
		p, err := router.GetProvider("")
		if err != nil {
			t.Fatalf("GetProvider() unexpected error: %v", err)
		}
		if p.Name() != "gemini" {
			t.Errorf("Name() = %q, want %q", p.Name(), "gemini")
		}
	})

	t.Run("unknown name", func(t *testing.T) {
		if _, err := router.GetProvider("openai"); err == nil {
			t.Error("GetProvider() expected error for unknown provider")
		}
	})

	t.Run("unconfigured provider", func(t *testing.T) {
		router.RegisterProvider(&stubProvider{name: "bare", configured: false})
		if _, err := router.GetProvider("bare"); err == nil {
			t.Error("GetProvider() expected error for unconfigured provider")
		}
	})
}

func TestRouter_ListProviders(t *testing.T) {
	router := llm.NewRouter("gemini")
	router.RegisterProvider(&stubProvider{name: "gemini", configured: true})
	router.RegisterProvider(&stubProvider{name: "bare", configured: false})

	names := router.ListProviders()
	if len(names) != 1 || names[0] != "gemini" {
		t.Errorf("ListProviders() = %v, want [gemini]", names)
	}

	infos := router.GetProvidersInfo()
	if len(infos) != 2 {
		t.Fatalf("GetProvidersInfo() returned %d entries, want 2", len(infos))
	}
	for _, info := range infos {
		if info.Name == "gemini" && (!info.Default || !info.Configured) {
			t.Errorf("gemini info = %+v, want default and configured", info)
		}
		if info.Name == "bare" && (info.Default || info.Configured) {
			t.Errorf("bare info = %+v, want neither default nor configured", info)
		}
	}
}
