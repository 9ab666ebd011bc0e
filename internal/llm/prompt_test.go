package llm_test

import (
	"strings"
	"testing"

	"github.com/scrollconnect/postpilot/internal/domain"
	"github.com/scrollconnect/postpilot/internal/llm"
)

func TestTranscript(t *testing.T) {
	history := []domain.Turn{
		domain.NewTurn(domain.RoleUser, "Make a caption"),
		domain.NewTurn(domain.RoleModel, "Some details are missing."),
		domain.NewTurn(domain.RoleUser, "For college students, witty tone"),
	}

	got := llm.Transcript(history)
	want := "User: Make a caption\nAI: Some details are missing.\nUser: For college students, witty tone"
	if got != want {
		t.Errorf("Transcript() = %q, want %q", got, want)
	}
}

func TestTranscript_Empty(t *testing.T) {
	if got := llm.Transcript(nil); got != "" {
		t.Errorf("Transcript(nil) = %q, want empty", got)
	}
}

func TestBuildClassifierPrompt(t *testing.T) {
	prompt := llm.BuildClassifierPrompt("Make a caption", "User: hi")

	mustContain := []string{
		"Make a caption",
		"User: hi",
		"Content Type",
		"Theme/Purpose",
		"Target Audience",
		"Tone & Style",
		"Specific Details",
		llm.ReadyMessage,
		llm.EscapePhrase,
		"Only return pure JSON",
		"Do NOT format the response as a code block",
	}

	for _, s := range mustContain {
		if !strings.Contains(prompt, s) {
			t.Errorf("classifier prompt should contain %q", s)
		}
	}
}

func TestBuildGenerationPrompt(t *testing.T) {
	prompt := llm.BuildGenerationPrompt("Make a caption", "User: hi\nAI: ready")

	mustContain := []string{
		"Make a caption",
		"User: hi\nAI: ready",
		"hook",
		"call-to-action",
		`two raw newlines (\n\n)`,
		"Do NOT use <br>",
	}

	for _, s := range mustContain {
		if !strings.Contains(prompt, s) {
			t.Errorf("generation prompt should contain %q", s)
		}
	}
}

func TestParseDecision(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantErr      bool
		wantComplete bool
		wantMessage  string
	}{
		{
			"bare json complete",
			`{"response": "Context is complete. Ready to generate content.", "complete": true}`,
			false, true, llm.ReadyMessage,
		},
		{
			"bare json incomplete",
			`{"response": "Some details are missing.", "complete": false}`,
			false, false, "Some details are missing.",
		},
		{
			"json fenced",
			"```json\n{\"response\": \"Some details are missing.\", \"complete\": false}\n```",
			false, false, "Some details are missing.",
		},
		{
			"bare fenced",
			"```\n{\"response\": \"Context is complete. Ready to generate content.\", \"complete\": true}\n```",
			false, true, llm.ReadyMessage,
		},
		{
			"surrounding whitespace",
			"  \n{\"response\": \"x\", \"complete\": false}\n  ",
			false, false, "x",
		},
		{
			"not json",
			"Sure! Here is my analysis of your request.",
			true, false, "",
		},
		{
			"empty response field",
			`{"response": "", "complete": true}`,
			true, false, "",
		},
		{
			"empty string",
			"",
			true, false, "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision, err := llm.ParseDecision(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDecision(%q) expected error, got %+v", tt.raw, decision)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDecision(%q) unexpected error: %v", tt.raw, err)
			}
			if decision.Complete != tt.wantComplete {
				t.Errorf("Complete = %v, want %v", decision.Complete, tt.wantComplete)
			}
			if decision.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", decision.Message, tt.wantMessage)
			}
		})
	}
}
