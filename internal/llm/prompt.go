package llm

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scrollconnect/postpilot/internal/domain"
)

// ReadyMessage is the canonical classifier confirmation when every
// content-brief slot is satisfied. The orchestrator branches on the
// Complete flag only, but the message text is part of the contract.
const ReadyMessage = "Context is complete. Ready to generate content."

// EscapePhrase forces a complete verdict regardless of slot coverage.
const EscapePhrase = "continue with all the given info"

// Transcript renders a chat history as a single chronological
// "User: ..." / "AI: ..." text block for prompt inclusion.
func Transcript(history []domain.Turn) string {
	lines := make([]string, 0, len(history))
	for _, turn := range history {
		speaker := "AI"
		if turn.Role == domain.RoleUser {
			speaker = "User"
		}
		lines = append(lines, fmt.Sprintf("%s: %s", speaker, turn.Text()))
	}
	return strings.Join(lines, "\n")
}

// BuildClassifierPrompt creates the completeness-analysis prompt. The
// classifier must answer with a bare JSON object {"response","complete"};
// ParseDecision holds the other half of that contract.
func BuildClassifierPrompt(question, transcript string) string {
	return fmt.Sprintf(`You are an AI assistant analyzing a user's request for social media content for ScrollConnect, an event management platform.
Your goal is to extract the necessary details from the user's message and only ask for additional details if something is genuinely unclear or missing.

User Request:
"%s"

Previous Conversation:
%s

Step 1: Identify these details inside the user's message and the conversation history:
1. Content Type - what kind of post is this? (e.g., Instagram story, post caption, carousel, reel)
2. Theme/Purpose - what is the goal? (e.g., event promotion, engagement, awareness, countdown)
3. Target Audience - who should this content appeal to? (e.g., college students, developers, event organizers)
4. Tone & Style - professional, playful, witty, hype-driven, informative?
5. Specific Details - hashtags, calls-to-action, prizes, guest speakers, key points to mention?

Step 2: Check for missing information.
- If ALL details are present, respond in exactly this JSON format:
{"response": "%s", "complete": true}

- If some details are missing, respond in this format, naming each missing detail with why it is needed and an example:
{"response": "Some details are missing. Here's what would improve your request:\n\n- [Missing Detail] -> [Why it's needed & example]\n\nTry adding these for the best results!", "complete": false}

Rules:
- If the user says they don't want to or can't provide a detail, do not ask for it again. Auto-fill it based on best practices, or for essential details like Content Type, offer a short menu of common options instead.
- If the user says to "%s", do not ask for further details and proceed with the available information immediately: return the complete response format.
- Never return generic missing details. Always provide guidance.
- Ensure proper spacing between lines for readability.
- Do NOT format the response as a code block.
- Do NOT add extra explanations. Only return pure JSON.`,
		question, transcript, ReadyMessage, EscapePhrase)
}

// BuildGenerationPrompt creates the final content-generation prompt.
func BuildGenerationPrompt(question, transcript string) string {
	return fmt.Sprintf(`You are an AI-powered social media content creator for ScrollConnect, an event management platform.
Generate high-quality Instagram content based on the provided context.

Previous Conversation:
%s

User's new request: "%s"

Ensure the response is structured with a catchy hook, main content, and a call-to-action.

Formatting rules:
- Use two raw newlines (\n\n) instead of HTML <br> tags when providing multiple options.
- Do NOT use <br> or any HTML formatting, only raw newlines.
- Maintain clarity, conciseness, and engagement.
- Keep the content structured and visually appealing.`,
		transcript, question)
}

// BuildDescribePrompt creates the image-analysis prompt.
func BuildDescribePrompt() string {
	return `Describe the event-relevant content of this image for a social media assistant. Extract any dates, names, venues, visual themes, and text visible in the image. Respond with a short plain-text description only.`
}

// ParseDecision parses raw classifier output into a decision. Models
// occasionally wrap the JSON in markdown fences despite instructions,
// so fences are stripped before the strict parse. Anything that still
// fails to decode is a classification failure for the caller to handle.
func ParseDecision(raw string) (*domain.CompletenessDecision, error) {
	cleaned := stripFences(raw)

	var decision domain.CompletenessDecision
	if err := json.Unmarshal([]byte(cleaned), &decision); err != nil {
		return nil, fmt.Errorf("invalid classifier output: %w", err)
	}

	if decision.Message == "" {
		return nil, fmt.Errorf("invalid classifier output: empty response field")
	}

	return &decision, nil
}

func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}
