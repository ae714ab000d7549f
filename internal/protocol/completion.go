// Package protocol defines the OpenAI-compatible wire envelopes and the
// translation from execution outcomes into response content.
package protocol

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/cliproxy-dev/cliproxy/internal/domain"
)

// ChatCompletionRequest is the body of POST /v1/chat/completions. Temperature
// and Stream are accepted for client compatibility but do not affect
// behavior.
type ChatCompletionRequest struct {
	Model       string           `json:"model"`
	Messages    []domain.Message `json:"messages"`
	Temperature *float64         `json:"temperature,omitempty"`
	Stream      bool             `json:"stream,omitempty"`
}

type Choice struct {
	Index        int            `json:"index"`
	Message      domain.Message `json:"message"`
	FinishReason string         `json:"finish_reason"`
}

// Usage counts are rune counts of the prompt and completion text, not real
// tokenization. The backing CLI exposes no tokenizer, so this stays a
// documented approximation.
type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

// Markers prefixed to degraded response content so clients can tell an
// execution failure from a model answer.
const (
	toolFailurePrefix   = "Error executing CLI agent:\n"
	launchFailurePrefix = "Proxy Error: "
)

// ContentFor flattens an execution outcome into response text. All three
// outcome kinds become normal completion content; the always-200 policy
// lives here and in the handler, nowhere else.
func ContentFor(out domain.Outcome) string {
	switch out.Kind {
	case domain.OutcomeToolFailure:
		return toolFailurePrefix + strings.TrimSpace(out.Stderr)
	case domain.OutcomeLaunchFailure:
		return launchFailurePrefix + out.Reason
	default:
		return strings.TrimSpace(out.Stdout)
	}
}

// NewChatCompletion builds the response envelope around the given content.
// Exactly one choice, always finish_reason "stop".
func NewChatCompletion(model, userPrompt, content string) ChatCompletionResponse {
	promptLen := utf8.RuneCountInString(userPrompt)
	contentLen := utf8.RuneCountInString(content)
	return ChatCompletionResponse{
		ID:      "chatcmpl-" + uuid.NewString(),
		Object:  "chat.completion",
		Created: time.Now().Unix(),
		Model:   model,
		Choices: []Choice{{
			Index:        0,
			Message:      domain.Message{Role: domain.RoleAssistant, Content: content},
			FinishReason: "stop",
		}},
		Usage: Usage{
			PromptTokens:     promptLen,
			CompletionTokens: contentLen,
			TotalTokens:      promptLen + contentLen,
		},
	}
}
