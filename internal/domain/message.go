package domain

// Message is one turn of an OpenAI-style conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// DefaultUserPrompt is substituted when a conversation carries no user
// message at all.
const DefaultUserPrompt = "Hello"

// ReducedPrompt is what survives of a conversation once it is flattened for a
// single CLI invocation. An empty SystemPrompt means no system instruction.
type ReducedPrompt struct {
	SystemPrompt string
	UserPrompt   string
}

// Reduce flattens an ordered message history into a single prompt pair.
// Later system messages override earlier ones; the user prompt is the last
// user message, falling back to DefaultUserPrompt when none exists. Assistant
// and unknown roles are ignored; no history is preserved.
func Reduce(messages []Message) ReducedPrompt {
	red := ReducedPrompt{}
	userSeen := false
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			red.SystemPrompt = m.Content
		case RoleUser:
			red.UserPrompt = m.Content
			userSeen = true
		}
	}
	if !userSeen {
		red.UserPrompt = DefaultUserPrompt
	}
	return red
}
