package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cliproxy-dev/cliproxy/internal/domain"
)

func TestReduce_SystemAndUserPair(t *testing.T) {
	red := domain.Reduce([]domain.Message{
		{Role: domain.RoleSystem, Content: "be terse"},
		{Role: domain.RoleUser, Content: "hi there"},
	})
	assert.Equal(t, "be terse", red.SystemPrompt)
	assert.Equal(t, "hi there", red.UserPrompt)
}

func TestReduce_LastSystemWins(t *testing.T) {
	red := domain.Reduce([]domain.Message{
		{Role: domain.RoleSystem, Content: "first"},
		{Role: domain.RoleUser, Content: "question"},
		{Role: domain.RoleSystem, Content: "second"},
	})
	assert.Equal(t, "second", red.SystemPrompt)
}

func TestReduce_LastUserWins(t *testing.T) {
	red := domain.Reduce([]domain.Message{
		{Role: domain.RoleUser, Content: "earlier"},
		{Role: domain.RoleAssistant, Content: "an answer"},
		{Role: domain.RoleUser, Content: "latest"},
	})
	assert.Equal(t, "latest", red.UserPrompt)
	assert.NotContains(t, red.UserPrompt, "earlier")
	assert.NotContains(t, red.UserPrompt, "an answer")
}

func TestReduce_EmptyHistory(t *testing.T) {
	red := domain.Reduce(nil)
	assert.Equal(t, domain.DefaultUserPrompt, red.UserPrompt)
	assert.Empty(t, red.SystemPrompt)
}

func TestReduce_IgnoresUnknownRoles(t *testing.T) {
	red := domain.Reduce([]domain.Message{
		{Role: "tool", Content: "tool output"},
		{Role: domain.RoleAssistant, Content: "reply"},
	})
	assert.Equal(t, domain.DefaultUserPrompt, red.UserPrompt)
	assert.Empty(t, red.SystemPrompt)
}

func TestReduce_EmptyLastUserMessageIsKept(t *testing.T) {
	// An explicit empty user message is not the same as no user message.
	red := domain.Reduce([]domain.Message{
		{Role: domain.RoleUser, Content: ""},
	})
	assert.Equal(t, "", red.UserPrompt)
}
