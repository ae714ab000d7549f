package protocol_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cliproxy-dev/cliproxy/internal/domain"
	"github.com/cliproxy-dev/cliproxy/internal/protocol"
)

func TestContentFor_SuccessTrimsWhitespace(t *testing.T) {
	out := domain.Succeeded("  the answer\n\n", "")
	assert.Equal(t, "the answer", protocol.ContentFor(out))
}

func TestContentFor_ToolFailureEmbedsStderr(t *testing.T) {
	out := domain.ToolFailed("", "command not found: qwen\n", 127)
	content := protocol.ContentFor(out)
	assert.True(t, strings.HasPrefix(content, "Error executing CLI agent:\n"))
	assert.Contains(t, content, "command not found: qwen")
}

func TestContentFor_LaunchFailure(t *testing.T) {
	out := domain.LaunchFailed(assert.AnError)
	content := protocol.ContentFor(out)
	assert.True(t, strings.HasPrefix(content, "Proxy Error: "))
	assert.Contains(t, content, assert.AnError.Error())
}

func TestNewChatCompletion_Envelope(t *testing.T) {
	resp := protocol.NewChatCompletion("cli-agent", "hi", "hello there")

	assert.True(t, strings.HasPrefix(resp.ID, "chatcmpl-"))
	assert.Equal(t, "chat.completion", resp.Object)
	assert.NotZero(t, resp.Created)
	assert.Equal(t, "cli-agent", resp.Model)

	require.Len(t, resp.Choices, 1)
	choice := resp.Choices[0]
	assert.Equal(t, 0, choice.Index)
	assert.Equal(t, domain.RoleAssistant, choice.Message.Role)
	assert.Equal(t, "hello there", choice.Message.Content)
	assert.Equal(t, "stop", choice.FinishReason)
}

func TestNewChatCompletion_UsageIsRuneCounts(t *testing.T) {
	resp := protocol.NewChatCompletion("cli-agent", "héllo", "ok")

	assert.Equal(t, 5, resp.Usage.PromptTokens)
	assert.Equal(t, 2, resp.Usage.CompletionTokens)
	assert.Equal(t, 7, resp.Usage.TotalTokens)
}

func TestNewChatCompletion_UniqueIDs(t *testing.T) {
	a := protocol.NewChatCompletion("m", "p", "c")
	b := protocol.NewChatCompletion("m", "p", "c")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewModelList_SingleEntry(t *testing.T) {
	list := protocol.NewModelList("cli-agent")

	assert.Equal(t, "list", list.Object)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "cli-agent", list.Data[0].ID)
	assert.Equal(t, "model", list.Data[0].Object)
	assert.Equal(t, "user", list.Data[0].OwnedBy)
	assert.NotZero(t, list.Data[0].Created)
}
