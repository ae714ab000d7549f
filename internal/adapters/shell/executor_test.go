package shell_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cliproxy-dev/cliproxy/internal/adapters/shell"
	"github.com/cliproxy-dev/cliproxy/internal/domain"
)

func TestExecute_Success(t *testing.T) {
	exec := shell.New()

	out := exec.Execute(context.Background(), "echo hello")
	assert.Equal(t, domain.OutcomeSuccess, out.Kind)
	assert.Equal(t, "hello\n", out.Stdout)
	assert.Empty(t, out.Stderr)
}

func TestExecute_CapturesStderr(t *testing.T) {
	exec := shell.New()

	out := exec.Execute(context.Background(), "echo visible; echo oops >&2")
	assert.Equal(t, domain.OutcomeSuccess, out.Kind)
	assert.Equal(t, "visible\n", out.Stdout)
	assert.Equal(t, "oops\n", out.Stderr)
}

func TestExecute_NonZeroExitIsToolFailure(t *testing.T) {
	exec := shell.New()

	out := exec.Execute(context.Background(), "echo broken >&2; exit 3")
	assert.Equal(t, domain.OutcomeToolFailure, out.Kind)
	assert.Equal(t, 3, out.ExitCode)
	assert.Equal(t, "broken\n", out.Stderr)
}

func TestExecute_ShellInterpretsPipes(t *testing.T) {
	exec := shell.New()

	out := exec.Execute(context.Background(), "printf 'b\\na\\n' | sort")
	assert.Equal(t, domain.OutcomeSuccess, out.Kind)
	assert.Equal(t, "a\nb\n", out.Stdout)
}

func TestExecute_MissingShellIsLaunchFailure(t *testing.T) {
	exec := &shell.Executor{Shell: "/nonexistent/shell"}

	out := exec.Execute(context.Background(), "echo hi")
	assert.Equal(t, domain.OutcomeLaunchFailure, out.Kind)
	assert.NotEmpty(t, out.Reason)
}
