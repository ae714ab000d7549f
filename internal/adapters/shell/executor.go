// Package shell runs prepared command lines through the system shell and
// manages the system-prompt temp file some templates need.
package shell

import (
	"bytes"
	"context"
	"errors"
	"os/exec"

	"github.com/cliproxy-dev/cliproxy/internal/domain"
)

// Executor runs a prepared command line via `sh -c`. Execution goes through
// the shell deliberately so templates can use pipes, redirects and flags.
// The child inherits the daemon's environment and working directory, and no
// timeout is imposed: if the external tool hangs, the request hangs.
type Executor struct {
	// Shell is the interpreter binary. Defaults to "sh".
	Shell string
}

func New() *Executor {
	return &Executor{Shell: "sh"}
}

// Execute runs the command to completion and captures stdout, stderr and the
// exit code. A non-zero exit is a normal tool-failure outcome, not an error;
// only an OS-level failure to start the process reports a launch failure.
func (e *Executor) Execute(ctx context.Context, command string) domain.Outcome {
	cmd := exec.CommandContext(ctx, e.Shell, "-c", command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return domain.ToolFailed(stdout.String(), stderr.String(), exitErr.ExitCode())
		}
		return domain.LaunchFailed(err)
	}

	return domain.Succeeded(stdout.String(), stderr.String())
}
