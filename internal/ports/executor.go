package ports

import (
	"context"

	"github.com/cliproxy-dev/cliproxy/internal/domain"
)

// Executor runs a prepared shell command line to completion.
type Executor interface {
	Execute(ctx context.Context, command string) domain.Outcome
}
