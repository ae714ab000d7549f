package ports

import (
	"context"

	"github.com/cliproxy-dev/cliproxy/internal/domain"
)

// History records completed chat completions for auditing. The store is
// optional; a nil History disables recording.
type History interface {
	RecordCompletion(ctx context.Context, rec *domain.CompletionRecord) error
	Close() error
}
