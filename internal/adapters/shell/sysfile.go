package shell

import (
	"fmt"
	"os"
	"sync"

	"github.com/cliproxy-dev/cliproxy/internal/logging"
)

// WriteSystemFile stores the system prompt in a uniquely named temp file and
// returns its path together with a release func. The release func removes
// the file exactly once; callers defer it so removal happens on every exit
// path of the request. A failed removal is logged and never surfaces.
func WriteSystemFile(systemPrompt string) (path string, release func(), err error) {
	f, err := os.CreateTemp("", "cliproxy-system-*.txt")
	if err != nil {
		return "", nil, fmt.Errorf("creating system prompt file: %w", err)
	}
	path = f.Name()

	if _, err := f.WriteString(systemPrompt); err != nil {
		f.Close()
		os.Remove(path)
		return "", nil, fmt.Errorf("writing system prompt file: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", nil, fmt.Errorf("closing system prompt file: %w", err)
	}

	var once sync.Once
	release = func() {
		once.Do(func() {
			if err := os.Remove(path); err != nil {
				logging.Warn().Err(err).Str("path", path).Msg("removing system prompt file")
			}
		})
	}
	return path, release, nil
}
