// Package command turns the operator's command template plus a reduced
// prompt into a shell-executable command line. Substitution is a pure string
// operation; no process is spawned here.
package command

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

const (
	PlaceholderPrompt     = "{prompt}"
	PlaceholderSystem     = "{system}"
	PlaceholderSystemFile = "{system_file}"
)

// Kind classifies a template by which system placeholder it carries. When a
// template contains both, {system} wins.
type Kind int

const (
	KindPromptOnly Kind = iota
	KindSystem
	KindSystemFile
)

func (k Kind) String() string {
	switch k {
	case KindSystem:
		return "system"
	case KindSystemFile:
		return "system_file"
	default:
		return "prompt_only"
	}
}

// ErrUnknownPlaceholder marks a template referencing a placeholder that is
// not {prompt}, {system} or {system_file}. This is a configuration error and
// is surfaced at startup, never during request handling.
var ErrUnknownPlaceholder = errors.New("unknown placeholder in command template")

var placeholderPattern = regexp.MustCompile(`\{[A-Za-z_][A-Za-z0-9_]*\}`)

// Template is an operator-supplied command line. The template text itself is
// trusted configuration and may contain arbitrary shell syntax; only the
// values substituted into it are quoted.
type Template struct {
	raw  string
	kind Kind
}

func New(raw string) Template {
	t := Template{raw: raw, kind: KindPromptOnly}
	if strings.Contains(raw, PlaceholderSystem) {
		t.kind = KindSystem
	} else if strings.Contains(raw, PlaceholderSystemFile) {
		t.kind = KindSystemFile
	}
	return t
}

func (t Template) String() string { return t.raw }

func (t Template) Kind() Kind { return t.kind }

// NeedsSystemFile reports whether resolving this template wants the system
// prompt delivered via a file path.
func (t Template) NeedsSystemFile() bool { return t.kind == KindSystemFile }

// Validate rejects templates that reference placeholders outside the
// recognized set. A template with no placeholders at all is valid: it simply
// ignores the prompt.
func (t Template) Validate() error {
	for _, ph := range placeholderPattern.FindAllString(t.raw, -1) {
		switch ph {
		case PlaceholderPrompt, PlaceholderSystem, PlaceholderSystemFile:
		default:
			return fmt.Errorf("%w: %s", ErrUnknownPlaceholder, ph)
		}
	}
	return nil
}

// Resolve substitutes the prompt values into the template and returns the
// prepared command line. Every substituted value is quoted so the shell sees
// it as exactly one literal token.
//
// Templates with an explicit {system} or {system_file} placeholder get a
// three-way substitution. Otherwise a present system prompt is folded into
// the user prompt as "System: <system>\nUser: <user>" and only {prompt} is
// substituted.
func (t Template) Resolve(userPrompt, systemPrompt, systemFilePath string) (string, error) {
	switch t.kind {
	case KindSystem, KindSystemFile:
		safeUser, err := quote(userPrompt)
		if err != nil {
			return "", err
		}
		safeSystem, err := quote(systemPrompt)
		if err != nil {
			return "", err
		}
		safePath, err := quote(systemFilePath)
		if err != nil {
			return "", err
		}
		// Single pass over the template text. Substituted values are never
		// rescanned, so a prompt containing a literal "{system}" stays one
		// quoted token instead of having the system value spliced into it.
		return strings.NewReplacer(
			PlaceholderPrompt, safeUser,
			PlaceholderSystem, safeSystem,
			PlaceholderSystemFile, safePath,
		).Replace(t.raw), nil
	default:
		prompt := userPrompt
		if systemPrompt != "" {
			prompt = "System: " + systemPrompt + "\nUser: " + userPrompt
		}
		safe, err := quote(prompt)
		if err != nil {
			return "", err
		}
		return strings.ReplaceAll(t.raw, PlaceholderPrompt, safe), nil
	}
}

// quote escapes a value as a single POSIX shell word. syntax.Quote returns
// the input unchanged when no quoting is needed and errors only on content
// no shell string can carry (NUL bytes).
func quote(s string) (string, error) {
	q, err := syntax.Quote(s, syntax.LangPOSIX)
	if err != nil {
		return "", fmt.Errorf("quoting template value: %w", err)
	}
	return q, nil
}
