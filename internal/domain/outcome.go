package domain

import "time"

type OutcomeKind string

const (
	OutcomeSuccess       OutcomeKind = "success"
	OutcomeToolFailure   OutcomeKind = "tool_failure"
	OutcomeLaunchFailure OutcomeKind = "launch_failure"
)

// Outcome is the tagged result of one external command invocation. Exactly
// one of the three kinds applies: the command ran and exited zero, the
// command ran and exited non-zero, or the process could not be started at
// all.
type Outcome struct {
	Kind     OutcomeKind
	Stdout   string
	Stderr   string
	ExitCode int
	Reason   string // launch failure description, empty otherwise
}

func Succeeded(stdout, stderr string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Stdout: stdout, Stderr: stderr}
}

func ToolFailed(stdout, stderr string, exitCode int) Outcome {
	return Outcome{Kind: OutcomeToolFailure, Stdout: stdout, Stderr: stderr, ExitCode: exitCode}
}

func LaunchFailed(err error) Outcome {
	return Outcome{Kind: OutcomeLaunchFailure, Reason: err.Error()}
}

// CompletionRecord is the audit row persisted for one completion when the
// history store is enabled.
type CompletionRecord struct {
	ID           string
	Model        string
	UserPrompt   string
	SystemPrompt string
	Content      string
	ExitCode     int
	Outcome      OutcomeKind
	CreatedAt    time.Time
}
