// Package proxy orchestrates the per-request pipeline: reduce the
// conversation, resolve the command template, execute, translate, record.
package proxy

import (
	"context"
	"time"

	"github.com/cliproxy-dev/cliproxy/internal/adapters/shell"
	"github.com/cliproxy-dev/cliproxy/internal/command"
	"github.com/cliproxy-dev/cliproxy/internal/domain"
	"github.com/cliproxy-dev/cliproxy/internal/logging"
	"github.com/cliproxy-dev/cliproxy/internal/ports"
	"github.com/cliproxy-dev/cliproxy/internal/protocol"
)

// Proxy holds the immutable per-process collaborators. It is stateless
// across requests; the only per-request resource is the optional system
// prompt temp file, released via defer on every exit path.
type Proxy struct {
	tmpl    command.Template
	agentID string
	debug   bool
	exec    ports.Executor
	history ports.History // nil disables recording
}

func New(tmpl command.Template, agentID string, debug bool, exec ports.Executor, history ports.History) *Proxy {
	return &Proxy{
		tmpl:    tmpl,
		agentID: agentID,
		debug:   debug,
		exec:    exec,
		history: history,
	}
}

func (p *Proxy) AgentID() string { return p.agentID }

// Complete satisfies one chat-completion request. Every execution outcome,
// including launch failures, becomes a well-formed completion response; the
// caller never sees an error from this method.
func (p *Proxy) Complete(ctx context.Context, req protocol.ChatCompletionRequest) protocol.ChatCompletionResponse {
	red := domain.Reduce(req.Messages)

	model := req.Model
	if model == "" {
		model = p.agentID
	}

	out := p.run(ctx, red)
	content := protocol.ContentFor(out)

	switch out.Kind {
	case domain.OutcomeToolFailure:
		logging.Error().
			Int("exit_code", out.ExitCode).
			Str("stderr", out.Stderr).
			Msg("CLI agent exited non-zero")
	case domain.OutcomeLaunchFailure:
		logging.Error().Str("reason", out.Reason).Msg("CLI agent failed to launch")
	}

	resp := protocol.NewChatCompletion(model, red.UserPrompt, content)
	p.record(ctx, resp.ID, model, red, out, content)
	return resp
}

// run resolves the template and executes the command. The system prompt temp
// file, when one is needed, lives exactly as long as this call.
func (p *Proxy) run(ctx context.Context, red domain.ReducedPrompt) domain.Outcome {
	systemFile := ""
	if p.tmpl.NeedsSystemFile() && red.SystemPrompt != "" {
		path, release, err := shell.WriteSystemFile(red.SystemPrompt)
		if err != nil {
			return domain.LaunchFailed(err)
		}
		defer release()
		systemFile = path
	}

	prepared, err := p.tmpl.Resolve(red.UserPrompt, red.SystemPrompt, systemFile)
	if err != nil {
		return domain.LaunchFailed(err)
	}

	if p.debug {
		logging.Info().Str("command", prepared).Msg("executing CLI agent")
	}

	return p.exec.Execute(ctx, prepared)
}

func (p *Proxy) record(ctx context.Context, id, model string, red domain.ReducedPrompt, out domain.Outcome, content string) {
	if p.history == nil {
		return
	}
	rec := &domain.CompletionRecord{
		ID:           id,
		Model:        model,
		UserPrompt:   red.UserPrompt,
		SystemPrompt: red.SystemPrompt,
		Content:      content,
		ExitCode:     out.ExitCode,
		Outcome:      out.Kind,
		CreatedAt:    time.Now(),
	}
	if err := p.history.RecordCompletion(ctx, rec); err != nil {
		logging.Warn().Err(err).Str("id", id).Msg("recording completion history")
	}
}
