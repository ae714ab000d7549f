package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/cliproxy-dev/cliproxy/internal/protocol"
)

// chatCompletions handles POST /v1/chat/completions. Only a malformed body
// produces an HTTP error; every execution outcome, including a failing or
// unlaunchable command, is a 200 with degraded content so OpenAI-protocol
// clients always get a parsable completion.
func (s *Server) chatCompletions(w http.ResponseWriter, r *http.Request) {
	var req protocol.ChatCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request_error", "invalid request body: "+err.Error())
		return
	}

	// Detach from the request context so a client disconnect does not kill
	// the running child process.
	resp := s.proxy.Complete(context.WithoutCancel(r.Context()), req)
	writeJSON(w, http.StatusOK, resp)
}

// listModels handles GET /v1/models with the fixed single-entry catalog.
func (s *Server) listModels(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, protocol.NewModelList(s.proxy.AgentID()))
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
