package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/cliproxy-dev/cliproxy/internal/domain"
	"github.com/cliproxy-dev/cliproxy/internal/protocol"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	addr := os.Getenv("CLIPROXY_ADDR")
	if addr == "" {
		addr = "http://127.0.0.1:8001"
	}

	switch os.Args[1] {
	case "ask":
		cmdAsk(addr, os.Args[2:])
	case "models":
		cmdModels(addr)
	default:
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: cliproxy <command> [args]\n\nCommands:\n  ask [-model id] [-system text] <prompt>  Send a prompt to the daemon\n  models                                   List available models\n")
}

func cmdAsk(addr string, args []string) {
	fs := flag.NewFlagSet("ask", flag.ExitOnError)
	model := fs.String("model", "", "model id to request")
	system := fs.String("system", "", "system instruction")
	fs.Parse(args)

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "usage: cliproxy ask [-model id] [-system text] <prompt>\n")
		os.Exit(1)
	}

	req := protocol.ChatCompletionRequest{Model: *model}
	if *system != "" {
		req.Messages = append(req.Messages, domain.Message{Role: domain.RoleSystem, Content: *system})
	}
	req.Messages = append(req.Messages, domain.Message{Role: domain.RoleUser, Content: fs.Arg(0)})

	body, err := json.Marshal(req)
	if err != nil {
		fatal(err)
	}

	httpResp, err := http.Post(addr+"/v1/chat/completions", "application/json", bytes.NewReader(body))
	if err != nil {
		fatal(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(httpResp.Body)
		fmt.Fprintf(os.Stderr, "error: %s: %s\n", httpResp.Status, bytes.TrimSpace(data))
		os.Exit(1)
	}

	var resp protocol.ChatCompletionResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&resp); err != nil {
		fatal(err)
	}
	if len(resp.Choices) == 0 {
		fmt.Fprintf(os.Stderr, "error: response has no choices\n")
		os.Exit(1)
	}
	fmt.Println(resp.Choices[0].Message.Content)
}

func cmdModels(addr string) {
	httpResp, err := http.Get(addr + "/v1/models")
	if err != nil {
		fatal(err)
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode != http.StatusOK {
		fmt.Fprintf(os.Stderr, "error: %s\n", httpResp.Status)
		os.Exit(1)
	}

	var list protocol.ModelList
	if err := json.NewDecoder(httpResp.Body).Decode(&list); err != nil {
		fatal(err)
	}
	for _, m := range list.Data {
		fmt.Printf("%s  (owned by %s)\n", m.ID, m.OwnedBy)
	}
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
