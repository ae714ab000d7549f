package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cliproxy-dev/cliproxy/internal/adapters/shell"
	"github.com/cliproxy-dev/cliproxy/internal/adapters/sqlite"
	"github.com/cliproxy-dev/cliproxy/internal/command"
	"github.com/cliproxy-dev/cliproxy/internal/config"
	"github.com/cliproxy-dev/cliproxy/internal/logging"
	"github.com/cliproxy-dev/cliproxy/internal/ports"
	"github.com/cliproxy-dev/cliproxy/internal/proxy"
	"github.com/cliproxy-dev/cliproxy/internal/server"
)

func main() {
	configPath := os.Getenv("CLIPROXY_CONFIG")
	if configPath == "" {
		configPath = "cliproxy.toml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cliproxyd: %v\n", err)
		os.Exit(1)
	}

	logging.Init(logging.Config{
		Level:  logging.ParseLevel(cfg.Log.Level),
		Pretty: cfg.Log.Pretty,
	})

	var history ports.History
	if cfg.History.Path != "" {
		store, err := sqlite.NewStore(cfg.History.Path)
		if err != nil {
			logging.Fatal().Err(err).Str("path", cfg.History.Path).Msg("opening history store")
		}
		defer store.Close()
		history = store
	}

	tmpl := command.New(cfg.Agent.Command)
	p := proxy.New(tmpl, cfg.Agent.ID, cfg.Agent.Debug, shell.New(), history)
	srv := server.New(cfg.Listen, p)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-sigCh
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logging.Error().Err(err).Msg("shutdown")
		}
	}()

	logging.Info().
		Str("listen", cfg.Listen).
		Str("template", cfg.Agent.Command).
		Str("template_kind", tmpl.Kind().String()).
		Msg("cliproxyd listening")

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logging.Fatal().Err(err).Msg("server error")
	}
}
