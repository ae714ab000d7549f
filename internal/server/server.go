// Package server provides the OpenAI-compatible HTTP surface.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cliproxy-dev/cliproxy/internal/logging"
	"github.com/cliproxy-dev/cliproxy/internal/proxy"
)

// Server is the HTTP server. Concurrency is whatever net/http provides: one
// goroutine per request, no queue or backpressure around command execution.
type Server struct {
	listen  string
	router  *chi.Mux
	httpSrv *http.Server
	proxy   *proxy.Proxy
}

func New(listen string, p *proxy.Proxy) *Server {
	s := &Server{
		listen: listen,
		router: chi.NewRouter(),
		proxy:  p,
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)

	// Permissive CORS so browser-based OpenAI clients can talk to a local
	// daemon directly.
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/chat/completions", s.chatCompletions)
		r.Get("/models", s.listModels)
	})
	s.router.Get("/healthz", s.health)
}

// requestLogger logs each request through the zerolog logger.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logging.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:    s.listen,
		Handler: s.router,
		// No write timeout: command execution is unbounded by design.
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpSrv.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
