// Package server implements the doorpanels HTTP preview server.
//
// The server exposes the layout pipeline over JSON so that a browser front
// end can recompute and redraw a door on every edit:
//
//	GET  /healthz                 build info
//	POST /api/layout              options → layout result
//	POST /api/render/{format}     options → svg, png or json artifact
//
// Request bodies are [pipeline.Options] in JSON. Fields absent from the body
// keep the defaults of [pipeline.DefaultOptions].
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/doorpanels/pkg/pipeline"
)

// maxBodyBytes bounds request bodies; an input is a few hundred bytes.
const maxBodyBytes = 1 << 20

// Config holds server configuration.
type Config struct {
	Bind    string
	Port    int
	Timeout time.Duration // per-request timeout; zero means 30s
}

// Server is the HTTP preview server.
type Server struct {
	httpServer *http.Server
	runner     *pipeline.Runner
	logger     *log.Logger
	addr       string
	listener   net.Listener
}

// New creates a server that computes layouts with runner.
func New(cfg Config, runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	addr := fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port)

	s := &Server{
		runner: runner,
		logger: logger,
		addr:   addr,
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.routes(timeout),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) routes(timeout time.Duration) http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Post("/render/{format}", s.handleRender)
	})
	return r
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Listen binds the configured address. A port of 0 picks a free port.
func (s *Server) Listen() (net.Listener, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return nil, err
	}
	s.listener = ln
	s.addr = ln.Addr().String()
	return ln, nil
}

// Serve accepts connections on ln until Shutdown is called.
func (s *Server) Serve(ln net.Listener) error {
	err := s.httpServer.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Run listens and serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := s.Listen()
	if err != nil {
		return err
	}
	s.logger.Info("listening", "addr", "http://"+s.Addr())

	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	<-errc
	return ctx.Err()
}

// Addr returns the listen address, resolved after Listen.
func (s *Server) Addr() string {
	return s.addr
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
