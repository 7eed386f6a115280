// Package server exposes the task pipeline over HTTP:
//
//	GET  /health    liveness probe
//	GET  /api/test  round trip to the model backend
//	POST /api/task  run a task pipeline ({"task": ..., "text": ...})
//	GET  /metrics   Prometheus exposition (when a gatherer is configured)
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/agentdesk/internal/metrics"
	"github.com/hupe1980/agentdesk/logging"
	"github.com/hupe1980/agentdesk/model"
	"github.com/hupe1980/agentdesk/pipeline"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	maxBodyBytes = 1 << 20
	testPrompt   = "Hello, this is a test message."
)

// TaskRunner runs a task pipeline. *pipeline.Runner satisfies it.
type TaskRunner interface {
	Run(ctx context.Context, task pipeline.Task, text string) (pipeline.Result, error)
}

// Observer records served requests. *metrics.Metrics satisfies it.
type Observer interface {
	ObserveHTTPRequest(method, path string, code int, dur time.Duration)
}

// Options configures the Server.
type Options struct {
	Addr            string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	// WriteTimeout bounds a whole pipeline run (three model calls).
	WriteTimeout time.Duration
	Logger       logging.Logger
	Observer     Observer
	// Gatherer enables GET /metrics when set.
	Gatherer prometheus.Gatherer
}

// Server serves the HTTP API.
type Server struct {
	runner TaskRunner
	llm    model.Model
	opts   Options
}

// New creates a Server. llm is used by the connectivity check endpoint.
func New(runner TaskRunner, llm model.Model, optFns ...func(o *Options)) *Server {
	opts := Options{
		Addr:            ":3001",
		AllowedOrigins:  []string{"http://localhost:3000", "http://localhost:3001"},
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    5 * time.Minute,
		Logger:          logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = logging.NoOpLogger{}
	}
	return &Server{runner: runner, llm: llm, opts: opts}
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /api/test", s.handleTest)
	mux.HandleFunc("POST /api/task", s.handleTask)
	if s.opts.Gatherer != nil {
		mux.Handle("GET /metrics", metrics.Handler(s.opts.Gatherer))
	}

	var h http.Handler = mux
	h = cors(s.opts.AllowedOrigins, h)
	h = s.observe(h)
	h = requestID(h)
	return h
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.opts.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
		IdleTimeout:  120 * time.Second,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.opts.Logger.Info("Server listening", "addr", ln.Addr().String())
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.opts.Logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
