// Package server implements the local test server: static files for manual
// browser testing plus an HTTP and websocket API over analysis reports.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/sprite-ai/webcompat/internal/analysis"
)

// DefaultPort is the port the test server listens on when none is configured.
const DefaultPort = 8000

// Options configure a Server.
type Options struct {
	Addr string
	// Root is served on "/" when non-empty.
	Root   string
	Engine analysis.Options
	Logger *slog.Logger
}

// Server is the webcompat test server.
type Server struct {
	addr   string
	root   string
	engine analysis.Options
	logger *slog.Logger
	mux    *http.ServeMux
	server *http.Server
	hub    *hub
	latest atomic.Pointer[analysis.Report]
}

// New creates a new server. It does not listen until Start is called.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Engine.Logger == nil {
		opts.Engine.Logger = logger
	}
	if opts.Addr == "" {
		opts.Addr = fmt.Sprintf(":%d", DefaultPort)
	}

	s := &Server{
		addr:   opts.Addr,
		root:   opts.Root,
		engine: opts.Engine,
		logger: logger,
		hub:    newHub(logger),
	}
	s.mux = http.NewServeMux()
	s.registerRoutes()
	s.server = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.mux,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /api/analyze", s.handleAnalyze)
	s.mux.HandleFunc("GET /api/report", s.handleReport)
	s.mux.HandleFunc("GET /api/ws", s.handleWebSocket)
	if s.root != "" {
		s.mux.Handle("GET /", http.FileServer(http.Dir(s.root)))
	}
}

// Start binds the listener and serves in the background. It returns the
// bound address, which differs from the configured one when port 0 is used.
func (s *Server) Start() (string, error) {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return "", fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	addr := ln.Addr().String()
	s.logger.Info("test server listening", "addr", addr, "root", s.root)

	go func() {
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("test server stopped", "error", err)
		}
	}()
	return addr, nil
}

// Shutdown disconnects websocket clients and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.hub.closeAll()
	return s.server.Shutdown(ctx)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Publish records r as the latest report and pushes it to every websocket
// client. r must not be modified afterwards.
func (s *Server) Publish(r *analysis.Report) {
	s.latest.Store(r)
	s.hub.broadcast(msgReport, r)
}

// Latest returns the most recently published report, or nil.
func (s *Server) Latest() *analysis.Report {
	return s.latest.Load()
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		s.logger.Warn("json encode error", "error", err)
	}
}

// writeError writes a JSON error response.
func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// readJSON decodes a JSON request body into v.
func readJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("empty request body")
	}
	defer r.Body.Close()
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	return dec.Decode(v)
}
