// Package api provides HTTP handlers and the main API server logic for the
// check-in service.
//
// It exposes RESTful endpoints for running health check-in sessions and
// reviewing archived session records. A presentation layer (speech-to-text,
// avatar rendering, UI) is expected to drive these endpoints and render the
// returned dialogue text; the engine itself performs no transport work.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/lisahealth/checkin/internal/engine"
	"github.com/lisahealth/checkin/internal/store"
)

// DefaultAddr is the default listen address for the API server.
const DefaultAddr = ":8080"

// Opts holds configuration for the API server.
type Opts struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
}

// Option configures the API server.
type Option func(*Opts)

// WithAddr sets the listen address.
func WithAddr(addr string) Option {
	return func(o *Opts) {
		o.Addr = addr
	}
}

// sessionEntry tracks one live engine plus its persistence status.
type sessionEntry struct {
	engine    *engine.Engine
	persisted bool
}

// Server hosts check-in sessions over HTTP. The mutex serializes all engine
// access: the engine performs no reentrancy guarding of its own, so the
// transport layer is responsible for making sure calls never overlap.
type Server struct {
	store    store.Store
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	mux      *http.ServeMux
}

// NewServer creates the API server with the given session record store.
func NewServer(st store.Store) *Server {
	s := &Server{
		store:    st,
		sessions: make(map[string]*sessionEntry),
		mux:      http.NewServeMux(),
	}
	s.routes()
	return s
}

// routes registers all HTTP endpoints.
func (s *Server) routes() {
	s.mux.HandleFunc("POST /sessions", s.createSessionHandler)
	s.mux.HandleFunc("POST /sessions/{id}/responses", s.respondHandler)
	s.mux.HandleFunc("GET /sessions/{id}", s.stateHandler)
	s.mux.HandleFunc("POST /sessions/{id}/reset", s.resetHandler)
	s.mux.HandleFunc("GET /sessions/{id}/summary", s.summaryHandler)
	s.mux.HandleFunc("GET /records", s.recordsHandler)
}

// Handler returns the HTTP handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Run serves the API over the given session record store until the listener
// fails. Store construction (driver selection) belongs to the cmd layer.
func Run(st store.Store, opts ...Option) error {
	cfg := Opts{Addr: DefaultAddr}
	for _, opt := range opts {
		opt(&cfg)
	}

	server := NewServer(st)
	slog.Info("Check-in API running", "addr", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, server.Handler()); err != nil {
		return fmt.Errorf("api server failed: %w", err)
	}
	return nil
}
