// Package http exposes the operator API of a running installation.
//
//	GET  /health          liveness
//	GET  /status          current snapshot and visit history
//	GET  /scenes          the scene catalog
//	POST /input/{button}  press skip or reset
//	GET  /events          server-sent snapshots
//	GET  /metrics         prometheus exposition (when a gatherer is set)
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/sceneflow"
	"github.com/aretw0/sceneflow/pkg/adapters/memory"
	"github.com/aretw0/sceneflow/pkg/domain"
	"github.com/aretw0/sceneflow/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// StatusSource is the read side of the host loop. runner.Director implements it.
type StatusSource interface {
	Snapshot() domain.Snapshot
	History() []string
}

// SceneLister lists the catalog. sceneflow.Engine implements it.
type SceneLister interface {
	Inspect() ([]domain.FlowConfig, error)
}

// StatusResponse is the body of GET /status.
type StatusResponse struct {
	domain.Snapshot
	History []string `json:"history"`
}

// Server serves the operator API. It is also the InputSource of presses
// received over HTTP and a StatusPublisher feeding /events.
type Server struct {
	*memory.Input

	Status  StatusSource
	Scenes  SceneLister
	Streams *StreamManager

	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithGatherer mounts GET /metrics for g.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates the API over the host's status and catalog.
func NewServer(status StatusSource, scenes SceneLister, opts ...Option) *Server {
	s := &Server{
		Input:   memory.NewInput(),
		Status:  status,
		Scenes:  scenes,
		Streams: NewStreamManager(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return s
}

// Handler builds the chi router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/status", s.GetStatus)
	r.Get("/scenes", s.GetScenes)
	r.Post("/input/{button}", s.PostInput)
	r.Get("/events", s.SubscribeEvents)
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": sceneflow.Version,
	})
}

// GetStatus handles the GET /status request.
func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, StatusResponse{
		Snapshot: s.Status.Snapshot(),
		History:  s.Status.History(),
	})
}

// GetScenes handles the GET /scenes request.
func (s *Server) GetScenes(w http.ResponseWriter, r *http.Request) {
	scenes, err := s.Scenes.Inspect()
	if err != nil {
		http.Error(w, fmt.Sprintf("Inspect error: %v", err), http.StatusInternalServerError)
		s.logger.Error("inspect failed", "err", err)
		return
	}
	s.writeJSON(w, http.StatusOK, scenes)
}

// PostInput handles the POST /input/{button} request.
// The press is latched and seen by the next tick.
func (s *Server) PostInput(w http.ResponseWriter, r *http.Request) {
	name, err := runner.SanitizeCommand(chi.URLParam(r, "button"))
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid input: %v", err), http.StatusBadRequest)
		return
	}
	b, ok := domain.ParseButton(name)
	if !ok {
		http.Error(w, fmt.Sprintf("Unknown button %q", name), http.StatusNotFound)
		return
	}

	s.Press(b)
	s.logger.Info("operator press", "button", b, "remote", r.RemoteAddr)
	w.WriteHeader(http.StatusAccepted)
}

// Publish implements ports.StatusPublisher by broadcasting to /events subscribers.
func (s *Server) Publish(_ context.Context, snap domain.Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	s.Streams.Broadcast(string(payload))
	return nil
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("sse client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

// StreamManager fans snapshots out to SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan string]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan string]struct{}),
	}
}

// Subscribe registers a buffered channel; the returned func unregisters and closes it.
func (sm *StreamManager) Subscribe() (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

// Broadcast never blocks: a slow client misses messages.
func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Len returns the number of connected subscribers.
func (sm *StreamManager) Len() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.subscribers)
}
