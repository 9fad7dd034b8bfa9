package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/lox/potdrill/internal/drill"
	"github.com/lox/potdrill/internal/randutil"
	"github.com/lox/potdrill/internal/trainer"
)

// Server serves pot drills over WebSocket.
type Server struct {
	addr        string
	upgrader    websocket.Upgrader
	connections map[*Connection]bool
	logger      *log.Logger
	clock       quartz.Clock
	mu          sync.RWMutex
	score       drill.SharedScore

	// seed is the base seed for per-connection generators. Zero means
	// every connection draws from entropy.
	seed    int64
	counter int64
}

// Option configures a Server.
type Option func(*Server)

// WithSeed makes scenario generation reproducible. Connection n (counting
// from zero) draws from seed+n.
func WithSeed(seed int64) Option {
	return func(s *Server) {
		s.seed = seed
	}
}

// WithClock overrides the clock used to time answers.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) {
		s.clock = clock
	}
}

// NewServer creates a new WebSocket server
func NewServer(addr string, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		addr: addr,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		connections: make(map[*Connection]bool),
		logger:      logger.WithPrefix("server"),
		clock:       quartz.NewReal(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP routes for the server.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/score", s.handleScore)
	return mux
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting WebSocket server", "addr", s.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.Stop()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Stop closes every open connection.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.connections {
		_ = conn.Close() // Ignore close errors during shutdown
	}
}

// Score returns the tally across every connection.
func (s *Server) Score() drill.Score {
	return s.score.Snapshot()
}

// ConnectionCount returns the number of open connections.
func (s *Server) ConnectionCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.connections)
}

func (s *Server) newTrainer(logger *log.Logger) *trainer.Trainer {
	s.mu.Lock()
	n := s.counter
	s.counter++
	s.mu.Unlock()

	var rng randutil.Source
	if s.seed != 0 {
		rng = randutil.New(s.seed + n)
	} else {
		rng = randutil.NewRandom()
	}
	return trainer.New(drill.NewGenerator(rng), s.clock, logger, trainer.WithSharedScore(&s.score))
}

// handleWebSocket handles WebSocket upgrade requests
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}

	id := uuid.NewString()
	client := NewConnection(id, conn, s.newTrainer(s.logger), &s.score, s.logger)

	s.mu.Lock()
	s.connections[client] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "session", id, "total", total)

	client.reply(MessageTypeWelcome, welcomeFor(id))
	client.Start()

	go func() {
		<-client.Done()
		s.mu.Lock()
		delete(s.connections, client)
		total := len(s.connections)
		s.mu.Unlock()
		s.logger.Info("Client disconnected", "session", id, "total", total)
	}()
}

// handleHealth handles health check requests
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK") // Ignore write errors for health check
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	score := s.score.Snapshot()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]any{
		"attempted": score.Attempted,
		"correct":   score.Correct,
		"accuracy":  score.Accuracy(),
		"sessions":  s.ConnectionCount(),
	}); err != nil {
		s.logger.Error("Failed to encode score", "error", err)
	}
}
