// Package server exposes a dispatch workload over HTTP.
//
// Routes:
//   - GET  /stuff  one workload invocation, JSON encoded
//   - GET  /dogs   the processed roster
//   - POST /dogs   register a dog
//
// One Server wraps one Workload, so running a static and a dynamic server
// side by side lets an external load generator compare them end to end.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/bytedance/sonic"

	"github.com/randomizedcoder/static-vs-dynamic/internal/dispatch"
	"github.com/randomizedcoder/static-vs-dynamic/internal/kennel"
	"github.com/randomizedcoder/static-vs-dynamic/internal/metrics"
)

const (
	maxBodyBytes      = 1 << 20
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

// Server serves one workload.
type Server struct {
	addr     string
	workload dispatch.Workload
	metrics  *metrics.Metrics
}

// New creates a Server for w listening on addr. m may be nil.
func New(addr string, w dispatch.Workload, m *metrics.Metrics) *Server {
	return &Server{
		addr:     addr,
		workload: w,
		metrics:  m,
	}
}

// Mode returns the dispatch mode of the served workload.
func (s *Server) Mode() dispatch.Mode {
	return s.workload.Mode()
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /stuff", s.handleStuff)
	mux.HandleFunc("GET /dogs", s.handleListDogs)
	mux.HandleFunc("POST /dogs", s.handleAddDog)

	if s.metrics == nil {
		return mux
	}
	return s.metrics.Middleware(string(s.workload.Mode()), mux)
}

// Run serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	slog.Info("starting server", "mode", s.workload.Mode(), "addr", s.addr)
	return Serve(ctx, s.addr, s.Handler())
}

// Serve runs an HTTP server on addr until ctx is cancelled, then shuts it
// down gracefully.
func Serve(ctx context.Context, addr string, h http.Handler) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return serveListener(ctx, ln, h)
}

func serveListener(ctx context.Context, ln net.Listener, h http.Handler) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve %s: %w", ln.Addr(), err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown %s: %w", ln.Addr(), err)
		}
		return nil
	}
}

func (s *Server) handleStuff(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	report := s.workload.Stuff()
	if s.metrics != nil {
		s.metrics.ObserveWorkload(string(s.workload.Mode()), time.Since(start))
	}

	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleListDogs(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.workload.Dogs())
}

func (s *Server) handleAddDog(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}

	var dog kennel.Dog
	if err := sonic.Unmarshal(body, &dog); err != nil {
		http.Error(w, "Invalid dog JSON", http.StatusBadRequest)
		return
	}
	if dog.ID == "" {
		http.Error(w, "Dog id is required", http.StatusBadRequest)
		return
	}

	s.workload.AddDog(dog)
	slog.Debug("dog added", "mode", s.workload.Mode(), "id", dog.ID)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	io.WriteString(w, "Dog created")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		slog.Error("failed to encode response", "error", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
