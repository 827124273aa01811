// Package server exposes the forwarder as the host's command channel over HTTP.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	answers "github.com/Tap30/answers-go"
)

const maxBodyBytes = 1 << 20

// unknownAction labels every command whose action the invoker does not
// support, keeping the metric's label set bounded.
const unknownAction = "unknown"

// Invoker is the slice of the forwarder the server depends on.
type Invoker interface {
	Invoke(ctx context.Context, action string, args []any) answers.Result
	Actions() []string
}

type Server struct {
	invoker  Invoker
	logger   answers.LoggerAdapter
	known    map[string]struct{}
	commands *prometheus.CounterVec
	registry *prometheus.Registry
	router   chi.Router
}

// New builds the HTTP handler tree around invoker.
func New(invoker Invoker, logger answers.LoggerAdapter) *Server {
	s := &Server{
		invoker:  invoker,
		logger:   logger,
		known:    make(map[string]struct{}),
		registry: prometheus.NewRegistry(),
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "answers_commands_total",
			Help: "Commands acknowledged, by action.",
		}, []string{"action"}),
	}
	s.registry.MustRegister(s.commands)
	for _, action := range invoker.Actions() {
		s.known[action] = struct{}{}
	}

	r := chi.NewRouter()
	r.Post("/v1/commands/{action}", s.handleCommand)
	r.Get("/v1/actions", s.handleActions)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	s.router = r
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("Shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	action := chi.URLParam(r, "action")

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		s.logger.Warn("Failed to read body for %s: %v", action, err)
	}

	result := s.invoker.Invoke(r.Context(), action, decodeArgs(body))
	s.commands.WithLabelValues(s.metricLabel(action)).Inc()
	writeJSON(w, result)
}

func (s *Server) metricLabel(action string) string {
	if _, ok := s.known[action]; ok {
		return action
	}
	return unknownAction
}

func (s *Server) handleActions(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]any{"actions": s.invoker.Actions()})
}

// decodeArgs accepts either an argument array or a single command object.
// Anything undecodable becomes an empty argument list.
func decodeArgs(body []byte) []any {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return Args(v)
}

// Args turns a decoded JSON value into invocation arguments: an array is
// used as is, an object becomes the single argument, and anything else
// yields no arguments.
func Args(v any) []any {
	switch t := v.(type) {
	case []any:
		return t
	case map[string]any:
		return []any{t}
	default:
		return nil
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(v)
}
