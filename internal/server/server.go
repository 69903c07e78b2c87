// Package server exposes the sequence generators and the bounded index
// accessor over HTTP, together with the Prometheus metrics of the process.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/agbru/fibseq/internal/bounded"
	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/metrics"
	"github.com/agbru/fibseq/internal/sequence"
)

// Defaults applied to requests that omit a parameter.
const (
	DefaultCount = 10
	DefaultWidth = "64"

	shutdownTimeout   = 5 * time.Second
	readHeaderTimeout = 5 * time.Second
)

// SequenceResponse is the body of a successful /sequence request.
type SequenceResponse struct {
	Count    uint64   `json:"count"`
	Width    string   `json:"width"`
	Terms    []string `json:"terms"`
	Rendered string   `json:"rendered"`
	Duration string   `json:"duration"`
}

// AccessResponse is the body of a resolved /access request.
type AccessResponse struct {
	Index uint64   `json:"index"`
	Value int64    `json:"value"`
	Path  []string `json:"path"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string   `json:"error"`
	Path  []string `json:"path,omitempty"`
}

// Server serves the HTTP API.
type Server struct {
	factory    sequence.Factory
	collection bounded.Collection[int64]
	metrics    *metrics.Recorder
	logger     logging.Logger
	security   SecurityConfig
	timeout    time.Duration
	separator  string
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithSecurityConfig replaces DefaultSecurityConfig.
func WithSecurityConfig(cfg SecurityConfig) Option {
	return func(s *Server) { s.security = cfg }
}

// WithLogger sets the request logger.
func WithLogger(l logging.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithTimeout bounds each generation.
func WithTimeout(d time.Duration) Option {
	return func(s *Server) { s.timeout = d }
}

// WithSeparator sets the separator of the rendered sequence.
func WithSeparator(sep string) Option {
	return func(s *Server) { s.separator = sep }
}

// New creates a server listening on addr. rec may be nil, in which case
// /metrics serves an empty registry.
func New(addr string, factory sequence.Factory, collection bounded.Collection[int64], rec *metrics.Recorder, opts ...Option) *Server {
	if rec == nil {
		rec = metrics.NewRecorder()
	}
	s := &Server{
		factory:    factory,
		collection: collection,
		metrics:    rec,
		logger:     logging.NewDefaultLogger(),
		security:   DefaultSecurityConfig(),
		timeout:    time.Minute,
		separator:  format.DefaultSeparator,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Handler returns the routed and instrumented handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	route := func(path string, h http.HandlerFunc) {
		mux.HandleFunc(path, s.metricsMiddleware(path, SecurityMiddleware(s.security, h)))
	}
	route("/sequence", s.handleSequence)
	route("/access", s.handleAccess)
	route("/health", s.handleHealth)
	route("/metrics", s.handleMetrics)
	return mux
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.httpServer.Addr))
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return apperrors.WrapError(err, "server on %s", s.httpServer.Addr)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return apperrors.WrapError(err, "server shutdown")
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) handleSequence(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	q := r.URL.Query()

	count := uint64(DefaultCount)
	if raw := q.Get("count"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid count %q", raw), nil)
			return
		}
		count = n
	}
	if count > s.security.MaxCount {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("count %d exceeds the limit of %d", count, s.security.MaxCount), nil)
		return
	}

	width := q.Get("width")
	if width == "" {
		width = DefaultWidth
	}
	gen, err := s.factory.Get(width)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err, nil)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeout)
	defer cancel()
	start := time.Now()
	seq, err := gen.Generate(ctx, count, nil)
	duration := time.Since(start)
	if err != nil {
		s.metrics.ObserveGeneration(gen.Name(), 0, duration, err)
		s.writeError(w, statusFor(err), err, nil)
		return
	}
	s.metrics.ObserveGeneration(gen.Name(), len(seq.Terms), duration, nil)

	terms := seq.Strings()
	s.writeJSON(w, http.StatusOK, SequenceResponse{
		Count:    seq.Count,
		Width:    gen.Name(),
		Terms:    terms,
		Rendered: format.FormatSequence(terms, s.separator),
		Duration: duration.String(),
	})
}

func (s *Server) handleAccess(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	attempt := bounded.Resolve(r.Context(), s.collection, r.URL.Query().Get("index"))
	s.metrics.ObserveAccess(attempt.Err)

	path := make([]string, len(attempt.Path))
	for i, st := range attempt.Path {
		path[i] = st.String()
	}
	if attempt.Err != nil {
		s.writeError(w, statusFor(attempt.Err), attempt.Err, path)
		return
	}
	s.writeJSON(w, http.StatusOK, AccessResponse{Index: attempt.Index, Value: attempt.Value, Path: path})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if !s.requireGet(w, r) {
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	s.writeError(w, http.StatusMethodNotAllowed, fmt.Errorf("method %s not allowed", r.Method), nil)
	return false
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.status = code
	sr.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks in-flight requests and records each response.
func (s *Server) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncActiveRequests()
		defer s.metrics.DecActiveRequests()

		start := time.Now()
		sr := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(sr, r)
		s.metrics.ObserveRequest(endpoint, sr.status, time.Since(start))
	}
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrParse):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrIndexOutOfRange):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrArithmeticOverflow):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("encoding response", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error, path []string) {
	s.logger.Debug("request failed", logging.Int("status", status), logging.Err(err))
	s.writeJSON(w, status, ErrorResponse{Error: err.Error(), Path: path})
}
