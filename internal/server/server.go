// Package server provides the HTTP API for career-compass.
package server

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/career-compass/internal/config"
	"github.com/sells-group/career-compass/internal/model"
)

// Analyzer produces a career report for a profile.
type Analyzer interface {
	Analyze(ctx context.Context, p model.Profile) (*model.Report, error)
}

// Server is the HTTP server for the analysis API.
type Server struct {
	analyzer Analyzer
	config   config.ServerConfig
	version  string
	limiter  *clientLimiter

	mu      sync.Mutex
	server  *http.Server
	stopped bool
}

// New creates a server. When rate limiting is enabled each client IP gets
// cfg.RateLimit.Requests analyses per cfg.RateLimit.WindowMinutes.
func New(a Analyzer, cfg config.ServerConfig, version string) *Server {
	s := &Server{
		analyzer: a,
		config:   cfg,
		version:  version,
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.Requests > 0 && cfg.RateLimit.WindowMinutes > 0 {
		window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
		s.limiter = newClientLimiter(cfg.RateLimit.Requests, window)
	}
	return s
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(accessLog)
	r.Use(recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleIndex)
	r.Get("/health", s.handleHealth)
	r.With(s.rateLimit).Post("/analyze", s.handleAnalyze)

	return r
}

// Start serves on the configured port and blocks until the server stops.
// port overrides the configured port when non-zero. Start returns
// immediately if Stop was already called.
func (s *Server) Start(port int) error {
	if port == 0 {
		port = s.config.Port
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		zap.L().Info("server stopped before start")
		return nil
	}
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.server = srv
	s.mu.Unlock()

	zap.L().Info("starting server", zap.Int("port", port))
	// A Shutdown that lands before ListenAndServe makes it return
	// ErrServerClosed.
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}

// Stop gracefully shuts down the server. It may be called before Start, in
// which case Start will not serve.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	s.stopped = true
	srv := s.server
	s.mu.Unlock()

	if srv != nil {
		return srv.Shutdown(ctx)
	}
	return nil
}

// recoverer turns a handler panic into a logged JSON 500.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			zap.L().Error("handler panic",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("path", r.URL.Path),
				zap.Any("panic", rec),
				zap.Stack("stack"),
			)
			respondError(w, http.StatusInternalServerError, msgInternal)
		}()
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one structured line per request.
func accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		defer func() {
			zap.L().Info("http request",
				zap.String("request_id", middleware.GetReqID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("remote", r.RemoteAddr),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("elapsed", time.Since(start)),
			)
		}()
		next.ServeHTTP(ww, r)
	})
}
