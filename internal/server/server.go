// Package server implements the strut HTTP API.
//
// The API is stateless: every request carries a full scene document and the
// response carries the resolved frames or rendered artifact. Results are
// cached keyed on a hash of the request body, since identical documents
// always resolve identically.
//
// # Endpoints
//
//   - POST /v1/solve: resolve a JSON scene to frames
//   - POST /v1/graph: render a scene's constraint graph (DOT or SVG)
//   - GET  /healthz: liveness probe with build information
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/strut/pkg/cache"
)

// Config holds server dependencies. Zero-value fields get safe defaults.
type Config struct {
	// Cache stores solve results and rendered artifacts. Nil disables
	// caching.
	Cache cache.Cache

	// Keyer generates cache keys. Nil uses the default scheme.
	Keyer cache.Keyer

	// Logger receives request logs. Nil uses the default logger.
	Logger *log.Logger

	// TTL bounds the lifetime of cached entries. Zero means no expiry.
	TTL time.Duration

	// MaxBodyBytes caps the accepted request body size.
	// Zero applies a 1 MiB default.
	MaxBodyBytes int64
}

// Server serves the strut API.
type Server struct {
	cache    cache.Cache
	keyer    cache.Keyer
	logger   *log.Logger
	ttl      time.Duration
	maxBytes int64
}

// New creates a server from the given configuration.
func New(cfg Config) *Server {
	s := &Server{
		cache:    cfg.Cache,
		keyer:    cfg.Keyer,
		logger:   cfg.Logger,
		ttl:      cfg.TTL,
		maxBytes: cfg.MaxBodyBytes,
	}
	if s.cache == nil {
		s.cache = cache.NewNullCache()
	}
	if s.keyer == nil {
		s.keyer = cache.NewDefaultKeyer()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	if s.maxBytes == 0 {
		s.maxBytes = 1 << 20
	}
	return s
}

// Handler builds the routed http.Handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealthz)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.handleSolve)
		r.Post("/graph", s.handleGraph)
	})
	return r
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		err := <-errc
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger logs one line per request with method, path, status, and
// duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}
