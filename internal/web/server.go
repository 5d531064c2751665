// Package web provides the HTTP surface of ipdash: the JSON API, the
// Prometheus endpoint, and the embedded static dashboard.
package web

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"ipdash/internal/log"
	"ipdash/internal/models"
)

// Server handles web requests.
type Server struct {
	prober      models.Prober
	provider    models.IPProvider
	staticFiles fs.FS
	logger      zerolog.Logger
	httpServer  *http.Server
}

// New creates a new web server. provider may be nil when no IP metadata
// source is configured; /api/ip then answers 503.
func New(prober models.Prober, provider models.IPProvider, addr string, staticFS fs.FS) *Server {
	s := &Server{
		prober:      prober,
		provider:    provider,
		staticFiles: staticFS,
		logger:      log.WithComponent("web"),
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(requestMetrics)

	r.Get("/api/ip", s.handleIP)
	r.Get("/api/resolvers", s.handleResolvers)
	r.Get("/api/ping", s.handlePingAll)
	r.Get("/api/ping/{name}", s.handlePing)
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	// Static files - serve embedded static/ directory as webroot
	staticFS, _ := fs.Sub(s.staticFiles, "static")
	r.Handle("/*", http.FileServer(http.FS(staticFS)))

	return r
}

// Start starts the web server and blocks until it stops.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.httpServer.Addr).Msg("web server starting")
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
