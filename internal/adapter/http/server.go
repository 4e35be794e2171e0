package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/couchcryptid/dealer-locator-service/internal/domain"
	"github.com/couchcryptid/dealer-locator-service/internal/leads"
	sharedobs "github.com/couchcryptid/storm-data-shared/observability"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DealerFinder answers dealer queries.
type DealerFinder interface {
	FindNearby(ctx context.Context, postalCode string, radiusMiles float64, limit int) (domain.SearchResult, error)
	GetDealer(ctx context.Context, id string) (domain.Dealer, error)
}

// LeadSubmitter accepts dealer leads.
type LeadSubmitter interface {
	Submit(ctx context.Context, req leads.Request) (leads.Receipt, error)
}

// Limits bounds the search parameters accepted from clients.
type Limits struct {
	MaxRadius float64
	MaxLimit  int
}

// Server exposes the dealer API plus health, readiness, and metrics endpoints.
type Server struct {
	httpServer *http.Server
	dealers    DealerFinder
	leads      LeadSubmitter
	limits     Limits
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the API routes under /api/v1 and
// /healthz, /readyz, and /metrics.
func NewServer(addr string, ready sharedobs.ReadinessChecker, dealers DealerFinder, leadSvc LeadSubmitter, limits Limits, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		dealers: dealers,
		leads:   leadSvc,
		limits:  limits,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", sharedobs.LivenessHandler())
	mux.HandleFunc("GET /readyz", sharedobs.ReadinessHandler(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/dealers/nearby", s.handleNearby)
	mux.HandleFunc("GET /api/v1/dealers/{id}", s.handleGetDealer)
	mux.HandleFunc("POST /api/v1/dealers/leads", s.handleSubmitLead)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}
