// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/blackjack/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	StrategyDependencies
	StatusProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statusHandler     *StatusHandler
	statsHandler      *StatsHandler
	strategiesHandler *StrategiesHandler

	addr           string
	allowedOrigins []string
	gzipEnabled    bool
	gzipMinSize    int
	logger         logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		allowedOrigins: []string{"*"},
		gzipEnabled:    true,
		gzipMinSize:    defaultGzipMinSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}

	s.healthHandler = NewHealthHandler()
	s.statusHandler = NewStatusHandler(deps, s.addr)
	s.statsHandler = NewStatsHandler(statsProvider)
	s.strategiesHandler = NewStrategiesHandler(deps, s.logger)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/strategies", MetricsMiddleware(s.strategiesHandler.HandleList, "strategies"))
	mux.HandleFunc(strategyPathPrefix, MetricsMiddleware(s.strategiesHandler.HandleGet, "strategy"))
	mux.HandleFunc("/api/comparison", MetricsMiddleware(s.strategiesHandler.HandleComparison, "comparison"))
	mux.HandleFunc("/api/quick-comparison", MetricsMiddleware(s.strategiesHandler.HandleQuickComparison, "quick_comparison"))
	mux.HandleFunc("/", MetricsMiddleware(s.statusHandler.HandleStatus, "root"))
}

// Handler wraps next with the cross-cutting middleware: request IDs, CORS
// and gzip compression.
func (s *Server) Handler(next http.Handler) (http.Handler, error) {
	h := next
	if s.gzipEnabled {
		gz, err := GzipMiddleware(s.gzipMinSize)
		if err != nil {
			return nil, err
		}
		h = gz(h)
	}
	h = CORSMiddleware(s.allowedOrigins)(h)
	h = RequestIDMiddleware(h)
	return h, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
