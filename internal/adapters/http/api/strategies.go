package api

import (
	"context"
	"errors"
	"net/http"
	"strings"

	service "github.com/okian/blackjack/internal/app"
	"github.com/okian/blackjack/internal/domain/strategy"
	"github.com/okian/blackjack/pkg/logger"
)

// strategyPathPrefix is the route prefix for single-strategy lookups.
const strategyPathPrefix = "/api/strategy/"

// StrategyDependencies defines the read operations the strategy routes need.
type StrategyDependencies interface {
	GetSummary(ctx context.Context, key string) (strategy.Summary, error)
	GetAllSummaries(ctx context.Context) strategy.Ordered
	GetComparison(ctx context.Context) service.Comparison
	GetQuickComparison(ctx context.Context) service.QuickComparison
}

// StrategiesHandler serves the /api routes.
type StrategiesHandler struct {
	deps   StrategyDependencies
	logger logger.Logger
}

// NewStrategiesHandler creates a new strategies handler.
func NewStrategiesHandler(deps StrategyDependencies, log logger.Logger) *StrategiesHandler {
	return &StrategiesHandler{deps: deps, logger: log}
}

// HandleList handles GET /api/strategies.
func (h *StrategiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.GetAllSummaries(r.Context()))
}

// HandleGet handles GET /api/strategy/{key}.
func (h *StrategiesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_strategy"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	key := strings.TrimPrefix(r.URL.Path, strategyPathPrefix)
	if key == "" || strings.Contains(key, "/") {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}

	sum, err := h.deps.GetSummary(r.Context(), key)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, sum)
	case errors.Is(err, service.ErrUnknownStrategy):
		writeError(w, http.StatusNotFound, "not_found", err)
	case errors.Is(err, service.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, "not_ready", Wrap(op, err))
	default:
		h.logger.Error(r.Context(), "strategy lookup failed",
			logger.String("key", key),
			logger.String("requestID", RequestIDFromContext(r.Context())),
			logger.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}

// HandleComparison handles GET /api/comparison.
func (h *StrategiesHandler) HandleComparison(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.GetComparison(r.Context()))
}

// HandleQuickComparison handles GET /api/quick-comparison.
func (h *StrategiesHandler) HandleQuickComparison(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, h.deps.GetQuickComparison(r.Context()))
}
