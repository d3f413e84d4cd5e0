package api

import (
	"net/http"

	"github.com/okian/blackjack/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /healthz by serving Prometheus metrics from our
// custom registry.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	h.metrics.ServeHTTP(w, r)
}

// StatusProvider reports what the service is serving.
type StatusProvider interface {
	Ready() bool
	DataDir() string
	Count() int
}

type statusResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	Addr       string `json:"addr,omitempty"`
	DataDir    string `json:"dataDir"`
	Strategies int    `json:"strategies"`
}

// StatusHandler answers GET / with a JSON status document.
type StatusHandler struct {
	provider StatusProvider
	addr     string
}

// NewStatusHandler creates a status handler. addr is echoed back to callers.
func NewStatusHandler(provider StatusProvider, addr string) *StatusHandler {
	return &StatusHandler{provider: provider, addr: addr}
}

// HandleStatus handles GET /. Any other path under / is a JSON 404.
func (h *StatusHandler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	const op = "api.status"
	if r.URL.Path != "/" || r.Method != http.MethodGet {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
		return
	}
	resp := statusResponse{
		Status:     "ok",
		Message:    "Blackjack strategy API is running",
		Addr:       h.addr,
		DataDir:    h.provider.DataDir(),
		Strategies: h.provider.Count(),
	}
	if !h.provider.Ready() {
		resp.Status = "unavailable"
		resp.Message = ErrNotReady.Error()
		writeJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
