package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

type HealthChecker struct {
	mu             sync.RWMutex
	lastDeployment time.Time
	backendOK      bool
	errors         []string
}

type HealthStatus struct {
	Status         string    `json:"status"`
	Timestamp      time.Time `json:"timestamp"`
	LastDeployment time.Time `json:"last_deployment"`
	BackendOK      bool      `json:"backend_ok"`
	Uptime         string    `json:"uptime"`
	Errors         []string  `json:"errors,omitempty"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{
		errors: make([]string, 0),
	}
}

// SetBackendOK records backend reachability.
func (h *HealthChecker) SetBackendOK(ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.backendOK = ok
}

// UpdateLastDeployment records a successful deployment time.
func (h *HealthChecker) UpdateLastDeployment(t time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lastDeployment = t
}

// AddError appends an error to the health report.
func (h *HealthChecker) AddError(msg string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.errors = append(h.errors, msg)
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if !h.backendOK {
		status = "degraded"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	if len(h.errors) > 0 {
		status = "unhealthy"
		w.WriteHeader(http.StatusInternalServerError)
	}

	health := HealthStatus{
		Status:         status,
		Timestamp:      time.Now(),
		LastDeployment: h.lastDeployment,
		BackendOK:      h.backendOK,
		Uptime:         time.Since(startTime).String(),
		Errors:         h.errors,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(health)
}
