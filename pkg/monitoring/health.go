package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

// HealthStatus represents the health status of a component
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
)

// HealthCheck is the result of probing one dependency
type HealthCheck struct {
	Name        string       `json:"name"`
	Status      HealthStatus `json:"status"`
	Message     string       `json:"message,omitempty"`
	LastChecked time.Time    `json:"last_checked"`
}

// HealthReport is the overall health report served to probes
type HealthReport struct {
	Status    HealthStatus  `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Service   string        `json:"service"`
	Checks    []HealthCheck `json:"checks,omitempty"`
}

// CheckFunc probes one dependency; a non-nil error marks it unhealthy
type CheckFunc func(ctx context.Context) error

// HealthManager runs registered dependency probes and serves the
// aggregate report. The console itself is healthy as long as it can
// serve pages; the checks report whether the upstream API is reachable.
type HealthManager struct {
	service string
	timeout time.Duration

	mu       sync.RWMutex
	checkers map[string]CheckFunc
}

// NewHealthManager creates a health manager for the named service
func NewHealthManager(service string) *HealthManager {
	return &HealthManager{
		service:  service,
		timeout:  5 * time.Second,
		checkers: make(map[string]CheckFunc),
	}
}

// RegisterChecker registers a dependency probe
func (hm *HealthManager) RegisterChecker(name string, check CheckFunc) {
	hm.mu.Lock()
	defer hm.mu.Unlock()
	hm.checkers[name] = check
}

// Report runs every registered probe and aggregates the result. The
// report is unhealthy when any probe fails.
func (hm *HealthManager) Report(ctx context.Context) HealthReport {
	hm.mu.RLock()
	checkers := make(map[string]CheckFunc, len(hm.checkers))
	for name, check := range hm.checkers {
		checkers[name] = check
	}
	timeout := hm.timeout
	hm.mu.RUnlock()

	report := HealthReport{
		Status:    HealthStatusHealthy,
		Timestamp: time.Now(),
		Service:   hm.service,
	}

	for name, check := range checkers {
		checkCtx, cancel := context.WithTimeout(ctx, timeout)
		err := check(checkCtx)
		cancel()

		result := HealthCheck{
			Name:        name,
			Status:      HealthStatusHealthy,
			LastChecked: time.Now(),
		}
		if err != nil {
			result.Status = HealthStatusUnhealthy
			result.Message = err.Error()
			report.Status = HealthStatusUnhealthy
		}
		report.Checks = append(report.Checks, result)
	}
	return report
}

// Handler serves the health report as JSON, 503 when unhealthy
func (hm *HealthManager) Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		report := hm.Report(r.Context())

		w.Header().Set("Content-Type", "application/json")
		if report.Status != HealthStatusHealthy {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
		json.NewEncoder(w).Encode(report)
	}
}
