// Package health provides health checking functionality for the medical text analyzer.
package health

import (
	"math"
	"net/http"
	"time"

	"github.com/giygas/medtext-analyzer/interfaces"
	"github.com/giygas/medtext-analyzer/scheduler"
)

// HealthCheckerImpl implements the interfaces.HealthChecker interface
type HealthCheckerImpl struct {
	dataStore   interfaces.DataStore
	reloadTimes []string
	now         func() time.Time
}

// NewHealthChecker creates a new health checker with injected dependencies.
// reloadTimes are the scheduled reload times; with none, table age is not checked.
func NewHealthChecker(dataStore interfaces.DataStore, reloadTimes []string) interfaces.HealthChecker {
	return &HealthCheckerImpl{
		dataStore:   dataStore,
		reloadTimes: reloadTimes,
		now:         time.Now,
	}
}

// HealthCheck returns HTTP-specific health data.
// Used by /health HTTP endpoint
func (h *HealthCheckerImpl) HealthCheck() (status string, data map[string]any, httpStatus int) {
	tables := h.dataStore.GetTables()
	lastUpdate := h.dataStore.GetLastUpdated()
	isUpdating := h.dataStore.IsUpdating()
	reloads := len(h.reloadTimes) > 0

	dataAge := h.now().Sub(lastUpdate)

	switch {
	case len(tables.Drugs) == 0:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case reloads && dataAge > 48*time.Hour:
		status = "unhealthy"
		httpStatus = http.StatusServiceUnavailable

	case reloads && dataAge > 24*time.Hour:
		status = "degraded"
		httpStatus = http.StatusServiceUnavailable

	default:
		status = "healthy"
		httpStatus = http.StatusOK
	}

	data = map[string]any{
		"drugs":           len(tables.Drugs),
		"interactions":    len(tables.Interactions),
		"side_effects":    len(tables.SideEffects),
		"is_updating":     isUpdating,
		"reloads_enabled": reloads,
	}

	if !lastUpdate.IsZero() {
		data["last_update"] = lastUpdate.Format(time.RFC3339)
		data["data_age_hours"] = math.Round(dataAge.Hours()*10) / 10
	}

	if next := h.CalculateNextUpdate(); !next.IsZero() {
		data["next_update"] = next.Format(time.RFC3339)
	}

	if start := h.dataStore.GetServerStartTime(); !start.IsZero() {
		data["uptime_seconds"] = math.Round(h.now().Sub(start).Seconds())
	}

	return status, data, httpStatus
}

// CalculateNextUpdate returns the next scheduled reload time
func (h *HealthCheckerImpl) CalculateNextUpdate() time.Time {
	return scheduler.CalculateNextUpdate(h.reloadTimes, h.now())
}
