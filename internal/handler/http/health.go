// Package http provides HTTP handlers and middleware for the web API.
// It includes request handlers for articles, newsletter subscriptions and
// users, health check endpoints, metrics collection, authentication, and
// various middleware components.
package http

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"technews/internal/handler/http/respond"
)

// HealthStatus represents the overall health check response.
type HealthStatus struct {
	Status string                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// CheckResult represents the result of an individual health check.
type CheckResult struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler returns a detailed health check handler covering database
// connectivity and connection pool pressure.
func HealthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		status := HealthStatus{
			Status: "healthy",
			Checks: make(map[string]CheckResult),
		}

		if err := db.PingContext(ctx); err != nil {
			status.Status = "unhealthy"
			status.Checks["database"] = CheckResult{
				Status:  "unhealthy",
				Message: "database ping failed",
			}
		} else {
			status.Checks["database"] = CheckResult{Status: "healthy"}
		}

		stats := db.Stats()
		poolCheck := CheckResult{
			Status: "healthy",
			Details: map[string]any{
				"open_connections": stats.OpenConnections,
				"in_use":           stats.InUse,
				"idle":             stats.Idle,
				"max_open":         stats.MaxOpenConnections,
				"wait_count":       stats.WaitCount,
			},
		}
		if stats.MaxOpenConnections > 0 {
			utilization := float64(stats.InUse) / float64(stats.MaxOpenConnections) * 100
			poolCheck.Details["utilization_percent"] = utilization
			if utilization >= 80 {
				poolCheck.Status = "degraded"
				poolCheck.Message = "connection pool utilization high"
				if status.Status == "healthy" {
					status.Status = "degraded"
				}
			}
		}
		status.Checks["connection_pool"] = poolCheck

		code := http.StatusOK
		if status.Status == "unhealthy" {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(w, code, status)
	}
}

// ReadyHandler returns a readiness probe handler. It reports ready only
// when the database answers a ping within a short deadline.
func ReadyHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
			})
			return
		}

		respond.JSON(w, http.StatusOK, map[string]string{
			"status": "ready",
		})
	}
}

// LiveHandler returns a liveness probe handler. It answers 200 as long as
// the process is able to serve requests.
func LiveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{
			"status": "alive",
		})
	}
}
