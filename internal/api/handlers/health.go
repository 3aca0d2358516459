package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// HealthCheck represents the health status of the server
type HealthCheck struct {
	Status    string                 `json:"status"`
	Version   string                 `json:"version"`
	GitCommit string                 `json:"git_commit"`
	Checks    map[string]CheckResult `json:"checks"`
	Timestamp string                 `json:"timestamp"`
}

// CheckResult represents the result of a single health check
type CheckResult struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	LatencyMs int64  `json:"latency_ms"`
}

// Pinger probes an external collaborator.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthChecker probes the remote object store backing the feed.
type HealthChecker struct {
	store     Pinger
	version   string
	gitCommit string
}

func NewHealthChecker(store Pinger, version, gitCommit string) *HealthChecker {
	return &HealthChecker{
		store:     store,
		version:   version,
		gitCommit: gitCommit,
	}
}

// Health returns the health check handler. The response is 200 when every
// probe passes and 500 otherwise.
func (h *HealthChecker) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		checks := map[string]CheckResult{
			"object_store": h.checkStore(ctx),
		}

		status := "healthy"
		statusCode := http.StatusOK
		for _, check := range checks {
			if check.Status == "fail" {
				status = "unhealthy"
				statusCode = http.StatusInternalServerError
				break
			}
		}

		response := HealthCheck{
			Status:    status,
			Version:   h.version,
			GitCommit: h.gitCommit,
			Checks:    checks,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_ = json.NewEncoder(w).Encode(response)
	}
}

func (h *HealthChecker) checkStore(ctx context.Context) CheckResult {
	start := time.Now()

	if h.store == nil {
		return CheckResult{
			Status:  "fail",
			Message: "object store client not initialized",
		}
	}

	err := h.store.Ping(ctx)
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return CheckResult{
			Status:    "fail",
			Message:   err.Error(),
			LatencyMs: latency,
		}
	}

	return CheckResult{
		Status:    "pass",
		LatencyMs: latency,
	}
}
