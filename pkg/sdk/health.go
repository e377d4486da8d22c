package careersetu

import (
	"context"

	healthuc "github.com/kailas-cloud/careersetu/internal/usecase/health"
)

// HealthStatus is the outcome of a health check.
// Checks maps "datasets" (and "database" when a store is configured) to "ok" or "error".
type HealthStatus struct {
	Status string // "ok", "degraded" or "error"
	Checks map[string]string
}

// OK reports whether every check passed.
func (h HealthStatus) OK() bool { return h.Status == string(healthuc.Healthy) }

// Health verifies the CSV datasets are readable and, when configured, pings the store.
func (c *Client) Health(ctx context.Context) HealthStatus {
	report := c.healthSvc.Check(ctx)
	h := HealthStatus{
		Status: string(report.Status),
		Checks: make(map[string]string, len(report.Checks)),
	}
	for name, res := range report.Checks {
		h.Checks[name] = string(res)
	}
	return h
}

type healthUseCase interface {
	Check(ctx context.Context) healthuc.Report
}
