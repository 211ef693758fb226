package module

import (
	"context"

	"reportsmith/internal/services/api/reports/domain"
	reportssvc "reportsmith/internal/services/api/reports/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

type adaptReportsPort struct{ svc reportssvc.Service }

// List returns the registered report catalog
func (a adaptReportsPort) List(ctx context.Context) domain.ListResponse {
	return a.svc.List(ctx)
}
