// Package http provides http transport for the report catalog
package http

import (
	stdhttp "net/http"

	"reportsmith/internal/modkit/httpkit"
	svc "reportsmith/internal/services/api/reports/service"
)

// Register mounts the reports endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Get(r, "/", h.list)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /reports Reports reportsList
// @Summary List registered report types
// @Tags Reports
// @Produce json
// @Success 200 {object} domain.ListResponse "ok"
// @Router /reports [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context()), nil
}
