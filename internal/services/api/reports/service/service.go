// Package service exposes the report catalog
package service

import (
	"context"

	"reportsmith/internal/core/registry"
	"reportsmith/internal/services/api/reports/domain"
)

// Service lists registered report types
type Service interface {
	List(ctx context.Context) domain.ListResponse
}

type svc struct {
	reg *registry.Registry
}

// New constructs the reports service
func New(reg *registry.Registry) Service { return &svc{reg: reg} }

func (s *svc) List(context.Context) domain.ListResponse {
	specs := s.reg.All()
	out := domain.ListResponse{Reports: make([]domain.ReportInfo, 0, len(specs))}
	for _, sp := range specs {
		out.Reports = append(out.Reports, domain.ReportInfo{
			ID:          sp.ID,
			Name:        sp.DisplayName,
			Description: sp.Description,
			Keywords:    sp.Keywords,
		})
	}
	return out
}
