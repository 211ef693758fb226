// Package service orchestrates detection and extraction for one
// conversion request
package service

import (
	"context"

	"reportsmith/internal/core/detect"
	"reportsmith/internal/core/registry"
	perr "reportsmith/internal/platform/errors"
	"reportsmith/internal/platform/logger"
	"reportsmith/internal/services/api/convert/domain"
)

// Service dispatches markdown to the right extraction procedure
type Service interface {
	// Convert resolves or detects the report type for markdown and runs
	// its extraction exactly once. An empty reportID means auto-detect;
	// filename is an optional detection hint; model overrides the
	// configured default when non-empty
	Convert(ctx context.Context, markdown, reportID, filename, model string) (domain.Conversion, error)
}

type svc struct {
	reg      *registry.Registry
	defaults registry.Settings
	log      *logger.Logger
}

// New constructs the dispatch service with backend defaults
func New(reg *registry.Registry, defaults registry.Settings) Service {
	return &svc{
		reg:      reg,
		defaults: defaults,
		log:      logger.Named("convert"),
	}
}

func (s *svc) Convert(ctx context.Context, markdown, reportID, filename, model string) (domain.Conversion, error) {
	set := s.defaults
	if model != "" {
		set.Model = model
	}

	if reportID != "" {
		return s.convertExplicit(ctx, markdown, reportID, set)
	}
	return s.convertDetected(ctx, markdown, filename, set)
}

// convertExplicit bypasses detection entirely; the success payload
// carries no score or matched keywords
func (s *svc) convertExplicit(ctx context.Context, markdown, reportID string, set registry.Settings) (domain.Conversion, error) {
	spec, err := s.reg.Resolve(reportID)
	if err != nil {
		return domain.Conversion{}, err
	}
	data, err := s.extract(ctx, spec, markdown, set)
	if err != nil {
		return domain.Conversion{}, err
	}
	return domain.Conversion{
		Data:   data,
		Report: &domain.Report{ID: spec.ID, Name: spec.DisplayName},
	}, nil
}

func (s *svc) convertDetected(ctx context.Context, markdown, filename string, set registry.Settings) (domain.Conversion, error) {
	out := detect.Score(s.reg, detect.Input{Markdown: markdown, Filename: filename})

	if out.NoMatch() {
		s.log.Info().Msg("no report type matched")
		return domain.Conversion{
			Message: "Unable to determine report type automatically. Specify report_id to convert.",
		}, nil
	}

	if out.Tied() {
		top := out.Top()
		cands := make([]domain.Candidate, 0, len(top))
		for _, c := range top {
			cands = append(cands, domain.Candidate{ID: c.ID, Name: c.DisplayName, Score: c.Score})
		}
		return domain.Conversion{}, perr.WithDetails(
			perr.Conflictf("multiple report types matched with the same confidence"),
			map[string]any{"candidates": cands},
		)
	}

	best, _ := out.Best()
	spec, err := s.reg.Resolve(best.ID)
	if err != nil {
		return domain.Conversion{}, err
	}

	s.log.Info().
		Str("report_id", best.ID).
		Int("score", best.Score).
		Strs("matched_keywords", best.MatchedKeywords).
		Msg("report type detected")

	data, err := s.extract(ctx, spec, markdown, set)
	if err != nil {
		return domain.Conversion{}, err
	}

	score := best.Score
	return domain.Conversion{
		Data: data,
		Report: &domain.Report{
			ID:              spec.ID,
			Name:            spec.DisplayName,
			Score:           &score,
			MatchedKeywords: best.MatchedKeywords,
		},
	}, nil
}

// extract invokes the spec's procedure once, classifying every fault
// as an extraction failure so raw adapter errors never cross the
// boundary unwrapped
func (s *svc) extract(ctx context.Context, spec registry.Spec, markdown string, set registry.Settings) (map[string]any, error) {
	if spec.Extract == nil {
		return nil, perr.Extractionf("report %q has no extraction procedure", spec.ID)
	}
	ctx = logger.WithReport(ctx, spec.ID)
	data, err := spec.Extract(ctx, markdown, set)
	if err != nil {
		s.log.Error().Str("report_id", spec.ID).Err(err).Msg("extraction failed")
		if perr.CodeOf(err) == perr.ErrorCodeUnknown {
			return nil, perr.Extractionf("conversion failed for report %q: %v", spec.ID, err)
		}
		return nil, perr.WithOp(err, "convert")
	}
	return data, nil
}
