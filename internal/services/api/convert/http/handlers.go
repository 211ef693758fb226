// Package http provides http transport for conversion
package http

import (
	"io"
	stdhttp "net/http"
	"strconv"

	"reportsmith/internal/modkit/httpkit"
	perr "reportsmith/internal/platform/errors"
	"reportsmith/internal/platform/net/http/bind"
	"reportsmith/internal/services/api/convert/domain"
	svc "reportsmith/internal/services/api/convert/service"
)

// uploads are read fully into memory before OCR; scanned reports are
// tens of megabytes at worst
const maxUploadBytes = 64 << 20

// Deps are the handler dependencies
type Deps struct {
	Service  svc.Service
	Uploader *svc.Uploader
}

// Register mounts the conversion endpoints on the given router
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}

	r.Post("/", httpkit.Handle(h.upload))
	httpkit.Post(r, "/markdown", h.markdown)
}

type handlers struct{ deps Deps }

// swagger:route POST /convert Convert convertUpload
// @Summary Convert an uploaded document to structured JSON
// @Tags Convert
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Document to convert (PDF, DOCX, ...)"
// @Param report_id formData string false "Explicit report type id"
// @Param model formData string false "Model override"
// @Param device formData string false "OCR device override (cuda or cpu)"
// @Param num_threads formData int false "OCR thread count override"
// @Success 200 {object} domain.UploadResult "ok"
// @Failure 400 "unknown report id"
// @Failure 409 "ambiguous detection"
// @Failure 500 "conversion failed"
// @Router /convert [post]
func (h *handlers) upload(r *stdhttp.Request) httpkit.Response {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return httpkit.Error(perr.InvalidArgf("invalid multipart form: %v", err))
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return httpkit.Error(perr.Validationf("file field is required"))
	}
	defer file.Close() // nolint:errcheck

	content, err := io.ReadAll(io.LimitReader(file, maxUploadBytes))
	if err != nil {
		return httpkit.Error(perr.Internalf("failed to read uploaded file: %v", err))
	}

	threads := 0
	if raw := r.FormValue("num_threads"); raw != "" {
		threads, err = strconv.Atoi(raw)
		if err != nil || threads < 1 {
			return httpkit.Error(perr.WithField(perr.Validationf("num_threads must be a positive integer, got %q", raw), "num_threads"))
		}
	}

	out, err := h.deps.Uploader.Convert(r.Context(), svc.UploadInput{
		Filename:   header.Filename,
		Content:    content,
		ReportID:   r.FormValue("report_id"),
		Model:      r.FormValue("model"),
		Device:     r.FormValue("device"),
		NumThreads: threads,
	})
	if err != nil {
		return httpkit.Error(err)
	}
	return httpkit.OK(out)
}

// swagger:route POST /convert/markdown Convert convertMarkdown
// @Summary Convert markdown to structured JSON without the OCR step
// @Tags Convert
// @Accept json
// @Produce json
// @Param payload body domain.MarkdownInput true "Markdown and optional report selection"
// @Success 200 {object} domain.Conversion "ok"
// @Failure 400 "unknown report id or invalid body"
// @Failure 409 "ambiguous detection"
// @Failure 500 "conversion failed"
// @Router /convert/markdown [post]
func (h *handlers) markdown(r *stdhttp.Request) (any, error) {
	in, err := bind.ParseJSON[domain.MarkdownInput](r)
	if err != nil {
		return nil, err
	}
	return h.deps.Service.Convert(r.Context(), in.Markdown, in.ReportID, "", in.Model)
}
