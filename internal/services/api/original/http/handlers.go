// Package http serves retained original uploads
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"reportsmith/internal/modkit/httpkit"
	phttp "reportsmith/internal/platform/net/http"
	svc "reportsmith/internal/services/api/convert/service"
)

// Register mounts the original-document route on the given router
func Register(r httpkit.Router, store *svc.UploadStore) {
	h := &handlers{store: store}

	r.Get("/{file_id}", h.get)
}

type handlers struct{ store *svc.UploadStore }

// swagger:route GET /original/{file_id} Original originalGet
// @Summary Serve the original uploaded document
// @Tags Original
// @Param file_id path string true "Upload id"
// @Success 200 "document bytes"
// @Failure 404 "unknown or expired id"
// @Router /original/{file_id} [get]
func (h *handlers) get(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	up, err := h.store.Resolve(chi.URLParam(r, "file_id"))
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", up.ContentType)
	if up.ContentType == "application/pdf" {
		// inline so browsers render instead of downloading
		w.Header().Set("Content-Disposition", "inline")
		w.Header().Set("Cache-Control", "no-cache")
	} else {
		w.Header().Set("Content-Disposition", `attachment; filename="`+up.OriginalName+`"`)
	}
	stdhttp.ServeFile(w, r, up.Path)
}
