package httpkit

import (
	"compress/flate"
	"net/http"

	"reportsmith/internal/platform/net/middleware"
)

// CommonStack returns a baseline per module middleware slice
// compose with extra per module middleware as needed in main
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.Logger(),

		// cross-origin (tweak config in main if needed)
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),

		// no blanket timeout: extraction requests legitimately run for
		// minutes; the ollama and docling adapters bound their own work
	}
}
