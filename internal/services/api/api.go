// Package api provides the HTTP API for the application
package api

import (
	"time"

	"reportsmith/internal/adapters/docling"
	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/registry"
	"reportsmith/internal/platform/config"
	"reportsmith/internal/platform/logger"
	phttp "reportsmith/internal/platform/net/http"

	"reportsmith/internal/modkit"
	"reportsmith/internal/modkit/httpkit"
	"reportsmith/internal/modkit/module"
	"reportsmith/internal/modkit/swaggerkit"

	convertmod "reportsmith/internal/services/api/convert/module"
	metamod "reportsmith/internal/services/api/meta/module"
	originalmod "reportsmith/internal/services/api/original/module"
	reportsmod "reportsmith/internal/services/api/reports/module"
)

// Options are the API options
type Options struct {
	Config  config.Conf
	Logger  *logger.Logger
	Reports *registry.Registry
	LLM     *ollama.Client
	OCR     *docling.Converter

	Model     string
	UploadDir string
	UploadTTL time.Duration

	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) error {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg:     opt.Config,
		Reports: opt.Reports,
		LLM:     opt.LLM,
		OCR:     opt.OCR,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// the convert module owns the upload store; the original-document
	// module serves from it
	convert, err := convertmod.New(deps, convertmod.Config{
		Model:        opt.Model,
		UploadDir:    opt.UploadDir,
		UploadTTL:    opt.UploadTTL,
		OriginalBase: "/api/v1/original",
	})
	if err != nil {
		return err
	}
	uploads := module.MustPortsOf[convertmod.Ports](convert).Uploads

	mods := []module.Module{
		metamod.New(deps),
		reportsmod.New(deps),
		convert,
		originalmod.New(uploads),
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	return nil
}
