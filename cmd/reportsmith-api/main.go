// @title         Reportsmith API
// @version       0.1.0
// @description   OCR'd report detection and structured JSON extraction

package main

import (
	"context"
	"time"

	"reportsmith/internal/adapters/docling"
	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/registry"
	"reportsmith/internal/extract"
	"reportsmith/internal/platform/config"
	"reportsmith/internal/platform/logger"
	phttp "reportsmith/internal/platform/net/http"

	"reportsmith/internal/services/api"
)

func main() {
	// service-scoped config for HTTP etc (CORE_API_*)
	root := config.New()
	apiCfg := root.Prefix("CORE_API_")

	ollamaCfg := root.Prefix("SERVICE_OLLAMA_")   // inference backend
	doclingCfg := root.Prefix("SERVICE_DOCLING_") // OCR converter

	// bring up logging early
	l := logger.Get()

	llm := ollama.New(ollamaCfg.MayString("URL", "http://localhost:11434"))

	var ocrOpts []docling.Option
	if bin := doclingCfg.MayString("BIN", ""); bin != "" {
		ocrOpts = append(ocrOpts, docling.WithBinary(bin))
	}
	if dev := doclingCfg.MayString("DEVICE", ""); dev != "" {
		ocrOpts = append(ocrOpts, docling.WithDevice(dev))
	}
	ocr := docling.New(ocrOpts...)

	reports, err := registry.New(extract.Catalog(llm))
	if err != nil {
		l.Panic().Err(err).Msg("report catalog is invalid")
	}

	// http server (reads CORE_API_PORT)
	srv := phttp.NewServer(apiCfg)

	// mount our API
	err = api.Mount(
		srv.Router(),
		api.Options{
			Config:         apiCfg,
			Logger:         l,
			Reports:        reports,
			LLM:            llm,
			OCR:            ocr,
			Model:          ollamaCfg.MayString("MODEL", "gemma3:12b"),
			UploadDir:      doclingCfg.MayString("UPLOAD_DIR", "temp_uploads"),
			UploadTTL:      time.Duration(doclingCfg.MayInt("UPLOAD_TTL_SECONDS", 3600)) * time.Second,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", true),
		},
	)
	if err != nil {
		l.Panic().Err(err).Msg("api mount failed")
	}

	// run
	if err := srv.Run(context.Background()); err != nil {
		l.Panic().Err(err).Msg("http server stopped")
	}
}
