// Package module wires conversion into the API using modkit
package module

import (
	"net/http"
	"time"

	"reportsmith/internal/core/registry"
	modkit "reportsmith/internal/modkit"
	"reportsmith/internal/modkit/httpkit"
	str "reportsmith/internal/platform/strings"
	converthttp "reportsmith/internal/services/api/convert/http"
	convertsvc "reportsmith/internal/services/api/convert/service"
)

// Config carries the conversion defaults read at startup
type Config struct {
	Model     string
	UploadDir string
	UploadTTL time.Duration

	// OriginalBase is the public path prefix originals are served from,
	// including any API version segment
	OriginalBase string
}

// Module implements the convert module
type Module struct {
	deps   modkit.Deps
	name   string
	prefix string

	mws       []func(http.Handler) http.Handler
	ports     any
	swaggerOn bool

	subrouter func(httpkit.Router) httpkit.Router
	register  func(httpkit.Router)

	svc      convertsvc.Service
	uploader *convertsvc.Uploader
}

// New constructs the convert module
func New(deps modkit.Deps, cfg Config, opts ...modkit.Option) (*Module, error) {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("convert"), modkit.WithPrefix("/convert")}, opts...)...)

	svc := convertsvc.New(deps.Reports, registry.Settings{
		BaseURL: deps.LLM.BaseURL(),
		Model:   cfg.Model,
	})

	store, err := convertsvc.NewUploadStore(cfg.UploadDir, cfg.UploadTTL)
	if err != nil {
		return nil, err
	}
	var upOpts []convertsvc.UploaderOption
	if cfg.OriginalBase != "" {
		upOpts = append(upOpts, convertsvc.WithOriginalBase(cfg.OriginalBase))
	}
	uploader := convertsvc.NewUploader(deps.OCR, store, svc, upOpts...)

	m := &Module{
		deps:      deps,
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		swaggerOn: b.SwaggerOn,
		subrouter: b.Subrouter,
		svc:       svc,
		uploader:  uploader,
	}
	m.ports = Ports{Converter: svc, Uploads: store}

	external := b.Register
	m.register = func(r httpkit.Router) {
		converthttp.Register(r, converthttp.Deps{Service: m.svc, Uploader: m.uploader})
		if external != nil {
			external(r)
		}
	}
	return m, nil
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r httpkit.Router) {
	r.Route(m.prefix, func(rr httpkit.Router) {
		for _, mw := range m.mws {
			rr.Use(mw)
		}
		if m.subrouter != nil {
			rr = m.subrouter(rr)
		}
		if m.register != nil {
			m.register(rr)
		}
	})
}

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
