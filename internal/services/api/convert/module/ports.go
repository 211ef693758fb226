package module

import (
	convertsvc "reportsmith/internal/services/api/convert/service"
)

// Ports exposes the convert module capabilities to sibling modules
type Ports struct {
	Converter convertsvc.Service
	Uploads   *convertsvc.UploadStore
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
