// Package modkit provides module wiring and core deps
package modkit

import (
	"reportsmith/internal/adapters/docling"
	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/registry"
	"reportsmith/internal/platform/config"
	"reportsmith/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	Reports *registry.Registry
	LLM     *ollama.Client
	OCR     *docling.Converter
}

// ZeroOK returns true when deps are safe to use with zero values in tests
// consumers should still nil check for optional adapters
func (d Deps) ZeroOK() bool { return true }
