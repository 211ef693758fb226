// Package swaggerkit provides OpenAPI swagger UI integration for HTTP services
package swaggerkit

import (
	"encoding/json"
	"net/http"

	"reportsmith/internal/platform/config"
)

// SpecMutator lets modules tweak the served spec before it goes out
type SpecMutator func(map[string]any)

// mutators is the in process registry for spec mutators
var mutators []SpecMutator

// docReader is a seam so tests can inject a different base document
var docReader = func() string { return baseSpec }

// baseSpec is the hand maintained skeleton; modules contribute their paths
// through Register so the UI always has something to load
const baseSpec = `{"openapi":"3.0.3","info":{"title":"Reportsmith API","version":"0.1.0"},"paths":{}}`

// Register adds a spec mutator for swagger JSON
// call this from module init so it is wired automatically
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// serveDocJSON serves swagger JSON and lets modules adjust details
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := docReader()

		var spec map[string]any
		if err := json.Unmarshal([]byte(raw), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/api/v1")

		cfg := config.New().Prefix("CORE_API_")
		if v := cfg.MayString("DOCS_TITLE_SUFFIX", ""); v != "" {
			if info, ok := spec["info"].(map[string]any); ok {
				if title, ok := info["title"].(string); ok {
					info["title"] = title + " " + v
				}
			}
		}

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers makes sure the spec has a servers array for the UI base url
func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["servers"]; ok {
		return
	}
	spec["servers"] = []any{map[string]any{"url": url}}
}
