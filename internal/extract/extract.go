// Package extract holds the extraction procedures for every known
// report type. Each report gets a prompt, a JSON schema used both as
// the model's structured-output constraint and for local validation,
// and a catalog entry with the detection keywords
package extract

import (
	"context"
	"encoding/json"

	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/registry"
	perr "reportsmith/internal/platform/errors"
)

// Catalog returns the full report catalog bound to the given backend
// client. Order is stable and fixes conflict-candidate ordering
func Catalog(client *ollama.Client) []registry.Spec {
	return []registry.Spec{
		ballisticSpec(client),
		bumpTestSpec(client),
		vibrationSpec(client),
		ammunitionLabSpec(client),
		igniterTestSpec(client),
		peakReportSpec(client),
	}
}

// run is the shared extraction round-trip: send the prompt with the
// schema as the structured-output constraint, decode the message
// content, validate it against the same schema
func run(ctx context.Context, client *ollama.Client, set registry.Settings, prompt string, schema map[string]any) (map[string]any, error) {
	c := client
	if set.BaseURL != "" && set.BaseURL != client.BaseURL() {
		c = client.For(set.BaseURL)
	}

	content, err := c.Chat(ctx, set.Model, prompt, schema)
	if err != nil {
		return nil, err
	}

	var doc map[string]any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, perr.Extractionf("model returned malformed json: %v", err)
	}
	if err := validateAgainstSchema(schema, []byte(content)); err != nil {
		return nil, err
	}
	return doc, nil
}

// mustJSON renders v for embedding in a prompt. Schemas are static so
// a marshal fault is a programming error
func mustJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		panic(err)
	}
	return string(b)
}
