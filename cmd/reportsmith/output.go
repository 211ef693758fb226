package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// render writes v to w in the selected output format
func render(w io.Writer, format string, v any) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close() // nolint:errcheck
		return enc.Encode(v)
	default:
		return fmt.Errorf("unknown output format %q (want json or yaml)", format)
	}
}
