package extract

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"

	perr "reportsmith/internal/platform/errors"
)

// validateAgainstSchema checks data against schemaMap so a model that
// ignores the structured-output constraint still cannot smuggle a
// nonconforming document past us
func validateAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return perr.Internalf("marshal schema: %v", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return perr.Internalf("add schema resource: %v", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return perr.Internalf("compile schema: %v", err)
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return perr.Extractionf("decode extracted document: %v", err)
	}
	if err := schema.Validate(v); err != nil {
		return perr.Extractionf("extracted document violates schema: %v", err)
	}
	return nil
}
