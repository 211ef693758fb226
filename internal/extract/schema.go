package extract

// JSON-Schema construction helpers. Every report schema is an object
// tree of these; optional fields are nullable unions per the
// structured-output convention

func obj(props map[string]any, required ...string) map[string]any {
	s := map[string]any{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		s["required"] = required
	}
	return s
}

func arr(item map[string]any) map[string]any {
	return map[string]any{"type": "array", "items": item}
}

func nullable(typ string) map[string]any {
	return map[string]any{"type": []string{typ, "null"}}
}

func nullableNum() map[string]any { return nullable("number") }
func nullableStr() map[string]any { return nullable("string") }
func nullableInt() map[string]any { return nullable("integer") }

// nullableScalar admits any of the given primitive types or null
func nullableScalar(types ...string) map[string]any {
	return map[string]any{"type": append(types, "null")}
}
