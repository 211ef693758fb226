package extract

import (
	"context"

	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/registry"
)

func bumpTestSpec(client *ollama.Client) registry.Spec {
	return registry.Spec{
		ID:          "bump_test",
		DisplayName: "Bump Test Report",
		Description: "Vibration bump test results with peak and pulse duration.",
		Keywords: []string{
			"bump test",
			"accelerometer",
			"pulse duration",
			"total no of bumps",
		},
		Extract: func(ctx context.Context, markdown string, set registry.Settings) (map[string]any, error) {
			return run(ctx, client, set, bumpTestPrompt(markdown), bumpTestSchema())
		},
	}
}

func bumpTestPrompt(markdown string) string {
	return `You are a data extraction assistant. Extract all information from the bump test report into a strictly valid JSON structure.

The bump test report is written in markdown format. Parse all relevant fields and return it as valid JSON matching the provided schema exactly.

Key extraction rules:
1. Extract the general report information (title, bump test number, date, time, operator name, channel number, accelerometer sensitivity) and place it inside the "metadata" array as a single object.
2. Extract all test result rows (if multiple bumps are listed, include each one separately) under "test_results".
3. Numeric values must be stored as numbers (not strings).
4. Dates must remain in ISO or string date format (e.g., "2025-10-16" or "16-Oct-2025").
5. If any value is missing, use null.
6. The output must be valid JSON, conforming exactly to the schema.
7. Do not include any extra text, only the JSON.

Here is the markdown content of the bump test report:

` + markdown
}

func bumpTestSchema() map[string]any {
	return obj(map[string]any{
		"metadata": arr(obj(map[string]any{
			"report_title":              nullableStr(),
			"bump_test_number":          nullableInt(),
			"time":                      nullableStr(),
			"date":                      nullableStr(),
			"test_operator":             nullableStr(),
			"channel_number":            nullableInt(),
			"accelerometer_sensitivity": nullableNum(),
		})),
		"test_results": arr(obj(map[string]any{
			"peak":             nullableNum(),
			"pulse_duration":   nullableNum(),
			"velocity":         nullableNum(),
			"filter_cut_off":   nullableInt(),
			"rate":             nullableInt(),
			"total_no_of_bumps": nullableInt(),
		})),
	}, "metadata", "test_results")
}
