package extract

import (
	"context"
	"fmt"

	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/registry"
)

func peakReportSpec(client *ollama.Client) registry.Spec {
	return registry.Spec{
		ID:          "peak_report",
		DisplayName: "Chromatographic Peak Report",
		Description: "Chromatography peak table with retention times and areas.",
		Keywords: []string{
			"chromatographic",
			"peak",
			"retention time",
			"peak results",
		},
		Extract: func(ctx context.Context, markdown string, set registry.Settings) (map[string]any, error) {
			return run(ctx, client, set, peakReportPrompt(markdown), peakReportSchema())
		},
	}
}

func peakReportPrompt(markdown string) string {
	return fmt.Sprintf(`You are a data extraction assistant. Extract all relevant information about a **chromatographic analysis report**
from the markdown below and return it as a valid JSON strictly following the schema provided.

Instructions:
1. Extract general test metadata under "test_metadata" — includes plant_name, name, position, instrument_method, volume, type, processor, and function.
2. Extract all peak details under "peak_results_table" — includes index, name, retention_time, area, height, and relative_height. The last row "Total" should be included as a new index appended to the list (for eg: index 1 -> 2 -> total). The index should not be null.
3. Missing or unavailable values should be null.
4. Output must exactly match the schema below.

JSON Schema:
%s

Markdown report:
----------------
%s`, mustJSON(peakReportSchema()), markdown)
}

func peakReportSchema() map[string]any {
	return obj(map[string]any{
		"test_metadata": obj(map[string]any{
			"plant_name":        nullableStr(),
			"name":              nullableStr(),
			"position":          nullableStr(),
			"instrument_method": nullableStr(),
			"volume":            nullableStr(),
			"type":              nullableStr(),
			"processor":         nullableStr(),
			"function":          nullableStr(),
		}),
		"peak_results_table": arr(obj(map[string]any{
			// the trailing Total row uses a string index
			"index":           nullableScalar("integer", "string"),
			"name":            nullableStr(),
			"retention_time":  nullableNum(),
			"area":            nullableNum(),
			"height":          nullableNum(),
			"relative_height": nullableNum(),
		})),
	}, "test_metadata", "peak_results_table")
}
