package extract

import (
	"context"
	"fmt"

	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/registry"
)

func ammunitionLabSpec(client *ollama.Client) registry.Spec {
	return registry.Spec{
		ID:          "ammunition_lab",
		DisplayName: "Ammunition Laboratory Report",
		Description: "Laboratory analysis report with test parameters and results table.",
		Keywords: []string{
			"lab test report",
			"sample name",
			"spec limits",
			"test parameters",
		},
		Extract: func(ctx context.Context, markdown string, set registry.Settings) (map[string]any, error) {
			return run(ctx, client, set, ammunitionLabPrompt(markdown), ammunitionLabSchema())
		},
	}
}

func ammunitionLabPrompt(markdown string) string {
	return fmt.Sprintf(`You are a data extraction assistant.

Extract all relevant laboratory test information from the markdown below and return it as a valid JSON
strictly following the schema provided.

Instructions:
1. Extract general test metadata under `+"`test_metadata`"+`.
2. Extract tabular test data under `+"`test_table`"+`, where each row corresponds to test_parameters, spec_limits, unit, and results.
3. Missing or unavailable values should be null.
4. The output must exactly match the schema below.

JSON Schema:
%s

Markdown report:
----------------
%s`, mustJSON(ammunitionLabSchema()), markdown)
}

func ammunitionLabSchema() map[string]any {
	return obj(map[string]any{
		"test_metadata": obj(map[string]any{
			"lab_name":                 nullableStr(),
			"test_report_no":           nullableStr(),
			"sub":                      nullableStr(),
			"date":                     nullableStr(),
			"sample_name":              nullableStr(),
			"item_code":                nullableInt(),
			"spec_no":                  nullableStr(),
			"customer_name":            nullableStr(),
			"reference":                nullableStr(),
			"sample_type":              nullableStr(),
			"sample_mode":              nullableStr(),
			"sample_cd":                nullableStr(),
			"specific_req":             nullableStr(),
			"spec_req_det":             nullableStr(),
			"sampling_plan":            nullableStr(),
			"sample_receipt_date":      nullableStr(),
			"analysis_completion_date": nullableStr(),
			"test_condition":           nullableStr(),
			"remarks":                  nullableStr(),
			"qc_lab_reg_no":            nullableInt(),
		}),
		"test_table": arr(obj(map[string]any{
			"test_parameters": nullableStr(),
			"spec_limits":     nullableStr(),
			"unit":            nullableStr(),
			"results":         nullableStr(),
		})),
	}, "test_metadata", "test_table")
}
