package extract

import (
	"context"
	"fmt"

	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/registry"
)

func igniterTestSpec(client *ollama.Client) registry.Spec {
	return registry.Spec{
		ID:          "igniter_test",
		DisplayName: "Igniter Test Report",
		Description: "Rocket igniter performance report with pressure and timing data.",
		Keywords: []string{
			"igniter test",
			"rocket motor",
			"burn time",
			"volt",
		},
		Extract: func(ctx context.Context, markdown string, set registry.Settings) (map[string]any, error) {
			return run(ctx, client, set, igniterTestPrompt(markdown), igniterTestSchema())
		},
	}
}

func igniterTestPrompt(markdown string) string {
	return fmt.Sprintf(`You are a data extraction assistant.
Extract all relevant information about a **rocket motor test** from the markdown below, and return it as a valid JSON
strictly following the schema provided.

Instructions:
1. Extract general test metadata under `+"`test_metadata`"+` — includes test name, store name, lot no., propellant weight, max pressure, delay, burn time, average, area, voltage supplied and current supplied (current could have a typo such as currect).
2. Extract results under `+"`test_results`"+` — includes pressure and date.
3. Missing or unavailable values should be null.
4. Output must exactly match the schema below.

JSON Schema:
%s

Markdown report:
----------------
%s`, mustJSON(igniterTestSchema()), markdown)
}

func igniterTestSchema() map[string]any {
	return obj(map[string]any{
		"test_metadata": obj(map[string]any{
			"test_name":            nullableStr(),
			"store_name":           nullableStr(),
			"lot_no":               nullableStr(),
			"weight_of_propellant": nullableNum(),
			"max_pressure":         nullableNum(),
			"delay":                nullableNum(),
			"burn_time":            nullableNum(),
			"average":              nullableNum(),
			"area":                 nullableNum(),
			"voltage_supplied":     nullableNum(),
			"current_supplied":     nullableNum(),
		}),
		"test_results": obj(map[string]any{
			"pressure": nullableNum(),
			"date":     nullableStr(),
		}),
	}, "test_metadata", "test_results")
}
