package extract

import (
	"context"

	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/registry"
)

func ballisticSpec(client *ollama.Client) registry.Spec {
	return registry.Spec{
		ID:          "ballistic",
		DisplayName: "Ballistic Test Report",
		Description: "Velocity summary tables with V0/V45 metrics and summary statistics.",
		Keywords: []string{
			"ballistic test",
			"v0",
			"v20",
			"summary results",
			"velocity",
		},
		Extract: func(ctx context.Context, markdown string, set registry.Settings) (map[string]any, error) {
			return run(ctx, client, set, ballisticPrompt(markdown), ballisticSchema())
		},
	}
}

func ballisticPrompt(markdown string) string {
	return `You are a data extraction assistant. Extract all information from the lab report into a strictly valid JSON format.

The lab report is in markdown format. Parse all the data carefully and return it as JSON.

Key instructions:
1. Extract metadata (date, operator)
2. Extract test parameters (weapon, ammo, environment)
3. Extract all test results with velocities and notes
4. Extract or calculate summary statistics (avg, max, min, delta, sdev, mdev)
5. Each summary statistic (avg, max, min, delta, sdev, mdev) must be a separate object in an array named "summary_results".
6. Numeric fields must be numbers, not strings.
7. Missing values must be null.
8. Output must strictly conform to the JSON schema below.

Here is the lab report markdown:

` + markdown
}

func ballisticSchema() map[string]any {
	velocityRow := func(index map[string]any) map[string]any {
		return obj(map[string]any{
			"index":   index,
			"v0_m/s":  nullableNum(),
			"v5_m/s":  nullableNum(),
			"v10_m/s": nullableNum(),
			"v20_m/s": nullableNum(),
			"v30_m/s": nullableNum(),
			"v45_m/s": nullableNum(),
			"notes":   nullableStr(),
		}, "index")
	}

	return obj(map[string]any{
		"report_metadata": obj(map[string]any{
			"date":     nullableStr(),
			"operator": nullableStr(),
		}),
		"test_parameters": obj(map[string]any{
			"weapon_type":     nullableStr(),
			"weapon_sn":       nullableStr(),
			"ammunition_type": nullableStr(),
			"ammunition_sn":   nullableStr(),
			"air_temperature": nullableNum(),
			"air_pressure":    nullableNum(),
			"air_humidity":    nullableNum(),
		}),
		"test_results": arr(velocityRow(map[string]any{"type": "integer"})),
		// summary rows are keyed by statistic name: avg, max, min, delta, sdev, mdev
		"summary_results": arr(velocityRow(map[string]any{"type": "string"})),
	}, "report_metadata", "test_parameters", "test_results", "summary_results")
}
