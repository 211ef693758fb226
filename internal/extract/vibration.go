package extract

import (
	"context"

	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/registry"
)

func vibrationSpec(client *ollama.Client) registry.Spec {
	return registry.Spec{
		ID:          "vibration",
		DisplayName: "Vibration Test Report",
		Description: "Swept vibration schedule with control and profile tables.",
		Keywords: []string{
			"vibration test",
			"control parameters",
			"profile table",
			"schedule",
			"sweep rate",
		},
		Extract: func(ctx context.Context, markdown string, set registry.Settings) (map[string]any, error) {
			return run(ctx, client, set, vibrationPrompt(markdown), vibrationSchema())
		},
	}
}

func vibrationPrompt(markdown string) string {
	return `You are a data extraction assistant. Extract all information from the vibration test report into a strictly valid JSON format.

The vibration test report is in markdown format. Parse all the data carefully and return it as JSON.

Key instructions:
1. Extract test metadata (test number, object name, object type, client, test purpose, date).
2. Extract input channel parameters (input channel, type, range, weighting, etc.).
3. Extract output channel parameters (output channel, type, range).
4. Extract limit parameters (description -> this may be the header but include its value too, maximum force, displacements, velocity, acceleration, frequencies, etc.).
5. Extract control parameters (control strategy -> this may be the header but include its value too, sweep mode, lines, etc.).
6. Extract schedule items as an array of objects, each containing command, level, frequencies, etc.
7. Extract profile details (profile_acceleration_peak, profile_velocity_peak, profile_displacement_peak_to_peak and shaker_acceleration_peak, shaker_velocity_peak, shaker_displacement_peak_to_peak).
8. Extract profile table parameters as an array of objects with frequency, acceleration, velocity, etc.
9. Extract sweep rate and compression rate details (start/stop frequencies, rates).
10. Extract test information (level, demand/control peaks, frequency, sweep details, times -> do not forget the file_save_time).
11. Missing values must be null.
12. Output must strictly conform to the JSON schema below.

Here is the vibration test report markdown:

` + markdown
}

func vibrationSchema() map[string]any {
	return obj(map[string]any{
		"test_metadata": obj(map[string]any{
			"test_number":  nullableStr(),
			"object_name":  nullableStr(),
			"object_type":  nullableStr(),
			"client":       nullableStr(),
			"test_purpose": nullableStr(),
			"date":         nullableStr(),
		}),
		"input_channel_parameters": obj(map[string]any{
			"input_channel": nullableInt(),
			"type":          nullableStr(),
			"range":         nullableInt(),
			"weighting":     nullableInt(),
			"couple":        nullableStr(),
			"transducer":    nullableStr(),
			"sensitivity":   nullableStr(),
			"polarity":      nullableStr(),
			"analyse":       nullableStr(),
			"abort_peak":    nullableStr(),
			"name":          nullableStr(),
			"dc_remove":     nullableStr(),
		}),
		"output_channel_parameters": obj(map[string]any{
			"output_channel": nullableStr(),
			"type":           nullableStr(),
			"range":          nullableInt(),
		}),
		"limit_parameters": obj(map[string]any{
			"description":           nullableStr(),
			"maximum_force":         nullableStr(),
			"maximum_positive_disp": nullableStr(),
			"maximum_negative_disp": nullableStr(),
			"maximum_velocity":      nullableStr(),
			"maximum_acceleration":  nullableStr(),
			"minimum_frequency":     nullableStr(),
			"maximum_frequency":     nullableStr(),
			"maximum_input_voltage": nullableStr(),
			"moving_coil_mass":      nullableStr(),
			"fixture_mass":          nullableStr(),
			"specimen_mass":         nullableStr(),
			"other_mass":            nullableStr(),
			"total_weight":          nullableStr(),
			"drive_limit":           nullableStr(),
			"abort_latency":         nullableStr(),
			"max_gain_on_starting":  nullableStr(),
			"max_gain_on_running":   nullableStr(),
		}),
		"control_parameters": obj(map[string]any{
			"control_strategy":     nullableStr(),
			"sweep_mode":           nullableStr(),
			"lines":                nullableInt(),
			"maximum_frequency":    nullableStr(),
			"filter_type":          nullableStr(),
			"bandwidth":            nullableStr(),
			"level_change_rate":    nullableStr(),
			"change_level":         nullableStr(),
			"abort_rate":           nullableStr(),
			"initial_drive":        nullableStr(),
			"ramp_up_rate":         nullableStr(),
			"pre_test_drive_limit": nullableStr(),
			"resume_from_aborting": nullableStr(),
		}),
		"schedule": arr(obj(map[string]any{
			"command":                nullableStr(),
			"level":                  nullableStr(),
			"frequency_low":          nullableStr(),
			"frequency_high":         nullableStr(),
			"frequency_start":        nullableStr(),
			"sweep_rate":             nullableStr(),
			"sweep_direction":        nullableStr(),
			"sweep_compression_rate": nullableStr(),
			"time_type":              nullableStr(),
			"time_value":             nullableStr(),
			"rstd_dwell":             nullableStr(),
			"parameters":             nullableStr(),
		})),
		"profile": obj(map[string]any{
			"profile_acceleration_peak":         nullableStr(),
			"profile_velocity_peak":             nullableStr(),
			"profile_displacement_peak_to_peak": nullableStr(),
			"shaker_acceleration_peak":          nullableStr(),
			"shaker_velocity_peak":              nullableStr(),
			"shaker_displacement_peak_to_peak":  nullableStr(),
		}),
		"profile_table_parameters": arr(obj(map[string]any{
			"frequency":                 nullableNum(),
			"acceleration":              nullableNum(),
			"velocity":                  nullableNum(),
			"displacement_peak_to_peak": nullableNum(),
			"left_slope":                nullableStr(),
			"right_slope":               nullableStr(),
			"high_alarm":                nullableNum(),
			"low_alarm":                 nullableNum(),
			"high_abort":                nullableNum(),
			"low_abort":                 nullableNum(),
		})),
		"sweep_rate": obj(map[string]any{
			"start_frequency": nullableInt(),
			"sweep_rate_1":    nullableInt(),
			"stop_frequency":  nullableInt(),
			"sweep_rate_2":    nullableInt(),
		}),
		"compression_rate": obj(map[string]any{
			"start_frequency":    nullableInt(),
			"compression_rate_1": nullableInt(),
			"stop_frequency":     nullableInt(),
			"compression_rate_2": nullableInt(),
		}),
		"test_information": obj(map[string]any{
			"level":              nullableStr(),
			"demand_peak":        nullableStr(),
			"control_peak":       nullableStr(),
			"frequency":          nullableStr(),
			"sweep_rate":         nullableStr(),
			"sweep_type":         nullableStr(),
			"total_elapsed_time": nullableStr(),
			"current_level_type": nullableStr(),
			"remaining_time":     nullableStr(),
			"file_save_time":     nullableStr(),
			"begin_time":         nullableStr(),
			"end_time":           nullableStr(),
		}),
	},
		"test_metadata", "input_channel_parameters", "output_channel_parameters",
		"limit_parameters", "control_parameters", "schedule", "profile",
		"profile_table_parameters", "sweep_rate", "compression_rate", "test_information")
}
