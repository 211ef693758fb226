package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/detect"
	"reportsmith/internal/core/registry"
	"reportsmith/internal/extract"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file.md>",
	Short: "Score a markdown file against every report type",
	Args:  cobra.ExactArgs(1),
	RunE:  runDetect,
}

type detectRow struct {
	ID              string   `json:"id" yaml:"id"`
	Name            string   `json:"name" yaml:"name"`
	Score           int      `json:"score" yaml:"score"`
	MatchedKeywords []string `json:"matched_keywords,omitempty" yaml:"matched_keywords,omitempty"`
}

func runDetect(cmd *cobra.Command, args []string) error {
	md, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	reg, err := registry.New(extract.Catalog(ollama.New(convertFlags.ollamaURL)))
	if err != nil {
		return err
	}

	out := detect.Score(reg, detect.Input{Markdown: string(md), Filename: args[0]})

	rows := make([]detectRow, 0, len(out.Candidates))
	for _, c := range out.Candidates {
		rows = append(rows, detectRow{ID: c.ID, Name: c.DisplayName, Score: c.Score, MatchedKeywords: c.MatchedKeywords})
	}

	result := map[string]any{"candidates": rows}
	switch {
	case out.NoMatch():
		result["message"] = "No report type matched. Specify --report to convert."
	case out.Tied():
		result["message"] = "Multiple report types matched with the same confidence."
	default:
		best, _ := out.Best()
		result["best"] = best.ID
	}
	return render(cmd.OutOrStdout(), rootFlags.output, result)
}
