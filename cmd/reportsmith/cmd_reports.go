package main

import (
	"github.com/spf13/cobra"

	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/registry"
	"reportsmith/internal/extract"
)

var reportsCmd = &cobra.Command{
	Use:   "reports",
	Short: "List the registered report types",
	RunE:  runReports,
}

type reportRow struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Keywords    []string `json:"keywords" yaml:"keywords"`
}

func runReports(cmd *cobra.Command, _ []string) error {
	reg, err := registry.New(extract.Catalog(ollama.New(convertFlags.ollamaURL)))
	if err != nil {
		return err
	}

	rows := make([]reportRow, 0, reg.Len())
	for _, s := range reg.All() {
		rows = append(rows, reportRow{
			ID:          s.ID,
			Name:        s.DisplayName,
			Description: s.Description,
			Keywords:    s.Keywords,
		})
	}
	return render(cmd.OutOrStdout(), rootFlags.output, map[string]any{"reports": rows})
}
