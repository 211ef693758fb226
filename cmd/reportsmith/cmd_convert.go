package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reportsmith/internal/adapters/ollama"
	"reportsmith/internal/core/registry"
	"reportsmith/internal/extract"
	convertsvc "reportsmith/internal/services/api/convert/service"
)

var convertFlags struct {
	reportID  string
	model     string
	ollamaURL string
}

var convertCmd = &cobra.Command{
	Use:   "convert <file.md>",
	Short: "Convert a markdown report to structured JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	f := convertCmd.Flags()
	f.StringVar(&convertFlags.reportID, "report", "", "Explicit report type id (skips detection)")

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&convertFlags.model, "model", "gemma3:12b", "Model name")
	pf.StringVar(&convertFlags.ollamaURL, "ollama-url", "http://localhost:11434", "Ollama base URL")
}

func runConvert(cmd *cobra.Command, args []string) error {
	md, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	llm := ollama.New(convertFlags.ollamaURL)
	reg, err := registry.New(extract.Catalog(llm))
	if err != nil {
		return err
	}

	svc := convertsvc.New(reg, registry.Settings{
		BaseURL: convertFlags.ollamaURL,
		Model:   convertFlags.model,
	})

	out, err := svc.Convert(cmd.Context(), string(md), convertFlags.reportID, args[0], "")
	if err != nil {
		return err
	}
	return render(cmd.OutOrStdout(), rootFlags.output, out)
}
