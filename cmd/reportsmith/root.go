package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	output string
}

var rootCmd = &cobra.Command{
	Use:   "reportsmith",
	Short: "Detect and convert OCR'd test reports to structured JSON",
	Long:  "Reportsmith detects the report type of a markdown document by keyword\nscoring and runs the matching extraction procedure against a local Ollama backend.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&rootFlags.output, "output", "o", "json", "Output format: json or yaml")
	rootCmd.AddCommand(reportsCmd)
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(convertCmd)
	rootCmd.Version = version
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
