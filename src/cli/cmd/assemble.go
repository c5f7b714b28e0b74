package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/boga881/drupalextension/src/assembly"
	"github.com/boga881/drupalextension/src/output"
)

var assembleFormat string

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble the component registry and print it",
	Long: `Normalize the extension configuration, activate its drivers, bind tagged
collaborators and print the frozen registry.

Formats: text (framed sections), yaml, json.`,
	Args: cobra.NoArgs,
	RunE: runAssemble,
}

func init() {
	assembleCmd.Flags().StringVar(&assembleFormat, "format", "text", "output format: text, yaml or json")

	rootCmd.AddCommand(assembleCmd)
}

func runAssemble(cmd *cobra.Command, args []string) error {
	switch assembleFormat {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("unknown format %q (want text, yaml or json)", assembleFormat)
	}

	doc, path, err := loadDocument()
	if err != nil {
		return err
	}

	start := time.Now()
	res, err := assembly.Assemble(doc, assembly.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	elapsed := time.Since(start)

	w := cmd.OutOrStdout()
	switch assembleFormat {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(output.NewSnapshot(res)); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(output.NewSnapshot(res))
	default:
		output.NewPrinter(w).Result(res, elapsed)
		return nil
	}
}
