package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lyndonlyu/tact/internal/modelcsv"
	"github.com/lyndonlyu/tact/internal/registry"
	"github.com/lyndonlyu/tact/internal/tokenizer"
)

var modelsFormat string

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Model to encoding mappings",
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the models available for counting",
	RunE:  runModelsList,
}

var modelsCheckCmd = &cobra.Command{
	Use:   "check <csv>",
	Short: "Validate a models CSV without using it",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsCheck,
}

var modelsExportCmd = &cobra.Command{
	Use:   "export <csv>",
	Short: "Write the current models to a CSV",
	Args:  cobra.ExactArgs(1),
	RunE:  runModelsExport,
}

func init() {
	modelsListCmd.Flags().StringVar(&modelsFormat, "format", "", "Output format (json)")
	modelsCmd.AddCommand(modelsListCmd, modelsCheckCmd, modelsExportCmd)
	rootCmd.AddCommand(modelsCmd)
}

type modelRow struct {
	registry.ModelEntry
	Native   string `json:"native_encoding,omitempty"`
	Selected bool   `json:"selected"`
}

func runModelsList(cmd *cobra.Command, args []string) error {
	a, err := bootstrap("cli", nil)
	if err != nil {
		return err
	}
	defer a.close()
	if _, err := a.prepare(); err != nil {
		return err
	}

	var rows []modelRow
	for _, e := range a.session.Registry().Entries() {
		native, _ := tokenizer.NativeEncodingName(e.ModelName)
		rows = append(rows, modelRow{ModelEntry: e, Native: native, Selected: e.ModelName == a.session.Selected()})
	}

	out := cmd.OutOrStdout()
	if modelsFormat == "json" {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("models: json marshal: %w", err)
		}
		fmt.Fprintln(out, string(data))
		return nil
	}
	fmt.Fprint(out, formatModelRows(rows))
	return nil
}

func formatModelRows(rows []modelRow) string {
	var b strings.Builder
	fmt.Fprintf(&b, "  %-30s %-14s %-14s\n", "MODEL", "ENCODING", "NATIVE")
	for _, r := range rows {
		mark := " "
		if r.Selected {
			mark = "*"
		}
		native := r.Native
		if native == "" {
			native = "-"
		}
		fmt.Fprintf(&b, "%s %-30s %-14s %-14s\n", mark, r.ModelName, r.EncodingName, native)
	}
	return b.String()
}

func runModelsCheck(cmd *cobra.Command, args []string) error {
	a, err := bootstrap("cli", nil)
	if err != nil {
		return err
	}
	defer a.close()

	table, err := modelcsv.ReadFile(args[0])
	if err != nil {
		return err
	}
	scratch := registry.Default()
	res, err := scratch.Load(table, a.lib)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %d models, %d rows dropped\n", args[0], res.Loaded, res.Dropped)
	for _, w := range res.Warnings {
		fmt.Fprintln(out, styleWarning.Render("warning: "+w.String()))
	}
	if len(res.Warnings) == 0 {
		fmt.Fprintln(out, styleSuccess.Render("OK"))
	}
	return nil
}

func runModelsExport(cmd *cobra.Command, args []string) error {
	a, err := bootstrap("cli", nil)
	if err != nil {
		return err
	}
	defer a.close()
	if _, err := a.prepare(); err != nil {
		return err
	}

	entries := a.session.Registry().Entries()
	if err := modelcsv.WriteFile(args[0], entries); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d models to %s\n", len(entries), args[0])
	return nil
}
