package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lyndonlyu/tact/internal/config"
	"github.com/lyndonlyu/tact/internal/health"
	"github.com/lyndonlyu/tact/internal/tokenizer"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check config, encodings, history and the models CSV",
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	path, err := resolveConfigPath()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, styleBanner.Render("TACT Doctor"))
	fmt.Fprintln(out, styleInfo.Render("config: "+path))
	fmt.Fprintln(out)

	components := []health.ComponentStatus{health.CheckConfig(path)}

	cfg, err := config.Load(path)
	if err != nil {
		cfg = config.Default()
	}
	_ = cfg.EnsureDirs()
	lib := tokenizer.NewTiktoken(tokenizer.Options{Offline: cfg.Tokenizer.Offline})
	components = append(components, health.CheckTokenizer(lib, tokenizer.KnownEncodings())...)
	components = append(components, health.CheckHistory(cfg))

	csv := modelsCSV
	if csv == "" {
		csv = cfg.Models.CSV
	}
	components = append(components, health.CheckModelsCSV(csv, lib))

	report := health.NewReport(components)
	fmt.Fprint(out, health.FormatReport(report))

	if report.Level >= health.RED {
		return fmt.Errorf("doctor: health is %s", report.Level)
	}
	return nil
}
