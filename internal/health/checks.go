package health

import (
	"fmt"
	"strings"

	"github.com/lyndonlyu/tact/internal/config"
	"github.com/lyndonlyu/tact/internal/history"
	"github.com/lyndonlyu/tact/internal/modelcsv"
	"github.com/lyndonlyu/tact/internal/registry"
	"github.com/lyndonlyu/tact/internal/tokenizer"
)

// CheckConfig verifies that the configuration file loads and validates.
func CheckConfig(path string) ComponentStatus {
	cs := ComponentStatus{
		Name:     "config",
		Category: "critical",
	}

	cfg, err := config.Load(path)
	if err != nil {
		cs.Healthy = false
		cs.Detail = fmt.Sprintf("Failed to load: %v", err)
		return cs
	}
	if err := cfg.Validate(); err != nil {
		cs.Healthy = false
		cs.Detail = fmt.Sprintf("Invalid: %v", err)
		return cs
	}

	cs.Healthy = true
	cs.Detail = "Config loaded"
	return cs
}

// CheckTokenizer loads each named encoding through lib. The default
// registry's encodings are critical; the rest are reported but optional.
func CheckTokenizer(lib tokenizer.Library, names []string) []ComponentStatus {
	required := make(map[string]bool)
	for _, e := range registry.DefaultEntries {
		required[e.EncodingName] = true
	}

	var out []ComponentStatus
	for _, name := range names {
		cs := ComponentStatus{
			Name:     "encoding:" + name,
			Category: "optional",
		}
		if required[name] {
			cs.Category = "critical"
		}
		enc, err := lib.GetEncoding(name)
		if err != nil {
			cs.Healthy = false
			cs.Detail = fmt.Sprintf("Unavailable: %v", err)
		} else {
			cs.Healthy = true
			cs.Detail = fmt.Sprintf("Loaded (%q = %d tokens)", "hello world", tokenizer.Count(enc, "hello world"))
		}
		out = append(out, cs)
	}
	return out
}

// CheckHistory opens the history database when history is enabled.
func CheckHistory(cfg *config.Config) ComponentStatus {
	cs := ComponentStatus{
		Name:     "history",
		Category: "important",
	}
	if !cfg.History.Enabled {
		cs.Healthy = true
		cs.Detail = "Disabled"
		return cs
	}

	db, err := history.Open(cfg.History.Path)
	if err != nil {
		cs.Healthy = false
		cs.Detail = fmt.Sprintf("Cannot open %s: %v", cfg.History.Path, err)
		return cs
	}
	defer db.Close()

	s, err := db.Stats()
	if err != nil {
		cs.Healthy = false
		cs.Detail = fmt.Sprintf("Query failed: %v", err)
		return cs
	}
	cs.Healthy = true
	cs.Detail = fmt.Sprintf("%d counts recorded", s.Count)
	return cs
}

// CheckModelsCSV imports the configured models CSV into a scratch registry.
// Warnings degrade the component without failing it outright.
func CheckModelsCSV(path string, lib tokenizer.Library) ComponentStatus {
	cs := ComponentStatus{
		Name:     "models_csv",
		Category: "important",
	}
	if path == "" {
		cs.Healthy = true
		cs.Detail = "Not configured (built-in models)"
		return cs
	}

	table, err := modelcsv.ReadFile(path)
	if err != nil {
		cs.Healthy = false
		cs.Detail = err.Error()
		return cs
	}
	res, err := registry.Default().Load(table, lib)
	if err != nil {
		cs.Healthy = false
		cs.Detail = err.Error()
		return cs
	}
	if len(res.Warnings) > 0 {
		var parts []string
		for _, w := range res.Warnings {
			parts = append(parts, w.String())
		}
		cs.Healthy = false
		cs.Detail = fmt.Sprintf("%d models, %d warnings: %s", res.Loaded, len(res.Warnings), strings.Join(parts, "; "))
		return cs
	}
	cs.Healthy = true
	cs.Detail = fmt.Sprintf("%d models", res.Loaded)
	return cs
}

// FormatReport renders r as one line per component.
func FormatReport(r *Report) string {
	var b strings.Builder
	for _, c := range r.Components {
		mark := "OK  "
		if !c.Healthy {
			mark = "FAIL"
		}
		fmt.Fprintf(&b, "[%s] %-22s %-9s %s\n", mark, c.Name, c.Category, c.Detail)
	}
	fmt.Fprintf(&b, "\nOverall: %s\n", r.Level)
	return b.String()
}
