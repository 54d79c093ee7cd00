package health

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lyndonlyu/tact/internal/config"
	"github.com/lyndonlyu/tact/internal/tokenizer/tokenizertest"
)

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{GREEN, "GREEN"},
		{YELLOW, "YELLOW"},
		{RED, "RED"},
		{CRITICAL, "CRITICAL"},
		{Level(42), "UNKNOWN"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.expected, tc.level.String(), "Level %d should stringify correctly", tc.level)
	}
}

func TestDetermine(t *testing.T) {
	ok := func(name, cat string) ComponentStatus {
		return ComponentStatus{Name: name, Category: cat, Healthy: true}
	}
	bad := func(name, cat string) ComponentStatus {
		return ComponentStatus{Name: name, Category: cat, Healthy: false}
	}

	assert.Equal(t, GREEN, Determine([]ComponentStatus{ok("config", "critical"), ok("history", "important")}))
	assert.Equal(t, YELLOW, Determine([]ComponentStatus{ok("config", "critical"), bad("history", "important")}))
	assert.Equal(t, RED, Determine([]ComponentStatus{bad("history", "important"), bad("models_csv", "important")}))
	assert.Equal(t, RED, Determine([]ComponentStatus{bad("config", "critical"), ok("history", "important")}))
	assert.Equal(t, CRITICAL, Determine([]ComponentStatus{bad("config", "critical"), bad("encoding:cl100k_base", "critical")}))
	assert.Equal(t, GREEN, Determine([]ComponentStatus{bad("encoding:p50k_edit", "optional")}))
}

func TestNewReport(t *testing.T) {
	components := []ComponentStatus{
		{Name: "config", Category: "critical", Healthy: true, Detail: "ok"},
		{Name: "history", Category: "important", Healthy: false, Detail: "locked"},
	}
	r := NewReport(components)
	assert.Equal(t, YELLOW, r.Level)
	assert.Len(t, r.Components, 2)
}

func TestCheckConfigValid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))

	cs := CheckConfig(path)
	assert.True(t, cs.Healthy)
	assert.Equal(t, "critical", cs.Category)
}

func TestCheckConfigMissingUsesDefaults(t *testing.T) {
	cs := CheckConfig(filepath.Join(t.TempDir(), "config.yaml"))
	assert.True(t, cs.Healthy)
}

func TestCheckConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0644))

	cs := CheckConfig(path)
	assert.False(t, cs.Healthy)
	assert.Contains(t, cs.Detail, "Invalid")
}

func TestCheckTokenizer(t *testing.T) {
	lib := tokenizertest.New(nil, "cl100k_base")
	out := CheckTokenizer(lib, []string{"cl100k_base", "p50k_edit"})
	require.Len(t, out, 2)

	assert.Equal(t, "encoding:cl100k_base", out[0].Name)
	assert.Equal(t, "critical", out[0].Category)
	assert.True(t, out[0].Healthy)
	assert.Contains(t, out[0].Detail, "2 tokens")

	assert.Equal(t, "optional", out[1].Category)
	assert.False(t, out[1].Healthy)
	assert.Equal(t, GREEN, Determine(out))
}

func TestCheckHistory(t *testing.T) {
	cfg := config.DefaultIn(t.TempDir())
	cs := CheckHistory(cfg)
	assert.True(t, cs.Healthy)
	assert.Contains(t, cs.Detail, "0 counts")

	cfg.History.Path = filepath.Join(t.TempDir(), "missing", "history.db")
	cs = CheckHistory(cfg)
	assert.False(t, cs.Healthy)

	cfg.History.Enabled = false
	cs = CheckHistory(cfg)
	assert.True(t, cs.Healthy)
	assert.Equal(t, "Disabled", cs.Detail)
}

func TestCheckModelsCSV(t *testing.T) {
	lib := tokenizertest.New(nil, "cl100k_base")

	cs := CheckModelsCSV("", lib)
	assert.True(t, cs.Healthy)

	dir := t.TempDir()
	good := filepath.Join(dir, "good.csv")
	require.NoError(t, os.WriteFile(good, []byte("model_name,encoding_name\na,cl100k_base\n"), 0644))
	cs = CheckModelsCSV(good, lib)
	assert.True(t, cs.Healthy)
	assert.Equal(t, "1 models", cs.Detail)

	warn := filepath.Join(dir, "warn.csv")
	require.NoError(t, os.WriteFile(warn, []byte("model_name,encoding_name\na,nope\n"), 0644))
	cs = CheckModelsCSV(warn, lib)
	assert.False(t, cs.Healthy)
	assert.Contains(t, cs.Detail, "1 warnings")

	cs = CheckModelsCSV(filepath.Join(dir, "absent.csv"), lib)
	assert.False(t, cs.Healthy)
}

func TestFormatReport(t *testing.T) {
	out := FormatReport(NewReport([]ComponentStatus{
		{Name: "config", Category: "critical", Healthy: true, Detail: "Config loaded"},
		{Name: "history", Category: "important", Healthy: false, Detail: "locked"},
	}))
	assert.Contains(t, out, "[OK  ] config")
	assert.Contains(t, out, "[FAIL] history")
	assert.Contains(t, out, "Overall: YELLOW")
}
