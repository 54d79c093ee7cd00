package e2e_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorHealthy(t *testing.T) {
	env := newTestEnv(t)
	stdout, stderr, code := env.runTact("doctor")
	require.Equal(t, 0, code, "tact doctor should exit 0; stdout=%s stderr=%s", stdout, stderr)
	assert.Contains(t, stdout, "encoding:cl100k_base")
	assert.Contains(t, stdout, "Overall:")
}

func TestDoctorBrokenConfig(t *testing.T) {
	env := newTestEnv(t)
	cfg := env.writeFile("config.yaml", "log:\n  level: [\n")

	stdout, _, code := env.runTact("--config", cfg, "doctor")
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "[FAIL] config")
}

func TestAbout(t *testing.T) {
	env := newTestEnv(t)
	stdout, stderr, code := env.runTact("about")
	require.Equal(t, 0, code, "stderr=%s", stderr)
	assert.Contains(t, stdout, "TACT")
}
