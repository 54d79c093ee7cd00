package e2e_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// TestEnv is a temporary HOME and working directory for one test.
type TestEnv struct {
	Home    string // ~/.tact lives here
	WorkDir string
	T       *testing.T
}

func newTestEnv(t *testing.T) *TestEnv {
	t.Helper()
	return &TestEnv{
		Home:    t.TempDir(),
		WorkDir: t.TempDir(),
		T:       t,
	}
}

// runTact executes the compiled tact binary with the given arguments.
func (e *TestEnv) runTact(args ...string) (stdout, stderr string, exitCode int) {
	return e.runTactWithStdin("", args...)
}

// runTactWithStdin executes tact with stdin fed from input.
func (e *TestEnv) runTactWithStdin(input string, args ...string) (stdout, stderr string, exitCode int) {
	e.T.Helper()

	cmd := exec.Command(tactBin, args...)
	cmd.Dir = e.WorkDir
	cmd.Env = []string{
		"HOME=" + e.Home,
		"PATH=" + os.Getenv("PATH"),
		"USER=" + os.Getenv("USER"),
	}
	cmd.Stdin = strings.NewReader(input)

	var outBuf, errBuf strings.Builder
	cmd.Stdout = &outBuf
	cmd.Stderr = &errBuf

	err := cmd.Run()

	exitCode = 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		} else {
			exitCode = -1
		}
	}
	return outBuf.String(), errBuf.String(), exitCode
}

// writeFile creates name under WorkDir and returns its absolute path.
func (e *TestEnv) writeFile(name, content string) string {
	e.T.Helper()
	path := filepath.Join(e.WorkDir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		e.T.Fatalf("writeFile(%s): %v", path, err)
	}
	return path
}

func (e *TestEnv) readFile(path string) string {
	e.T.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		e.T.Fatalf("readFile(%s): %v", path, err)
	}
	return string(data)
}

func (e *TestEnv) tactDir() string {
	return filepath.Join(e.Home, ".tact")
}

func TestVersion(t *testing.T) {
	env := newTestEnv(t)
	stdout, stderr, code := env.runTact("version")

	if code != 0 {
		t.Fatalf("tact version exited %d; stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "tact v") {
		t.Fatalf("expected 'tact v' in version output, got: %s", stdout)
	}
}
