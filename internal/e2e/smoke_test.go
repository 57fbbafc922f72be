package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeFlow(t *testing.T) {
	home := t.TempDir()
	binaryPath := buildBinary(t)
	require.NoError(t, writeSessionConfig(home))

	for _, student := range [][]string{{"R1", "Aswin"}, {"R2", "Edwin"}, {"R3", "Tom"}} {
		_, stderr, err := runAtt(t, binaryPath, home, "student", "add", "--roll", student[0], "--name", student[1])
		require.NoError(t, err, "stderr: %s", stderr)
	}

	stdout, stderr, err := runAtt(t, binaryPath, home, "session", "run", "--class", "CS-A", "--subject", "Math", "--duration", "250ms")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "ended: stopped")

	stdout, stderr, err = runAtt(t, binaryPath, home, "attendance", "report")
	require.NoError(t, err, "stderr: %s", stderr)
	assert.Contains(t, stdout, "students: 3")
	assert.Contains(t, stdout, "days 1")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "att-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/att")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build att binary: %s", string(output))
	return binaryPath
}

func runAtt(t *testing.T, binaryPath, home string, args ...string) (string, string, error) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "ATT_OTEL_ENABLED=false", "ATT_LOG_LEVEL=warn")

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}

func writeSessionConfig(home string) error {
	storeDir := filepath.Join(home, ".attendance")
	if err := os.MkdirAll(storeDir, 0o700); err != nil {
		return err
	}

	config := `[session]
interval = "10ms"

[recognizer]
miss_ratio = 0.0
seed = 11
`

	return os.WriteFile(filepath.Join(storeDir, "config.toml"), []byte(config), 0o600)
}
