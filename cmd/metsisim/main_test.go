package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testControlTemplate = `
app_configuration:
  run_modes: ["simulate"]
simulation_instructions:
  - time_points: [0]
    events:
      type: "event"
      treatment: "do_nothing"
stands_file: "%s"
`

const testStandsFile = `[
  {"identifier": "stand-1", "area": 1.0, "trees": [{"identifier": "t1", "species": 1, "dbh": 20, "stems_per_ha": 300}]}
]`

func writeTestFiles(t *testing.T) (controlPath string) {
	t.Helper()
	dir := t.TempDir()
	standsPath := filepath.Join(dir, "stands.json")
	require.NoError(t, os.WriteFile(standsPath, []byte(testStandsFile), 0o644))

	controlPath = filepath.Join(dir, "control.yaml")
	content := fmt.Sprintf(testControlTemplate, filepath.ToSlash(standsPath))
	require.NoError(t, os.WriteFile(controlPath, []byte(content), 0o644))
	return controlPath
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	require.NoError(t, w.Close())
	os.Stdout = old
	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestSimulateCommandRunsEndToEndAgainstATempControlFile(t *testing.T) {
	controlPath := writeTestFiles(t)
	dbPath := filepath.Join(filepath.Dir(controlPath), "out.db")

	f, err := os.OpenFile(controlPath, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(fmt.Sprintf("persistence_path: %q\n", filepath.ToSlash(dbPath)))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	root := newRootCmd()
	root.SetArgs([]string{"simulate", "--control-file", controlPath})

	out := captureStdout(t, func() {
		err := root.Execute()
		require.NoError(t, err)
	})
	assert.Contains(t, out, "stand-1: 1 alternatives")
}

func TestPreprocessCommandReportsWhenNotDeclared(t *testing.T) {
	controlPath := writeTestFiles(t)

	root := newRootCmd()
	root.SetArgs([]string{"preprocess", "--control-file", controlPath})

	out := captureStdout(t, func() {
		err := root.Execute()
		require.NoError(t, err)
	})
	assert.Contains(t, out, "nothing to do")
}
