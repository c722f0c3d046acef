package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and captures stdout. Flags are
// package globals, so every value touched is reset afterwards.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()

	t.Cleanup(func() {
		for _, name := range []string{"sep", "quote", "header", "keep-empty", "encoding", "config"} {
			f := rootCmd.PersistentFlags().Lookup(name)
			require.NoError(t, f.Value.Set(f.DefValue))
			f.Changed = false
		}
	})
	return out.String(), err
}

func writeInput(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCheckCommand(t *testing.T) {
	path := writeInput(t, "ok.csv", "a,b\nc,d\n")

	out, err := execute(t, "check", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 rows, 4 fields")
}

func TestCheckCommandReportsMismatch(t *testing.T) {
	path := writeInput(t, "bad.csv", "a,b\nc,d,e\n")

	_, err := execute(t, "check", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2: expected 2 fields, got 3")
}

func TestHeadCommand(t *testing.T) {
	path := writeInput(t, "many.csv", "1\n2\n3\n4\n5\n")

	out, err := execute(t, "head", "-n", "2", path)
	require.NoError(t, err)
	assert.Equal(t, "1\n2\n", out)
}

func TestConvertCommand(t *testing.T) {
	src := writeInput(t, "in.csv", "a;b\nc;'d;e'\n")
	dst := filepath.Join(t.TempDir(), "out.csv")

	out, err := execute(t, "convert", src, dst,
		"--sep", ";", "--quote", "'", "--out-sep", ",")
	require.NoError(t, err)
	assert.Contains(t, out, "converted 2 rows")

	raw, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "a,b\nc,d;e\n", string(raw))
}
