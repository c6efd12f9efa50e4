package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	smText  = "2 2\n1 1 2\n2 2 1\n1 2 1\n2 1 2\n"
	spaText = "2 2 2\n1 1 2\n2 2 1\n1 1 1\n2 1 2\n1 1 2 1\n2 1 1 2\n"
)

// runCLI executes the root command in an isolated home and returns stdout.
func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()

	return out.String(), err
}

func writeInput(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestSMPCommandText(t *testing.T) {
	out, err := runCLI(t, "smp", "--file", writeInput(t, "sm.txt", smText), "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "m1: M0=w1 Mz=w2 GS=[w1 w2]\n"+
		"m2: M0=w2 Mz=w1 GS=[w2 w1]\n"+
		"w1: M0=m1 Mz=m2 GS=[m2 m1]\n"+
		"w2: M0=m2 Mz=m1 GS=[m1 m2]\n", out)
}

func TestSMPCommandTable(t *testing.T) {
	out, err := runCLI(t, "smp", "-f", writeInput(t, "sm.txt", smText), "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "GS-list")
	assert.Contains(t, out, "Role")
	assert.Contains(t, out, "woman")
	assert.Contains(t, out, "w2 w1")
}

func TestSPACommandText(t *testing.T) {
	input := writeInput(t, "spa.txt", spaText)

	out, err := runCLI(t, "spa", "--file", input, "--strategy", "lecturer", "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "stable matching: {s1: p2, s2: p1}\n", out)

	out, err = runCLI(t, "spa", "--file", input, "--format", "text")
	require.NoError(t, err)
	assert.Equal(t, "stable matching: {s1: p1, s2: p2}\n", out)
}

func TestSPACommandTable(t *testing.T) {
	out, err := runCLI(t, "spa", "--file", writeInput(t, "spa.txt", spaText), "--format", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Student")
	assert.Contains(t, out, "2 of 2 assigned")
}

func TestSPACommandUsesConfigStrategy(t *testing.T) {
	cfg := writeInput(t, "config.toml", "[spa]\nstrategy = \"lecturer\"\n\n[output]\nformat = \"text\"\n")
	out, err := runCLI(t, "--config", cfg, "spa", "--file", writeInput(t, "spa.txt", spaText))
	require.NoError(t, err)
	assert.Equal(t, "stable matching: {s1: p2, s2: p1}\n", out)
}

func TestCommandErrors(t *testing.T) {
	input := writeInput(t, "spa.txt", spaText)
	cases := map[string][]string{
		"missing file flag": {"spa"},
		"unknown strategy":  {"spa", "--file", input, "--strategy", "random"},
		"bad format":        {"smp", "--file", input, "--format", "json"},
		"absent input":      {"smp", "--file", filepath.Join(t.TempDir(), "none.txt")},
		"absent config":     {"--config", filepath.Join(t.TempDir(), "none.toml"), "smp", "--file", input},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := runCLI(t, args...)
			assert.Error(t, err)
		})
	}
}
