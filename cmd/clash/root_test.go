package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clashbench/clash/config"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clash.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestScenarioFromArgs(t *testing.T) {
	cmd, opts := newRoot()
	require.NoError(t, cmd.ParseFlags([]string{"--runs", "7", "-w", "2"}))
	cfg, err := scenario(cmd, opts, []string{"./a", "./b"})
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Runs)
	assert.Equal(t, 2, cfg.Warmup)
	assert.Equal(t, []string{"./a", "./b"}, cfg.Commands)
}

func TestScenarioDefaults(t *testing.T) {
	cmd, opts := newRoot()
	require.NoError(t, cmd.ParseFlags(nil))
	cfg, err := scenario(cmd, opts, []string{"./a", "./b"})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultRuns, cfg.Runs)
	assert.Equal(t, 0, cfg.Warmup)
	assert.Empty(t, cfg.Export)
}

func TestScenarioTooFewCommands(t *testing.T) {
	cmd, opts := newRoot()
	require.NoError(t, cmd.ParseFlags(nil))
	_, err := scenario(cmd, opts, []string{"./only"})
	require.Error(t, err)
}

func TestScenarioFlagOverridesFile(t *testing.T) {
	path := writeScenario(t, `
runs: 10
warmup: 4
commands:
  - ./a
  - ./b
`)
	cmd, opts := newRoot()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path, "--runs", "3"}))
	cfg, err := scenario(cmd, opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Runs)
	assert.Equal(t, 4, cfg.Warmup)
	assert.Equal(t, []string{"./a", "./b"}, cfg.Commands)
}

func TestScenarioArgsReplaceFileCommands(t *testing.T) {
	path := writeScenario(t, "commands: [./a, ./b]\n")
	cmd, opts := newRoot()
	require.NoError(t, cmd.ParseFlags([]string{"--config", path}))
	cfg, err := scenario(cmd, opts, []string{"./x", "./y", "./z"})
	require.NoError(t, err)
	assert.Equal(t, []string{"./x", "./y", "./z"}, cfg.Commands)
}
