package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Driver)
	assert.Equal(t, 48000, cfg.SampleRate)
	assert.Equal(t, 64, cfg.BufferSize)
}

func TestParseConfig_FlagsOverrideDefaults(t *testing.T) {
	cfg, err := ParseConfig([]string{"--sample-rate=96000", "--buffer-size=128"})
	require.NoError(t, err)
	assert.Equal(t, 96000, cfg.SampleRate)
	assert.Equal(t, 128, cfg.BufferSize)
}

func TestParseConfig_PositionalArgSetsDriver(t *testing.T) {
	cfg, err := ParseConfig([]string{"oto"})
	require.NoError(t, err)
	assert.Equal(t, "oto", cfg.Driver)
}

func TestParseConfig_FileValuesApplyUnlessOverridden(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stompchain.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sampleRate: 44100\ncontrolAddr: \":9000\"\n"), 0o644))

	cfg, err := ParseConfig([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, 44100, cfg.SampleRate)
	assert.Equal(t, ":9000", cfg.ControlAddr)
}

func TestParseConfig_CLIFlagWinsOverFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stompchain.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sampleRate: 44100\n"), 0o644))

	cfg, err := ParseConfig([]string{"--config", path, "--sample-rate=96000"})
	require.NoError(t, err)
	assert.Equal(t, 96000, cfg.SampleRate)
}
