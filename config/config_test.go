package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ardnew/emberhal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefault(t *testing.T) {
	dir := t.TempDir()
	board, err := config.Load(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), board)
}

func TestSaveThenLoad_RoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "board.yaml")

	board := config.Default()
	board.Mixer.SampleRate = 48000
	board.Provisioning.ConnectTimeoutMs = 30000

	require.NoError(t, config.Save(path, board))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, board, loaded)
}

func TestFlagSet_OverridesLoadedValue(t *testing.T) {
	board := config.Default()
	fs := config.FlagSet(&board)

	require.NoError(t, fs.Parse([]string{"--mixer-sample-rate", "44100"}))
	assert.Equal(t, 44100, board.Mixer.SampleRate)
	assert.Equal(t, config.Default().Mixer.Channels, board.Mixer.Channels)
}

func TestLoad_PartialYAMLOverlaysDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mixer:\n  sample_rate: 8000\n"), 0o600))

	board, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8000, board.Mixer.SampleRate)
	assert.Equal(t, config.Default().WorkQueue.Capacity, board.WorkQueue.Capacity)
}
