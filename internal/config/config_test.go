package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks default filling and nil handling.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Nil config.
	require.Error(t, Validate(nil))

	// Empty config gets all defaults.
	cfg := new(Config)

	require.NoError(t, Validate(cfg))
	require.Equal(t, DefaultStateFilename, cfg.StateFile)
	require.Equal(t, DefaultSnoozeDuration, cfg.SnoozeDuration)
	require.Equal(t, DefaultLogLevel, cfg.LogLevel)

	// Explicit values survive validation.
	cfg = &Config{
		StateFile:      "alarms.json",
		SnoozeDuration: 9 * time.Minute,
		LogLevel:       "debug",
	}

	require.NoError(t, Validate(cfg))
	require.Equal(t, "alarms.json", cfg.StateFile)
	require.Equal(t, 9*time.Minute, cfg.SnoozeDuration)
}

// TestLoad_MissingFile ensures a missing settings file yields pure defaults.
func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	require.Equal(t, DefaultStateFilename, cfg.StateFile)
	require.Equal(t, DefaultSnoozeDuration, cfg.SnoozeDuration)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "settings.yaml")

	want := &Config{
		StateFile:      "alarms.json",
		SnoozeDuration: 10 * time.Minute,
		LogLevel:       "warn",
	}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, want, got)
}
