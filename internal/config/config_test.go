package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	cfg := New()
	assert.Equal(t, "", cfg.DefaultRegion)
	assert.InDelta(t, 15.0, cfg.OffsetPricePerTonne, 1e-9)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestHomeHonorsEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)

	assert.Equal(t, dir, Home())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), Path())
	assert.Equal(t, filepath.Join(dir, "regions.json"), RegionsPath())
	assert.Equal(t, filepath.Join(dir, "history.db"), HistoryPath())
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())

	cfg := Load(context.Background())
	assert.Equal(t, "table", cfg.Output)
	assert.InDelta(t, 15.0, cfg.OffsetPricePerTonne, 1e-9)
}

func TestLoadMalformedFileYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{not yaml"), 0o600))

	cfg := Load(context.Background())
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())

	cfg := New()
	cfg.DefaultRegion = "FR"
	cfg.RenewableShare = 0.3
	cfg.WeeklyGoalKg = 45
	require.NoError(t, cfg.Save())

	loaded := Load(context.Background())
	assert.Equal(t, "FR", loaded.DefaultRegion)
	assert.InDelta(t, 0.3, loaded.RenewableShare, 1e-9)
	assert.InDelta(t, 45.0, loaded.WeeklyGoalKg, 1e-9)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	t.Setenv("CARBONFOCUS_REGION", "US-avg")
	t.Setenv("CARBONFOCUS_OUTPUT", "json")
	t.Setenv("CARBONFOCUS_RENEWABLE_SHARE", "0.25")

	cfg := Load(context.Background())
	assert.Equal(t, "US-avg", cfg.DefaultRegion)
	assert.Equal(t, "json", cfg.Output)
	assert.InDelta(t, 0.25, cfg.RenewableShare, 1e-9)
}

func TestLoadClampsOutOfRangeValues(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvHome, dir)
	raw := "renewable_share: 1.8\nweekly_goal_kg: -4\noutput: xml\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(raw), 0o600))

	cfg := Load(context.Background())
	assert.InDelta(t, 1.0, cfg.RenewableShare, 1e-9)
	assert.InDelta(t, 0.0, cfg.WeeklyGoalKg, 1e-9)
	assert.Equal(t, "table", cfg.Output)
}
