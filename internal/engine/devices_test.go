package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceCatalogSize(t *testing.T) {
	names := DevicePresetNames()
	assert.GreaterOrEqual(t, len(names), 50, "catalog should cover at least 50 appliances")

	byCat := DevicePresetsByCategory()
	assert.GreaterOrEqual(t, len(byCat), 8, "catalog should span at least 8 categories")

	total := 0
	for _, group := range byCat {
		total += len(group)
	}
	assert.Equal(t, len(names), total)
}

func TestDevicePresetValues(t *testing.T) {
	for _, name := range DevicePresetNames() {
		preset, ok := DevicePresetByName(name)
		require.True(t, ok)
		assert.Greater(t, preset.PowerW, 0.0, "device %q", name)
		assert.GreaterOrEqual(t, preset.HoursPerDay, 0.0, "device %q", name)
		assert.LessOrEqual(t, preset.HoursPerDay, 24.0, "device %q", name)
		assert.NotEmpty(t, preset.Category, "device %q", name)
	}
}

func TestDeviceDailyKWh(t *testing.T) {
	fridge, ok := DevicePresetByName("Refrigerator")
	require.True(t, ok)

	// 150 W for 24 h = 3.6 kWh.
	assert.InDelta(t, 3.6, fridge.DailyKWh(), 1e-9)
	assert.InDelta(t, 1.5, fridge.DailyKWhAt(10), 1e-9)
	assert.Zero(t, fridge.DailyKWhAt(-1))
}

func TestApplySeasonalAdjustment(t *testing.T) {
	tests := []struct {
		name   string
		device string
		season string
		base   float64
		want   float64
	}{
		{name: "summer AC runs longer", device: "Central AC", season: "Summer", base: 8.0, want: 12.0},
		{name: "winter AC is off", device: "Central AC", season: "Winter", base: 8.0, want: 0.0},
		{name: "winter heater", device: "Space Heater", season: "Winter", base: 4.0, want: 8.0},
		{name: "unlisted device keeps base hours", device: "Kettle", season: "Winter", base: 0.3, want: 0.3},
		{name: "unknown season keeps base hours", device: "Central AC", season: "Monsoon", base: 8.0, want: 8.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ApplySeasonalAdjustment(tt.device, tt.season, tt.base), 1e-9)
		})
	}
}
