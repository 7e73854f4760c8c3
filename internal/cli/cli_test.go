package cli_test

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carbonfocus/carbonfocus/internal/cli"
	"github.com/carbonfocus/carbonfocus/internal/config"
)

// runCommand executes the root command with args against an isolated home
// directory and returns stdout.
func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func isolateHome(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
}

func TestCalcCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "calc",
		"--set", "electricity_kwh=10", "--set", "bus_km=5",
		"--output", "json")
	require.NoError(t, err)

	var result struct {
		TotalKg   float64            `json:"total_kg"`
		Breakdown map[string]float64 `json:"breakdown"`
		Meta      map[string]string  `json:"meta"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.InDelta(t, 2.93, result.TotalKg, 1e-9)
	assert.InDelta(t, 2.33, result.Breakdown["electricity_kwh"], 1e-9)
	assert.Equal(t, "Default factors", result.Meta["source"])
}

func TestCalcCmdRegionalFactors(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "calc",
		"--set", "electricity_kwh=10", "--region", "FR", "--output", "json")
	require.NoError(t, err)

	var result struct {
		TotalKg float64           `json:"total_kg"`
		Meta    map[string]string `json:"meta"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.InDelta(t, 0.70, result.TotalKg, 1e-9)
	assert.Equal(t, "FR", result.Meta["region_code"])
}

func TestCalcCmdNoReadings(t *testing.T) {
	isolateHome(t)

	_, err := runCommand(t, "calc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no activity readings")
}

func TestCalcCmdInvalidSet(t *testing.T) {
	isolateHome(t)

	_, err := runCommand(t, "calc", "--set", "electricity_kwh")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected key=value")
}

func TestProfileCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "profile", "--region", "FR", "--season", "winter", "--output", "json")
	require.NoError(t, err)

	var result struct {
		Region   string    `json:"region"`
		Hours    []float64 `json:"hours"`
		LowHours []int     `json:"low_hours"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "FR", result.Region)
	assert.Len(t, result.Hours, 24)
	assert.Len(t, result.LowHours, 3)
}

func TestShiftLowHoursCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "shift", "low-hours", "--top", "5", "--output", "json")
	require.NoError(t, err)

	var result struct {
		LowHours []int `json:"low_hours"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.LowHours, 5)
}

func TestShiftAnnualCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "shift", "annual", "--kwh", "2", "--hour", "19", "--output", "json")
	require.NoError(t, err)

	var result struct {
		BestHour        int     `json:"best_hour"`
		YearlySavingsKg float64 `json:"yearly_savings_kg"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.GreaterOrEqual(t, result.YearlySavingsKg, 0.0)
}

func TestShiftAnnualCmdRejectsNonPositiveKWh(t *testing.T) {
	isolateHome(t)

	_, err := runCommand(t, "shift", "annual", "--kwh", "0", "--hour", "19")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--kwh must be positive")
}

func TestShiftCompareCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "shift", "compare",
		"--task", "laundry:1.5:19", "--task", "dishwasher:1.2:20",
		"--output", "json")
	require.NoError(t, err)

	var comparisons []struct {
		Name      string  `json:"name"`
		SavingsKg float64 `json:"savings_kg"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &comparisons))
	require.Len(t, comparisons, 2)
	assert.Equal(t, "laundry", comparisons[0].Name)
	assert.GreaterOrEqual(t, comparisons[0].SavingsKg, 0.0)
}

func TestShiftCompareCmdBadTaskSpec(t *testing.T) {
	isolateHome(t)

	_, err := runCommand(t, "shift", "compare", "--task", "laundry:1.5")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected name:kwh:hour")
}

func TestScoreCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "score",
		"--set", "electricity_kwh=4", "--set", "bus_km=5", "--set", "vegetarian_kg=0.5",
		"--output", "json")
	require.NoError(t, err)

	var result struct {
		Score  int      `json:"score"`
		Badges []string `json:"badges"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Greater(t, result.Score, 50)
	require.Len(t, result.Badges, 1)
}

func TestScoreCmdFallbackWithoutReadings(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "score", "--output", "json")
	require.NoError(t, err)

	var result struct {
		Score  int      `json:"score"`
		Badges []string `json:"badges"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, 50, result.Score)
	assert.Equal(t, []string{"Score unavailable"}, result.Badges)
}

func TestPlanGoalCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "plan", "goal",
		"--target", "50", "--current", "22.4", "--remaining-days", "4",
		"--output", "json")
	require.NoError(t, err)

	var plan struct {
		RequiredPerDay float64 `json:"required_per_day"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &plan))
	assert.InDelta(t, 6.9, plan.RequiredPerDay, 1e-9)
}

func TestPlanGoalCmdRequiresTarget(t *testing.T) {
	isolateHome(t)

	_, err := runCommand(t, "plan", "goal", "--current", "10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no weekly target")
}

func TestPlanForecastCmdWithExplicitTotals(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "plan", "forecast",
		"--totals", "12.0,10.0,11.0", "--output", "json")
	require.NoError(t, err)

	var result struct {
		Forecast []float64 `json:"forecast"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Forecast, 7)
	assert.InDelta(t, 11.0, result.Forecast[0], 1e-9)
}

func TestPlanOffsetsCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "plan", "offsets",
		"--today", "12.4", "--week", "80.5", "--price", "18",
		"--output", "json")
	require.NoError(t, err)

	var estimate struct {
		Today struct {
			Tonnes  float64 `json:"tonnes"`
			CostUSD float64 `json:"cost_usd"`
		} `json:"today"`
		Week *struct {
			Tonnes float64 `json:"tonnes"`
		} `json:"week"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &estimate))
	assert.InDelta(t, 0.0124, estimate.Today.Tonnes, 1e-9)
	require.NotNil(t, estimate.Week)
}

func TestRegionsListCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "regions", "list", "--output", "json")
	require.NoError(t, err)

	var summaries []struct {
		Code             string  `json:"code"`
		ImpliedIntensity float64 `json:"implied_intensity"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summaries))
	require.Len(t, summaries, 3)

	codes := make([]string, 0, 3)
	for _, s := range summaries {
		codes = append(codes, s.Code)
	}
	assert.ElementsMatch(t, []string{"EU-avg", "US-avg", "FR"}, codes)
}

func TestRegionsShowCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "regions", "show", "FR", "--output", "json")
	require.NoError(t, err)

	var detail struct {
		Code             string             `json:"code"`
		Factors          map[string]float64 `json:"factors"`
		ElectricityKgKWh float64            `json:"electricity_kg_kwh"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &detail))
	assert.Equal(t, "FR", detail.Code)
	assert.InDelta(t, 0.07, detail.ElectricityKgKWh, 1e-9)
}

func TestRegionsShowCmdUnknownRegion(t *testing.T) {
	isolateHome(t)

	_, err := runCommand(t, "regions", "show", "XX")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown region")
}

func TestDevicesListCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "devices", "list", "--output", "json")
	require.NoError(t, err)

	var rows []struct {
		Name     string  `json:"name"`
		DailyKWh float64 `json:"daily_kwh"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 50)
}

func TestDevicesEstimateCmd(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "devices", "estimate",
		"--device", "Dishwasher", "--hours", "3", "--region", "FR",
		"--output", "json")
	require.NoError(t, err)

	var estimate struct {
		Device     string  `json:"device"`
		DailyKWh   float64 `json:"daily_kwh"`
		DailyCO2Kg float64 `json:"daily_co2_kg"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &estimate))
	assert.Equal(t, "Dishwasher", estimate.Device)
	assert.Greater(t, estimate.DailyKWh, 0.0)
	assert.Greater(t, estimate.DailyCO2Kg, 0.0)
}

func TestDevicesEstimateCmdUnknownDevice(t *testing.T) {
	isolateHome(t)

	_, err := runCommand(t, "devices", "estimate", "--device", "Flux Capacitor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown device")
}

func TestHistoryLogAndSummary(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "history", "log",
		"--set", "electricity_kwh=10", "--date", "2026-08-30",
		"--output", "json")
	require.NoError(t, err)

	var logged struct {
		Entry struct {
			Date    string  `json:"date"`
			TotalKg float64 `json:"total_kg"`
		} `json:"entry"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &logged))
	assert.Equal(t, "2026-08-30", logged.Entry.Date)
	assert.InDelta(t, 2.33, logged.Entry.TotalKg, 1e-9)

	out, err = runCommand(t, "summary", "--date", "2026-08-30", "--output", "json")
	require.NoError(t, err)

	var summary struct {
		TotalKg *float64 `json:"total_kg"`
		Streak  int      `json:"streak"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &summary))
	require.NotNil(t, summary.TotalKg)
	assert.InDelta(t, 2.33, *summary.TotalKg, 1e-9)
	assert.Equal(t, 1, summary.Streak)
}

func TestHistoryExportCmd(t *testing.T) {
	isolateHome(t)

	_, err := runCommand(t, "history", "log",
		"--set", "electricity_kwh=10", "--date", "2026-08-30")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.csv")
	out, err := runCommand(t, "history", "export", "--out", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported history")
	assert.FileExists(t, path)
}

func TestConfigInitAndShow(t *testing.T) {
	isolateHome(t)

	out, err := runCommand(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote default configuration")

	_, err = runCommand(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = runCommand(t, "config", "show", "--output", "json")
	require.NoError(t, err)

	var cfg struct {
		Output              string  `json:"output"`
		OffsetPricePerTonne float64 `json:"offset_price_per_tonne"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "table", cfg.Output)
	assert.InDelta(t, 15.0, cfg.OffsetPricePerTonne, 1e-9)
}
