package engine

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// rampProfile is strictly decreasing then increasing: minimum at hour 12.
func rampProfile() []float64 {
	profile := make([]float64, ProfileHours)
	for h := range profile {
		diff := h - 12
		if diff < 0 {
			diff = -diff
		}
		profile[h] = 0.1 + 0.01*float64(diff)
	}
	return profile
}

func TestSuggestLowHours(t *testing.T) {
	profile := rampProfile()

	t.Run("returns the globally lowest hours", func(t *testing.T) {
		low := SuggestLowHours(profile, 3)
		require.Len(t, low, 3)

		// Collect the 3 smallest values directly.
		sorted := append([]float64(nil), profile...)
		sort.Float64s(sorted)
		for _, h := range low {
			assert.LessOrEqual(t, profile[h], sorted[2])
		}
		assert.Equal(t, 12, low[0], "minimum hour must come first")
	})

	t.Run("ties break toward the lower hour", func(t *testing.T) {
		flat := make([]float64, ProfileHours)
		for h := range flat {
			flat[h] = 0.2
		}
		assert.Equal(t, []int{0, 1, 2}, SuggestLowHours(flat, 3))
	})

	t.Run("top_n is clamped", func(t *testing.T) {
		assert.Len(t, SuggestLowHours(profile, 0), 1)
		assert.Len(t, SuggestLowHours(profile, -4), 1)
		assert.Len(t, SuggestLowHours(profile, 99), ProfileHours)
	})

	t.Run("empty profile", func(t *testing.T) {
		assert.Nil(t, SuggestLowHours(nil, 3))
	})
}

func TestCompareTasksAtHours(t *testing.T) {
	profile := rampProfile()
	tasks := []Task{
		{Name: "Dishwasher", KWh: 1.8, Hour: 19},
		{Name: "EV Charge", KWh: 14.4, Hour: 2},
		{Name: "Idle", KWh: 0, Hour: 5},
		{Name: "Wrap-around", KWh: 1.0, Hour: 27}, // hour 3
	}

	results := CompareTasksAtHours(profile, tasks)
	require.Len(t, results, 4)

	for _, r := range results {
		assert.GreaterOrEqual(t, r.CurrentCO2Kg, r.OptimalCO2Kg,
			"task %s: optimal hour can never be worse", r.Name)
		assert.Equal(t, 12, r.OptimalHour)
	}

	idle := results[2]
	assert.Zero(t, idle.SavingsPct, "zero-consumption task has zero savings pct")

	wrap := results[3]
	assert.Equal(t, 3, wrap.CurrentHour)
}

func TestCompareTasksSkipsNonFiniteKWh(t *testing.T) {
	profile := rampProfile()

	results := CompareTasksAtHours(profile, []Task{
		{Name: "bad", KWh: math.NaN(), Hour: 1},
		{Name: "good", KWh: 2, Hour: 1},
	})
	require.Len(t, results, 1)
	assert.Equal(t, "good", results[0].Name)
}

func TestCompareTasksEmptyProfile(t *testing.T) {
	assert.Nil(t, CompareTasksAtHours(nil, []Task{{Name: "x", KWh: 1, Hour: 1}}))
}

func TestCalculateAnnualSavings(t *testing.T) {
	profile := rampProfile()

	t.Run("shifting from a worse hour saves", func(t *testing.T) {
		s := CalculateAnnualSavings(2.0, 0, profile)

		assert.Equal(t, 12, s.BestHour)
		// daily = 2.0 * (0.22 - 0.10) = 0.24
		assert.InDelta(t, 0.24, s.DailySavingsKg, 1e-9)
		assert.InDelta(t, 7.2, s.MonthlySavingsKg, 1e-9)
		assert.InDelta(t, 87.6, s.YearlySavingsKg, 1e-9)
		// 87.6 kg * $0.015/kg
		assert.InDelta(t, 1.31, s.YearlyCostSavingsUSD, 1e-9)
		assert.Greater(t, s.SavingsPct, 0.0)
	})

	t.Run("already at the best hour saves nothing", func(t *testing.T) {
		s := CalculateAnnualSavings(5.0, 12, profile)
		assert.Zero(t, s.DailySavingsKg)
		assert.Zero(t, s.YearlySavingsKg)
		assert.Zero(t, s.SavingsPct)
	})

	t.Run("hour wraps modulo 24", func(t *testing.T) {
		s := CalculateAnnualSavings(1.0, 36, profile) // hour 12
		assert.Zero(t, s.DailySavingsKg)
	})

	t.Run("empty profile yields the zero result", func(t *testing.T) {
		assert.Equal(t, AnnualSavings{}, CalculateAnnualSavings(2.0, 3, nil))
	})

	t.Run("zero consumption yields zero savings", func(t *testing.T) {
		s := CalculateAnnualSavings(0, 0, profile)
		assert.Zero(t, s.DailySavingsKg)
		assert.Zero(t, s.SavingsPct)
	})
}
