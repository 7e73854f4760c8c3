package engine

import (
	"math"
	"sort"
)

// offsetCostPerKgUSD is an illustrative offset price of $15/tonne used for
// the annual savings cost estimate.
const offsetCostPerKgUSD = 0.015

// Task is one recurring electricity task a household might shift in time.
type Task struct {
	Name string
	KWh  float64
	Hour int
}

// TaskComparison reports a task's emissions at its current hour versus the
// profile's single best hour.
type TaskComparison struct {
	Name             string  `json:"name"`
	KWh              float64 `json:"kwh"`
	CurrentHour      int     `json:"current_hour"`
	CurrentIntensity float64 `json:"current_intensity"`
	CurrentCO2Kg     float64 `json:"current_co2_kg"`
	OptimalHour      int     `json:"optimal_hour"`
	OptimalIntensity float64 `json:"optimal_intensity"`
	OptimalCO2Kg     float64 `json:"optimal_co2_kg"`
	SavingsKg        float64 `json:"savings_kg"`
	SavingsPct       float64 `json:"savings_pct"`
}

// AnnualSavings projects the effect of permanently shifting a daily task to
// the lowest-intensity hour.
type AnnualSavings struct {
	BestHour             int     `json:"best_hour"`
	CurrentIntensity     float64 `json:"current_intensity"`
	BestIntensity        float64 `json:"best_intensity"`
	DailySavingsKg       float64 `json:"daily_savings_kg"`
	MonthlySavingsKg     float64 `json:"monthly_savings_kg"`
	YearlySavingsKg      float64 `json:"yearly_savings_kg"`
	YearlyCostSavingsUSD float64 `json:"yearly_cost_savings_usd"`
	SavingsPct           float64 `json:"savings_pct"`
}

// SuggestLowHours returns the hour indices of the topN lowest-intensity
// hours, ascending by intensity with ties broken by the lower hour. topN is
// clamped to [1, len(profile)]. An empty profile yields nil.
func SuggestLowHours(profile []float64, topN int) []int {
	if len(profile) == 0 {
		return nil
	}
	if topN < 1 {
		topN = 1
	}
	if topN > len(profile) {
		topN = len(profile)
	}

	hours := make([]int, len(profile))
	for i := range hours {
		hours[i] = i
	}
	sort.SliceStable(hours, func(a, b int) bool {
		if profile[hours[a]] != profile[hours[b]] {
			return profile[hours[a]] < profile[hours[b]]
		}
		return hours[a] < hours[b]
	})
	return hours[:topN]
}

// bestHour returns the index of the profile's minimum value, lowest index
// winning ties.
func bestHour(profile []float64) int {
	best := 0
	for h := 1; h < len(profile); h++ {
		if profile[h] < profile[best] {
			best = h
		}
	}
	return best
}

// CompareTasksAtHours evaluates each task's emissions at its scheduled hour
// against the single global best hour of the profile. Tasks with
// non-finite kWh are skipped; hours wrap modulo 24. An empty profile
// yields nil.
func CompareTasksAtHours(profile []float64, tasks []Task) []TaskComparison {
	if len(profile) == 0 {
		return nil
	}
	profile = ensureHours(profile)
	best := bestHour(profile)
	bestIntensity := profile[best]

	results := make([]TaskComparison, 0, len(tasks))
	for _, task := range tasks {
		if math.IsNaN(task.KWh) || math.IsInf(task.KWh, 0) {
			continue
		}
		hour := ((task.Hour % ProfileHours) + ProfileHours) % ProfileHours
		intensity := profile[hour]
		current := task.KWh * intensity
		optimal := task.KWh * bestIntensity
		savings := current - optimal
		pct := 0.0
		if current > 0 {
			pct = savings / current * 100
		}

		results = append(results, TaskComparison{
			Name:             task.Name,
			KWh:              task.KWh,
			CurrentHour:      hour,
			CurrentIntensity: round(intensity, 4),
			CurrentCO2Kg:     round(current, 3),
			OptimalHour:      best,
			OptimalIntensity: round(bestIntensity, 4),
			OptimalCO2Kg:     round(optimal, 3),
			SavingsKg:        round(savings, 3),
			SavingsPct:       round(pct, 1),
		})
	}
	return results
}

// CalculateAnnualSavings projects daily, monthly (×30) and yearly (×365)
// savings from moving a recurring daily load to the profile's best hour,
// with a cost estimate at $15/tonne. Degenerate input (empty profile,
// non-finite kWh) yields the zero result rather than an error.
func CalculateAnnualSavings(dailyKWh float64, currentHour int, profile []float64) AnnualSavings {
	if len(profile) == 0 || math.IsNaN(dailyKWh) || math.IsInf(dailyKWh, 0) {
		return AnnualSavings{}
	}
	profile = ensureHours(profile)

	best := bestHour(profile)
	hour := ((currentHour % ProfileHours) + ProfileHours) % ProfileHours
	currentIntensity := profile[hour]
	bestIntensity := profile[best]

	daily := dailyKWh * (currentIntensity - bestIntensity)
	yearly := daily * 365

	pct := 0.0
	if denom := dailyKWh * currentIntensity; denom > 0 {
		pct = daily / denom * 100
	}

	return AnnualSavings{
		BestHour:             best,
		CurrentIntensity:     round(currentIntensity, 4),
		BestIntensity:        round(bestIntensity, 4),
		DailySavingsKg:       round(daily, 3),
		MonthlySavingsKg:     round(daily*30, 2),
		YearlySavingsKg:      round(yearly, 2),
		YearlyCostSavingsUSD: round(yearly*offsetCostPerKgUSD, 2),
		SavingsPct:           round(pct, 1),
	}
}
