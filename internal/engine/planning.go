package engine

import "math"

// ForecastDays is the horizon of the simple forecast.
const ForecastDays = 7

// ForecastNext7 projects the next seven daily totals as a flat line equal
// to the mean of the last (up to) seven history entries, rounded to
// 2 decimals. Negative and non-finite history values are clamped to zero;
// empty history forecasts zeros.
func ForecastNext7(history []float64) []float64 {
	vals := make([]float64, 0, len(history))
	for _, v := range history {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		vals = append(vals, math.Max(0, v))
	}

	base := 0.0
	if len(vals) > 0 {
		window := vals
		if len(window) > ForecastDays {
			window = window[len(window)-ForecastDays:]
		}
		sum := 0.0
		for _, v := range window {
			sum += v
		}
		base = sum / float64(len(window))
	}

	out := make([]float64, ForecastDays)
	for i := range out {
		out[i] = round(base, 2)
	}
	return out
}

// GoalPlan is the per-day plan to hit a weekly emissions target.
type GoalPlan struct {
	RequiredPerDay    float64 `json:"required_per_day"`
	DeltaVsCurrentAvg float64 `json:"delta_vs_current_avg"`
}

// WeeklyGoalPlan computes the average kg/day allowed over the remaining
// days of the week to land on targetWeekSum. remainingDays is clamped to
// ≥0; with no days left both outputs are zero. The delta compares the
// required rate against the average over days already elapsed (falling
// back to the required rate itself when no days have elapsed).
func WeeklyGoalPlan(currentWeekSum float64, remainingDays int, targetWeekSum float64) GoalPlan {
	if remainingDays < 0 {
		remainingDays = 0
	}
	if remainingDays == 0 {
		return GoalPlan{}
	}

	needed := math.Max(0, targetWeekSum-currentWeekSum)
	required := needed / float64(remainingDays)

	elapsed := ForecastDays - remainingDays
	currentAvg := required
	if elapsed > 0 {
		currentAvg = currentWeekSum / float64(elapsed)
	}

	return GoalPlan{
		RequiredPerDay:    round(required, 2),
		DeltaVsCurrentAvg: round(required-currentAvg, 2),
	}
}

// OffsetProject is one slice of the illustrative offset portfolio.
type OffsetProject struct {
	Project string  `json:"project"`
	Share   float64 `json:"share"`
}

// OffsetBucket is the offset estimate for one period.
type OffsetBucket struct {
	Tonnes        float64         `json:"tonnes"`
	PricePerTonne float64         `json:"price_per_tonne"`
	CostUSD       float64         `json:"cost_usd"`
	Mix           []OffsetProject `json:"mix"`
}

// OffsetEstimate carries the daily bucket and, when weekly data was
// supplied, the weekly bucket.
type OffsetEstimate struct {
	Today OffsetBucket  `json:"today"`
	Week  *OffsetBucket `json:"week,omitempty"`
}

// offsetMix is the fixed illustrative project portfolio. Shares sum to 1.0.
func offsetMix() []OffsetProject {
	return []OffsetProject{
		{Project: "Reforestation", Share: 0.4},
		{Project: "Renewable Energy", Share: 0.35},
		{Project: "Cookstoves", Share: 0.25},
	}
}

// EstimateOffsets converts kg CO₂ into tonnes and offset purchase cost at
// pricePerTonne (USD). kgWeek is optional; pass nil to omit the weekly
// bucket. Negative inputs are clamped to zero.
func EstimateOffsets(kgToday float64, kgWeek *float64, pricePerTonne float64) OffsetEstimate {
	bucket := func(kg float64) OffsetBucket {
		tonnes := math.Max(0, kg) / 1000.0
		return OffsetBucket{
			Tonnes:        round(tonnes, 3),
			PricePerTonne: pricePerTonne,
			CostUSD:       round(tonnes*pricePerTonne, 2),
			Mix:           offsetMix(),
		}
	}

	out := OffsetEstimate{Today: bucket(kgToday)}
	if kgWeek != nil {
		week := bucket(*kgWeek)
		out.Week = &week
	}
	return out
}
