package engine

import "math"

// Per-category daily baselines in kg CO₂ and their score weights.
// Weights sum to 1.0.
var (
	scoreBaselines = map[Category]float64{
		CategoryEnergy:    8.0,
		CategoryTransport: 6.0,
		CategoryMeals:     5.0,
	}
	scoreWeights = map[Category]float64{
		CategoryEnergy:    0.45,
		CategoryTransport: 0.35,
		CategoryMeals:     0.20,
	}
)

// Badge labels by descending overall-score threshold.
const (
	badgeExcellent = "Excellent"
	badgeGood      = "Good"
	badgeModerate  = "Moderate"
	badgeNeedsWork = "Needs improvement"
)

// categoryNotes are the guidance messages attached to the lowest-scoring
// category.
var categoryNotes = map[Category]string{
	CategoryEnergy:    "Focus on electricity/gas usage (standby power, thermostat setpoints, efficient appliances).",
	CategoryTransport: "Shift trips to lower-carbon modes (walk/bike/transit) or consolidate car journeys.",
	CategoryMeals:     "Try more plant-forward meals and reduce high-impact ingredients on heavy days.",
}

// ScoreResult is the composite efficiency assessment for one day.
type ScoreResult struct {
	Score          int              `json:"score"`
	CategoryScores map[Category]int `json:"category_scores"`
	Badges         []string         `json:"badges"`
	Notes          []string         `json:"notes"`
}

// EfficiencyScore rates a day's readings 0–100 against fixed per-category
// baselines using default (non-regional) factors.
//
// Each category's sub-score follows a piecewise curve of the ratio
// raw/baseline: at or under baseline it spans [50,100] linearly; over
// baseline it drops from 50 at 70 points per unit of excess ratio,
// floored at 0. The overall score is the weighted sum, clamped to [0,100].
func EfficiencyScore(readings Readings) ScoreResult {
	catScores := make(map[Category]int, len(categoryOrder))
	for _, cat := range categoryOrder {
		raw := 0.0
		for _, key := range categoryKeys[cat] {
			raw += co2Factors[key] * clampAmount(readings[key])
		}
		base := math.Max(0.1, scoreBaselines[cat])
		ratio := raw / base

		var sub float64
		if ratio <= 1.0 {
			sub = 100.0 - ratio*50.0
		} else {
			sub = math.Max(0.0, 50.0-(ratio-1.0)*70.0)
		}
		catScores[cat] = int(math.Round(clampScore(sub)))
	}

	overall := 0.0
	for _, cat := range categoryOrder {
		overall += scoreWeights[cat] * float64(catScores[cat])
	}
	score := int(math.Round(clampScore(overall)))

	var badge string
	switch {
	case score >= 85:
		badge = badgeExcellent
	case score >= 70:
		badge = badgeGood
	case score >= 50:
		badge = badgeModerate
	default:
		badge = badgeNeedsWork
	}

	// One note for the weakest category; first minimum in fixed category
	// order wins ties.
	worst := categoryOrder[0]
	for _, cat := range categoryOrder[1:] {
		if catScores[cat] < catScores[worst] {
			worst = cat
		}
	}

	return ScoreResult{
		Score:          score,
		CategoryScores: catScores,
		Badges:         []string{badge},
		Notes:          []string{categoryNotes[worst]},
	}
}

// FallbackScore is the fixed result surfaces show when scoring input is
// unavailable.
func FallbackScore() ScoreResult {
	return ScoreResult{
		Score:          50,
		CategoryScores: map[Category]int{},
		Badges:         []string{"Score unavailable"},
		Notes:          []string{"Scoring unavailable."},
	}
}

func clampScore(s float64) float64 {
	return math.Max(0.0, math.Min(100.0, s))
}
