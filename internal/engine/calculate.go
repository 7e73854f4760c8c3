package engine

import (
	"math"

	"github.com/carbonfocus/carbonfocus/internal/region"
)

// Engine computes emissions against a published region pack snapshot.
// It holds no mutable state of its own; methods are safe for concurrent use.
type Engine struct {
	regions *region.Registry
}

// New returns an Engine reading packs from reg. A nil reg uses the built-in
// default packs.
func New(reg *region.Registry) *Engine {
	if reg == nil {
		reg = region.Default()
	}
	return &Engine{regions: reg}
}

// Regions exposes the registry backing this engine.
func (e *Engine) Regions() *region.Registry {
	return e.regions
}

// CalcOptions adjust how electricity emissions are resolved. The zero value
// means default factors.
type CalcOptions struct {
	// RegionCode selects a region pack. Empty or unknown codes fall back to
	// the default factor table.
	RegionCode string
	// RenewableAdjust is a fraction [0..1] reducing the default electricity
	// factor. It is ignored when the region pack overrides electricity.
	// Values outside [0..1] are clamped.
	RenewableAdjust float64
}

// Total computes the day's total emissions in kg CO₂, rounded to 2 decimals.
// Readings with no matching factor contribute nothing.
func (e *Engine) Total(readings Readings, opts CalcOptions) float64 {
	total := 0.0
	for key, amount := range readings {
		factor, ok := e.effectiveFactor(key, opts)
		if !ok {
			continue
		}
		total += factor * clampAmount(amount)
	}
	return round(total, 2)
}

// Breakdown computes per-activity emissions in kg CO₂, rounded to
// 4 decimals. Entries that compute to exactly zero are omitted.
func (e *Engine) Breakdown(readings Readings, opts CalcOptions) map[string]float64 {
	out := make(map[string]float64)
	for key, amount := range readings {
		factor, ok := e.effectiveFactor(key, opts)
		if !ok {
			continue
		}
		kg := factor * clampAmount(amount)
		if kg == 0 {
			continue
		}
		out[key] = round(kg, 4)
	}
	return out
}

// CategoryTotals computes per-category subtotals using default factors,
// rounded to 2 decimals. Region and renewable settings do not apply here;
// the scorer and summary surfaces compare against fixed baselines.
func CategoryTotals(readings Readings) map[Category]float64 {
	out := make(map[Category]float64, len(categoryOrder))
	for _, cat := range categoryOrder {
		subtotal := 0.0
		for _, key := range categoryKeys[cat] {
			factor := co2Factors[key]
			subtotal += factor * clampAmount(readings[key])
		}
		out[cat] = round(subtotal, 2)
	}
	return out
}

// effectiveFactor resolves the factor for one normalized key. Only
// electricity is regionally and renewably adjustable.
func (e *Engine) effectiveFactor(key string, opts CalcOptions) (float64, bool) {
	factor, ok := co2Factors[key]
	if !ok {
		return 0, false
	}
	if key == KeyElectricityKWh {
		return e.EffectiveElectricityFactor(opts.RegionCode, opts.RenewableAdjust), true
	}
	return factor, true
}

func clampAmount(amount float64) float64 {
	if amount < 0 || math.IsNaN(amount) {
		return 0
	}
	return amount
}

// clampFraction pins a renewable-adjust value into [0..1]. NaN maps to 0.
func clampFraction(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// round rounds half away from zero at the given number of decimals,
// matching the rounding the factor tables were calibrated with.
func round(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}
