package engine

import (
	"math"
	"strings"
)

// sourceIntensities maps generation source names to illustrative
// kg CO₂/kWh intensities. The table is fixed; region packs override the
// electricity factor, never these constants.
var sourceIntensities = map[string]float64{
	"coal":    0.9,
	"gas":     0.45,
	"oil":     0.7,
	"nuclear": 0.012,
	"hydro":   0.01,
	"wind":    0.01,
	"solar":   0.05,
	"biomass": 0.10,
}

// EffectiveElectricityFactor resolves the kg CO₂/kWh used for electricity.
//
// A known region pack with an electricity override wins outright and the
// renewable adjustment is ignored. Otherwise the default factor is reduced
// by renewableAdjust (clamped to [0..1]). Always returns a non-negative
// value; any resolution failure falls back to the unmodified default.
func (e *Engine) EffectiveElectricityFactor(regionCode string, renewableAdjust float64) float64 {
	base := co2Factors[KeyElectricityKWh]

	if pack, ok := e.regions.Current().Pack(regionCode); ok {
		if override, has := pack.Factors[KeyElectricityKWh]; has {
			if override < 0 || math.IsNaN(override) || math.IsInf(override, 0) {
				return base
			}
			return override
		}
	}

	adjusted := base * (1.0 - clampFraction(renewableAdjust))
	if adjusted < 0 {
		return base
	}
	return adjusted
}

// GridMix returns the region's generation mix with source names lowercased,
// non-numeric and negative shares dropped, and the remainder normalized to
// sum to 1.0. If the filtered shares sum to zero the filtered map is
// returned as-is (possibly empty). Unknown regions return an empty map.
func (e *Engine) GridMix(regionCode string) map[string]float64 {
	pack, ok := e.regions.Current().Pack(regionCode)
	if !ok {
		return map[string]float64{}
	}

	out := make(map[string]float64, len(pack.GridMix))
	sum := 0.0
	for source, share := range pack.GridMix {
		if math.IsNaN(share) || math.IsInf(share, 0) {
			continue
		}
		if share < 0 {
			share = 0
		}
		out[strings.ToLower(source)] = share
		sum += share
	}
	if sum > 0 {
		for source, share := range out {
			out[source] = share / sum
		}
	}
	return out
}

// ImpliedIntensity derives kg CO₂/kWh from a generation mix by weighting
// each source's fixed intensity by its share, rounded to 3 decimals.
//
// Sources without an intensity constant are excluded from the weighted sum
// without renormalizing over the known-source share. A mix with a large
// unmodeled component therefore under-reports; this is a deliberate
// modeling approximation, kept as-is.
func ImpliedIntensity(mix map[string]float64) float64 {
	total := 0.0
	for source, share := range mix {
		if share <= 0 || math.IsNaN(share) {
			continue
		}
		intensity, ok := sourceIntensities[strings.ToLower(source)]
		if !ok {
			continue
		}
		total += share * intensity
	}
	return round(total, 3)
}

// SourceIntensity returns the fixed intensity constant for a generation
// source name, for display surfaces.
func SourceIntensity(source string) (float64, bool) {
	v, ok := sourceIntensities[strings.ToLower(source)]
	return v, ok
}

// Meta exposes factor provenance strings for UI captions. The defaults are
// overlaid with the region pack's __meta__ entries when the region is known.
func (e *Engine) Meta(regionCode string) map[string]string {
	meta := map[string]string{
		"source":      "Default factors",
		"version":     "n/a",
		"url":         "",
		"region_code": "default",
	}
	if code := strings.TrimSpace(regionCode); code != "" {
		meta["region_code"] = code
	}
	if pack, ok := e.regions.Current().Pack(regionCode); ok {
		for k, v := range pack.Meta {
			meta[k] = v
		}
	}
	return meta
}
