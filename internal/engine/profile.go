package engine

import "strings"

// ProfileHours is the fixed length of an hourly intensity profile.
const ProfileHours = 24

// Grid-mix share thresholds that make a region's characteristic shape win
// over the seasonal default.
const (
	solarHeavyShare = 0.15
	windHeavyShare  = 0.20
	coalHeavyShare  = 0.50
)

// profileShapes are illustrative relative 24-hour curves (not live data).
// Values are unitless multipliers; they are normalized to a mean of 1.0
// before being scaled to an absolute intensity.
var profileShapes = map[string][]float64{
	// Nearly flat day.
	"flat": {
		1.0, 0.99, 0.98, 0.98, 0.97, 0.98, 1.0, 1.02, 1.05, 1.08, 1.10, 1.08,
		1.05, 1.02, 1.00, 0.98, 0.97, 0.98, 1.00, 1.03, 1.06, 1.08, 1.05, 1.02,
	},
	// Summer-like: evening peak from cooling load.
	"evening_peak": {
		0.85, 0.83, 0.82, 0.82, 0.83, 0.85, 0.90, 0.95, 1.00, 1.05, 1.10, 1.15,
		1.20, 1.25, 1.28, 1.30, 1.25, 1.20, 1.15, 1.10, 1.05, 1.00, 0.95, 0.90,
	},
	// Winter-like: morning and evening heating peaks.
	"winter_dual_peak": {
		0.90, 0.88, 0.86, 0.85, 0.88, 0.95, 1.05, 1.15, 1.10, 1.00, 0.95, 0.92,
		0.95, 1.05, 1.20, 1.30, 1.25, 1.15, 1.05, 1.00, 0.95, 0.93, 0.92, 0.91,
	},
	// Spring: renewable-heavy with a midday solar dip.
	"spring_solar": {
		0.95, 0.93, 0.91, 0.90, 0.92, 0.98, 1.05, 1.08, 1.02, 0.88, 0.75, 0.70,
		0.68, 0.72, 0.80, 0.92, 1.05, 1.12, 1.15, 1.10, 1.05, 1.02, 1.00, 0.98,
	},
	// Autumn: transition period with moderate variation.
	"autumn_transition": {
		0.92, 0.90, 0.88, 0.87, 0.89, 0.94, 1.00, 1.08, 1.10, 1.05, 1.00, 0.96,
		0.95, 1.00, 1.08, 1.15, 1.18, 1.12, 1.05, 1.00, 0.98, 0.96, 0.94, 0.93,
	},
	// Solar-heavy regions: deep midday dip, high evening ramp.
	"solar_heavy": {
		1.05, 1.03, 1.01, 1.00, 1.02, 1.08, 1.12, 1.15, 1.08, 0.85, 0.65, 0.55,
		0.52, 0.58, 0.72, 0.95, 1.15, 1.28, 1.35, 1.30, 1.20, 1.15, 1.12, 1.08,
	},
	// Wind-heavy regions: variable with night lows.
	"wind_heavy": {
		0.88, 0.85, 0.83, 0.82, 0.85, 0.92, 1.00, 1.10, 1.15, 1.12, 1.08, 1.05,
		1.03, 1.08, 1.15, 1.20, 1.18, 1.12, 1.05, 1.00, 0.98, 0.95, 0.92, 0.90,
	},
	// Coal-heavy regions: flatter with modest peaks.
	"coal_heavy": {
		0.98, 0.97, 0.96, 0.95, 0.96, 0.98, 1.00, 1.05, 1.08, 1.10, 1.12, 1.10,
		1.08, 1.10, 1.12, 1.15, 1.12, 1.08, 1.05, 1.03, 1.02, 1.01, 1.00, 0.99,
	},
}

// HourlyProfile synthesizes a 24-value carbon intensity curve (kg CO₂/kWh
// per hour of day) for a region and season.
//
// The base intensity comes from the region's grid mix when one exists,
// otherwise from the effective electricity factor. The shape is picked by
// region characteristics first (solar/wind/coal-heavy mixes), then by
// season substring, then "flat". The shape is normalized to unit mean and
// scaled by the base intensity; each value is rounded to 5 decimals.
//
// The result always has exactly 24 values; the function never fails.
func (e *Engine) HourlyProfile(regionCode, season string) []float64 {
	base := 0.0
	if mix := e.GridMix(regionCode); len(mix) > 0 {
		base = ImpliedIntensity(mix)
	} else {
		// EffectiveElectricityFactor already degrades to the default
		// factor constant on any resolution failure.
		base = e.EffectiveElectricityFactor(regionCode, 0)
	}

	shape := profileShapes[e.shapeName(regionCode, season)]
	norm := normalizeShape(shape)

	profile := make([]float64, 0, ProfileHours)
	for _, x := range norm {
		profile = append(profile, round(base*x, 5))
	}
	return ensureHours(profile)
}

// shapeName resolves the shape by priority: region-characteristic override,
// then season substring match, then flat.
func (e *Engine) shapeName(regionCode, season string) string {
	mix := e.GridMix(regionCode)
	switch {
	case mix["solar"] > solarHeavyShare:
		return "solar_heavy"
	case mix["wind"] > windHeavyShare:
		return "wind_heavy"
	case mix["coal"] > coalHeavyShare:
		return "coal_heavy"
	}

	s := strings.ToLower(season)
	switch {
	case strings.Contains(s, "winter"):
		return "winter_dual_peak"
	case strings.Contains(s, "summer"):
		return "evening_peak"
	case strings.Contains(s, "spring"):
		return "spring_solar"
	case strings.Contains(s, "autumn"), strings.Contains(s, "fall"):
		return "autumn_transition"
	}
	return "flat"
}

// ShapeNames lists the shipped shape names, for display surfaces.
func ShapeNames() []string {
	names := make([]string, 0, len(profileShapes))
	for name := range profileShapes {
		names = append(names, name)
	}
	return names
}

// normalizeShape clamps negatives to zero and rescales so the arithmetic
// mean is exactly 1.0. A shape whose values are all zero (or an empty
// shape) becomes flat all-ones.
func normalizeShape(shape []float64) []float64 {
	if len(shape) == 0 {
		shape = make([]float64, ProfileHours)
	}
	vals := make([]float64, len(shape))
	sum := 0.0
	for i, x := range shape {
		if x < 0 {
			x = 0
		}
		vals[i] = x
		sum += x
	}
	avg := sum / float64(len(vals))
	if avg <= 0 {
		ones := make([]float64, ProfileHours)
		for i := range ones {
			ones[i] = 1.0
		}
		return ones
	}
	for i := range vals {
		vals[i] /= avg
	}
	return vals
}

// ensureHours pads (repeating the last value) or truncates to exactly
// 24 entries. The fixed shape table makes this a no-op in practice.
func ensureHours(profile []float64) []float64 {
	if len(profile) == ProfileHours {
		return profile
	}
	if len(profile) == 0 {
		return make([]float64, ProfileHours)
	}
	for len(profile) < ProfileHours {
		profile = append(profile, profile[len(profile)-1])
	}
	return profile[:ProfileHours]
}
