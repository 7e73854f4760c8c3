// Package equiv converts household carbon footprints (kg CO₂e) into
// relatable everyday equivalents — kilometers driven, smartphone charges,
// tree-seedling years — for the summary surfaces.
package equiv

import (
	"errors"
	"fmt"
	"math"
)

// Equivalency factors, kg CO₂e per unit of the activity. An equivalency is
// computed as kg / factor.
const (
	// KmDrivenFactor is kg CO₂e per km for an average passenger car.
	KmDrivenFactor = 0.119

	// SmartphoneChargeFactor is kg CO₂e per full smartphone charge.
	SmartphoneChargeFactor = 0.00822

	// TreeSeedlingFactor is kg CO₂e absorbed per tree seedling grown for
	// ten years.
	TreeSeedlingFactor = 60.0

	// HomeDayFactor is kg CO₂e per day of an average home's electricity.
	HomeDayFactor = 18.3
)

// MinKg is the footprint below which equivalencies are suppressed; the
// numbers become meaninglessly small.
const MinKg = 0.5

// Errors returned by Calculate.
var (
	ErrNegativeValue = errors.New("negative carbon value")
	ErrNotFinite     = errors.New("carbon value is not finite")
)

// Kind identifies one equivalency category.
type Kind int

// Equivalency categories in display priority order.
const (
	KindKmDriven Kind = iota
	KindSmartphoneCharges
	KindTreeSeedlings
	KindHomeDays
)

// String returns the kind's identifier for logs and JSON-ish output.
func (k Kind) String() string {
	switch k {
	case KindKmDriven:
		return "km_driven"
	case KindSmartphoneCharges:
		return "smartphone_charges"
	case KindTreeSeedlings:
		return "tree_seedlings"
	case KindHomeDays:
		return "home_days"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Result is one computed equivalency.
type Result struct {
	Kind      Kind    `json:"kind"`
	Value     float64 `json:"value"`
	Formatted string  `json:"formatted"`
	Label     string  `json:"label"`
}

// Output is the full equivalency set for one footprint.
type Output struct {
	InputKg     float64  `json:"input_kg"`
	Results     []Result `json:"results"`
	DisplayText string   `json:"display_text"`
	IsEmpty     bool     `json:"is_empty"`
}

// Calculate computes equivalencies for kg CO₂e.
//
// Footprints below MinKg return an empty Output without error. Negative or
// non-finite input is an error.
func Calculate(kg float64) (Output, error) {
	if math.IsNaN(kg) || math.IsInf(kg, 0) {
		return Output{IsEmpty: true}, ErrNotFinite
	}
	if kg < 0 {
		return Output{IsEmpty: true}, ErrNegativeValue
	}
	if kg < MinKg {
		return Output{InputKg: kg, IsEmpty: true}, nil
	}

	km := kg / KmDrivenFactor
	phones := kg / SmartphoneChargeFactor
	trees := kg / TreeSeedlingFactor
	homeDays := kg / HomeDayFactor

	results := []Result{
		{Kind: KindKmDriven, Value: km, Formatted: FormatValue(km), Label: "km driven"},
		{Kind: KindSmartphoneCharges, Value: phones, Formatted: FormatValue(phones), Label: "smartphone charges"},
		{Kind: KindTreeSeedlings, Value: trees, Formatted: FormatValue(trees), Label: "tree seedlings (10 yr)"},
		{Kind: KindHomeDays, Value: homeDays, Formatted: FormatValue(homeDays), Label: "home-days of electricity"},
	}

	display := fmt.Sprintf("Equivalent to driving ~%s km or charging ~%s smartphones",
		FormatValue(km), FormatValue(phones))

	return Output{
		InputKg:     kg,
		Results:     results,
		DisplayText: display,
	}, nil
}
