// Package engine estimates household CO₂ emissions from daily activity
// readings. It owns the emission factor tables, the regional intensity
// resolver, the hourly carbon-intensity profile synthesizer, the load-shift
// optimizer, the efficiency scorer, and the planning aids.
//
// Every function is a pure numeric transform over small inputs. Public
// functions never fail on malformed input: unknown activities are ignored,
// bad numbers are dropped, and internal resolution failures degrade to
// documented defaults, because the callers are interactive surfaces where a
// crash is worse than a slightly wrong number.
package engine

// Category partitions the activity vocabulary for scoring and breakdowns.
type Category string

// The three fixed categories. Every activity key belongs to exactly one.
const (
	CategoryEnergy    Category = "Energy"
	CategoryTransport Category = "Transport"
	CategoryMeals     Category = "Meals"
)

// Canonical activity keys. Inputs are normalized into this vocabulary;
// anything that does not land on one of these is ignored.
const (
	KeyElectricityKWh     = "electricity_kwh"
	KeyNaturalGasM3       = "natural_gas_m3"
	KeyHotWaterLiter      = "hot_water_liter"
	KeyColdWaterLiter     = "cold_water_liter"
	KeyDistrictHeatingKWh = "district_heating_kwh"
	KeyPropaneLiter       = "propane_liter"
	KeyFuelOilLiter       = "fuel_oil_liter"

	KeyPetrolLiter   = "petrol_liter"
	KeyDieselLiter   = "diesel_liter"
	KeyBusKm         = "bus_km"
	KeyTrainKm       = "train_km"
	KeyBicycleKm     = "bicycle_km"
	KeyFlightShortKm = "flight_short_km"
	KeyFlightLongKm  = "flight_long_km"

	KeyMeatKg       = "meat_kg"
	KeyChickenKg    = "chicken_kg"
	KeyEggsKg       = "eggs_kg"
	KeyDairyKg      = "dairy_kg"
	KeyVegetarianKg = "vegetarian_kg"
	KeyVeganKg      = "vegan_kg"
)

// co2Factors maps canonical activity keys to kg CO₂ per unit. Values are
// illustrative constants, adaptable to local datasets; they are fixed for
// the process lifetime.
var co2Factors = map[string]float64{
	KeyElectricityKWh:     0.233,
	KeyNaturalGasM3:       2.03,
	KeyHotWaterLiter:      0.25,
	KeyColdWaterLiter:     0.075,
	KeyDistrictHeatingKWh: 0.15,
	KeyPropaneLiter:       1.51,
	KeyFuelOilLiter:       2.52,

	KeyPetrolLiter:   0.235,
	KeyDieselLiter:   0.268,
	KeyBusKm:         0.12,
	KeyTrainKm:       0.14,
	KeyBicycleKm:     0.0,
	KeyFlightShortKm: 0.275,
	KeyFlightLongKm:  0.175,

	KeyMeatKg:       27.0,
	KeyChickenKg:    6.9,
	KeyEggsKg:       4.8,
	KeyDairyKg:      13.0,
	KeyVegetarianKg: 2.0,
	KeyVeganKg:      1.5,
}

// categoryOrder fixes iteration order for scoring tie-breaks and display.
var categoryOrder = []Category{CategoryEnergy, CategoryTransport, CategoryMeals}

// categoryKeys is the fixed partition of activity keys into categories.
var categoryKeys = map[Category][]string{
	CategoryEnergy: {
		KeyElectricityKWh, KeyNaturalGasM3, KeyDistrictHeatingKWh,
		KeyPropaneLiter, KeyFuelOilLiter, KeyHotWaterLiter, KeyColdWaterLiter,
	},
	CategoryTransport: {
		KeyPetrolLiter, KeyDieselLiter, KeyBusKm, KeyTrainKm,
		KeyBicycleKm, KeyFlightShortKm, KeyFlightLongKm,
	},
	CategoryMeals: {
		KeyMeatKg, KeyChickenKg, KeyEggsKg, KeyDairyKg,
		KeyVegetarianKg, KeyVeganKg,
	},
}

// Factor returns the default emission factor for a canonical activity key.
func Factor(key string) (float64, bool) {
	f, ok := co2Factors[key]
	return f, ok
}

// Keys returns all canonical activity keys grouped by category, in fixed
// category order.
func Keys() []string {
	var keys []string
	for _, cat := range categoryOrder {
		keys = append(keys, categoryKeys[cat]...)
	}
	return keys
}

// Categories returns the three categories in fixed order.
func Categories() []Category {
	out := make([]Category, len(categoryOrder))
	copy(out, categoryOrder)
	return out
}

// KeysForCategory returns the activity keys belonging to cat.
func KeysForCategory(cat Category) []string {
	keys := categoryKeys[cat]
	out := make([]string, len(keys))
	copy(out, keys)
	return out
}

// CategoryOf reports which category a canonical key belongs to.
func CategoryOf(key string) (Category, bool) {
	for _, cat := range categoryOrder {
		for _, k := range categoryKeys[cat] {
			if k == key {
				return cat, true
			}
		}
	}
	return "", false
}
