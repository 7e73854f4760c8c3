package engine

import "sort"

// DevicePreset is one catalog entry for a common household appliance.
type DevicePreset struct {
	PowerW      float64 `json:"power_w"`
	HoursPerDay float64 `json:"hours_per_day"`
	Category    string  `json:"category"`
}

// DailyKWh returns the preset's typical daily consumption.
func (p DevicePreset) DailyKWh() float64 {
	return p.PowerW * p.HoursPerDay / 1000.0
}

// DailyKWhAt returns daily consumption for an explicit usage duration.
func (p DevicePreset) DailyKWhAt(hours float64) float64 {
	if hours < 0 {
		hours = 0
	}
	return p.PowerW * hours / 1000.0
}

// devicePresets is the reference catalog of appliances with typical power
// ratings and usage patterns.
var devicePresets = map[string]DevicePreset{
	// Kitchen
	"Refrigerator":   {PowerW: 150, HoursPerDay: 24.0, Category: "Kitchen"},
	"Freezer":        {PowerW: 100, HoursPerDay: 24.0, Category: "Kitchen"},
	"Dishwasher":     {PowerW: 1800, HoursPerDay: 1.0, Category: "Kitchen"},
	"Microwave":      {PowerW: 1200, HoursPerDay: 0.3, Category: "Kitchen"},
	"Electric Oven":  {PowerW: 2400, HoursPerDay: 1.0, Category: "Kitchen"},
	"Electric Stove": {PowerW: 2000, HoursPerDay: 1.5, Category: "Kitchen"},
	"Coffee Maker":   {PowerW: 1000, HoursPerDay: 0.5, Category: "Kitchen"},
	"Toaster":        {PowerW: 1200, HoursPerDay: 0.2, Category: "Kitchen"},
	"Kettle":         {PowerW: 1500, HoursPerDay: 0.3, Category: "Kitchen"},

	// Laundry and cleaning
	"Washing Machine": {PowerW: 500, HoursPerDay: 0.7, Category: "Laundry"},
	"Dryer":           {PowerW: 3000, HoursPerDay: 0.8, Category: "Laundry"},
	"Iron":            {PowerW: 1200, HoursPerDay: 0.5, Category: "Laundry"},
	"Vacuum Cleaner":  {PowerW: 1400, HoursPerDay: 0.3, Category: "Cleaning"},

	// Climate control
	"Air Conditioner (Small)": {PowerW: 900, HoursPerDay: 4.0, Category: "Climate"},
	"Air Conditioner (Large)": {PowerW: 1800, HoursPerDay: 6.0, Category: "Climate"},
	"Central AC":              {PowerW: 3500, HoursPerDay: 8.0, Category: "Climate"},
	"Space Heater":            {PowerW: 1500, HoursPerDay: 4.0, Category: "Climate"},
	"Electric Radiator":       {PowerW: 2000, HoursPerDay: 6.0, Category: "Climate"},
	"Ceiling Fan":             {PowerW: 75, HoursPerDay: 8.0, Category: "Climate"},
	"Dehumidifier":            {PowerW: 300, HoursPerDay: 8.0, Category: "Climate"},

	// Electronics and entertainment
	"TV (LED 40-50\")":  {PowerW: 90, HoursPerDay: 4.0, Category: "Entertainment"},
	"TV (OLED 55-65\")": {PowerW: 150, HoursPerDay: 4.0, Category: "Entertainment"},
	"Gaming Console":    {PowerW: 150, HoursPerDay: 3.0, Category: "Entertainment"},
	"Sound System":      {PowerW: 100, HoursPerDay: 3.0, Category: "Entertainment"},
	"Desktop PC":        {PowerW: 200, HoursPerDay: 6.0, Category: "Electronics"},
	"Laptop":            {PowerW: 65, HoursPerDay: 6.0, Category: "Electronics"},
	"Monitor":           {PowerW: 30, HoursPerDay: 8.0, Category: "Electronics"},
	"Router/Modem":      {PowerW: 10, HoursPerDay: 24.0, Category: "Electronics"},
	"Printer":           {PowerW: 50, HoursPerDay: 1.0, Category: "Electronics"},
	"Phone Charger":     {PowerW: 5, HoursPerDay: 2.0, Category: "Electronics"},
	"Tablet Charger":    {PowerW: 10, HoursPerDay: 2.0, Category: "Electronics"},
	"Smart Speaker":     {PowerW: 3, HoursPerDay: 24.0, Category: "Electronics"},

	// Lighting
	"LED Bulb (10W)":     {PowerW: 10, HoursPerDay: 5.0, Category: "Lighting"},
	"LED Bulb (15W)":     {PowerW: 15, HoursPerDay: 5.0, Category: "Lighting"},
	"CFL Bulb (20W)":     {PowerW: 20, HoursPerDay: 5.0, Category: "Lighting"},
	"Halogen Bulb (50W)": {PowerW: 50, HoursPerDay: 4.0, Category: "Lighting"},
	"LED Strip Lights":   {PowerW: 25, HoursPerDay: 6.0, Category: "Lighting"},

	// Electric vehicles and mobility
	"EV Charging (Level 1)": {PowerW: 1400, HoursPerDay: 8.0, Category: "EV"},
	"EV Charging (Level 2)": {PowerW: 7200, HoursPerDay: 4.0, Category: "EV"},
	"E-Bike Charging":       {PowerW: 100, HoursPerDay: 3.0, Category: "EV"},
	"E-Scooter Charging":    {PowerW: 150, HoursPerDay: 2.0, Category: "EV"},

	// Water heating
	"Electric Water Heater": {PowerW: 4000, HoursPerDay: 2.0, Category: "Water"},
	"Tankless Water Heater": {PowerW: 3000, HoursPerDay: 1.5, Category: "Water"},

	// Pool and outdoor
	"Pool Pump":        {PowerW: 1500, HoursPerDay: 6.0, Category: "Outdoor"},
	"Hot Tub":          {PowerW: 1500, HoursPerDay: 2.0, Category: "Outdoor"},
	"Outdoor Lighting": {PowerW: 100, HoursPerDay: 6.0, Category: "Outdoor"},

	// Miscellaneous
	"Hair Dryer":      {PowerW: 1500, HoursPerDay: 0.3, Category: "Personal Care"},
	"Electric Shaver": {PowerW: 15, HoursPerDay: 0.2, Category: "Personal Care"},
	"Security Camera": {PowerW: 5, HoursPerDay: 24.0, Category: "Security"},
	"Doorbell Camera": {PowerW: 4, HoursPerDay: 24.0, Category: "Security"},
}

// seasonalAdjustments override a device's typical daily hours for seasons
// where its usage pattern changes materially.
var seasonalAdjustments = map[string]map[string]float64{
	"Summer": {
		"Air Conditioner (Small)": 8.0,
		"Air Conditioner (Large)": 10.0,
		"Central AC":              12.0,
		"Ceiling Fan":             12.0,
		"Dehumidifier":            10.0,
		"Space Heater":            0.0,
		"Electric Radiator":       0.0,
	},
	"Winter": {
		"Air Conditioner (Small)": 0.0,
		"Air Conditioner (Large)": 0.0,
		"Central AC":              0.0,
		"Space Heater":            8.0,
		"Electric Radiator":       10.0,
		"Electric Water Heater":   3.0,
		"Ceiling Fan":             2.0,
	},
	"Spring": {
		"Air Conditioner (Small)": 2.0,
		"Space Heater":            2.0,
		"Ceiling Fan":             6.0,
	},
	"Autumn": {
		"Air Conditioner (Small)": 1.0,
		"Space Heater":            3.0,
		"Ceiling Fan":             4.0,
	},
}

// DevicePresetByName looks up one catalog entry by exact name.
func DevicePresetByName(name string) (DevicePreset, bool) {
	p, ok := devicePresets[name]
	return p, ok
}

// DevicePresetNames returns all catalog device names, sorted.
func DevicePresetNames() []string {
	names := make([]string, 0, len(devicePresets))
	for name := range devicePresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DevicePresetsByCategory groups device names by category, each group
// sorted by name.
func DevicePresetsByCategory() map[string][]string {
	out := make(map[string][]string)
	for name, preset := range devicePresets {
		out[preset.Category] = append(out[preset.Category], name)
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out
}

// ApplySeasonalAdjustment returns the device's usage hours for a season,
// falling back to baseHours when the season table has no entry for it.
func ApplySeasonalAdjustment(deviceName, season string, baseHours float64) float64 {
	if hours, ok := seasonalAdjustments[season][deviceName]; ok {
		return hours
	}
	return baseHours
}
