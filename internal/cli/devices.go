package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/carbonfocus/carbonfocus/internal/engine"
)

// NewDevicesListCmd creates the "devices list" command printing the preset
// catalog grouped by category.
func NewDevicesListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List the household device presets",
		Example: devicesListExample,
		RunE:    executeDevicesList,
	}
	return cmd
}

const devicesListExample = `  carbonfocus devices list

  carbonfocus devices list --output json`

func executeDevicesList(cmd *cobra.Command, _ []string) error {
	env := loadEnvironment(cmd.Context())
	byCategory := engine.DevicePresetsByCategory()

	if resolveOutput(cmd, env.cfg) == "json" {
		type deviceRow struct {
			Name        string  `json:"name"`
			Category    string  `json:"category"`
			PowerW      float64 `json:"power_w"`
			HoursPerDay float64 `json:"hours_per_day"`
			DailyKWh    float64 `json:"daily_kwh"`
		}
		var rows []deviceRow
		for _, name := range engine.DevicePresetNames() {
			preset, _ := engine.DevicePresetByName(name)
			rows = append(rows, deviceRow{
				Name:        name,
				Category:    preset.Category,
				PowerW:      preset.PowerW,
				HoursPerDay: preset.HoursPerDay,
				DailyKWh:    preset.DailyKWh(),
			})
		}
		return renderJSON(cmd.OutOrStdout(), rows)
	}

	out := cmd.OutOrStdout()
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	for i, cat := range categories {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, headerStyle.Render(cat))
		table := newTable(out)
		for _, name := range byCategory[cat] {
			preset, _ := engine.DevicePresetByName(name)
			fmt.Fprintf(table, "  %s\t%.0f W\t%.1f h/day\t%.2f kWh/day\n",
				name, preset.PowerW, preset.HoursPerDay, preset.DailyKWh())
		}
		if err := table.Flush(); err != nil {
			return err
		}
	}
	return nil
}

// devicesEstimateParams holds the parameters for "devices estimate".
type devicesEstimateParams struct {
	device string
	hours  float64
	season string
	hour   int
}

// NewDevicesEstimateCmd creates the "devices estimate" command estimating
// one device's daily consumption and emissions on the region grid, with
// optional seasonal hour adjustment and hour-of-day intensity.
func NewDevicesEstimateCmd() *cobra.Command {
	var params devicesEstimateParams

	cmd := &cobra.Command{
		Use:     "estimate",
		Short:   "Estimate a device's daily kWh and CO₂ on the region grid",
		Example: devicesEstimateExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeDevicesEstimate(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.device, "device", "", "Preset name (see 'devices list')")
	cmd.Flags().Float64Var(&params.hours, "hours", -1,
		"Override daily usage hours (default from the preset)")
	cmd.Flags().StringVar(&params.season, "season", "",
		"Season adjusting usage hours: Summer, Winter, Spring, or Autumn")
	cmd.Flags().IntVar(&params.hour, "hour", -1,
		"Price the run at this hour's intensity instead of the daily average")

	return cmd
}

const devicesEstimateExample = `  # Air conditioner in summer on the US grid
  carbonfocus devices estimate --device "Air Conditioner" --season Summer --region US-avg

  # A 3-hour dishwasher run at 02:00 in France
  carbonfocus devices estimate --device Dishwasher --hours 3 --hour 2 --region FR`

// deviceEstimate is the JSON shape of a device estimate.
type deviceEstimate struct {
	Device        string  `json:"device"`
	Category      string  `json:"category"`
	Season        string  `json:"season,omitempty"`
	HoursPerDay   float64 `json:"hours_per_day"`
	DailyKWh      float64 `json:"daily_kwh"`
	IntensityUsed float64 `json:"intensity_used"`
	DailyCO2Kg    float64 `json:"daily_co2_kg"`
	YearlyCO2Kg   float64 `json:"yearly_co2_kg"`
}

func executeDevicesEstimate(cmd *cobra.Command, params devicesEstimateParams) error {
	env := loadEnvironment(cmd.Context())
	regionCode := resolveRegion(cmd, env.cfg)

	if params.device == "" {
		return fmt.Errorf("no device supplied (use --device, see 'devices list')")
	}
	preset, ok := engine.DevicePresetByName(params.device)
	if !ok {
		return fmt.Errorf("unknown device %q (see 'devices list')", params.device)
	}

	hours := preset.HoursPerDay
	if params.hours >= 0 {
		hours = params.hours
	}
	if params.season != "" {
		hours = engine.ApplySeasonalAdjustment(params.device, params.season, hours)
	}

	intensity := env.engine.EffectiveElectricityFactor(regionCode, env.cfg.RenewableShare)
	if params.hour >= 0 {
		profile := env.engine.HourlyProfile(regionCode, params.season)
		intensity = profile[((params.hour%24)+24)%24]
	}

	dailyKWh := preset.DailyKWhAt(hours)
	estimate := deviceEstimate{
		Device:        params.device,
		Category:      preset.Category,
		Season:        params.season,
		HoursPerDay:   hours,
		DailyKWh:      dailyKWh,
		IntensityUsed: intensity,
		DailyCO2Kg:    dailyKWh * intensity,
		YearlyCO2Kg:   dailyKWh * intensity * 365,
	}

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), estimate)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%s (%s)", estimate.Device, estimate.Category)))
	table := newTable(out)
	fmt.Fprintf(table, "  Usage\t%.1f h/day → %.2f kWh/day\n", estimate.HoursPerDay, estimate.DailyKWh)
	fmt.Fprintf(table, "  Intensity\t%s\n", formatIntensity(estimate.IntensityUsed))
	fmt.Fprintf(table, "  Daily CO₂\t%.3f kg\n", estimate.DailyCO2Kg)
	fmt.Fprintf(table, "  Yearly CO₂\t%.1f kg\n", estimate.YearlyCO2Kg)
	return table.Flush()
}
