// Package cli wires the carbonfocus commands: footprint calculation,
// intensity profiles, load shifting, scoring, planning, region packs,
// device presets, history, and the interactive dashboard.
package cli

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the carbonfocus CLI.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "carbonfocus",
		Short:   "Household CO₂ footprint calculator",
		Long:    "CarbonFocus: calculate household CO₂ emissions, synthesize grid intensity profiles, and plan lower-carbon days",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(cmd)
			if os.Getenv("CARBONFOCUS_HIDE_ALIAS_HINT") == "" && isTerminal(os.Stdin) {
				cmd.PrintErrln("Tip: Add 'alias carbon=carbonfocus' to your shell profile for a shorter command!")
			}
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("region", "", "region pack code (e.g. EU-avg, US-avg, FR)")
	cmd.PersistentFlags().String("output", "", "output format: table or json")

	cmd.AddCommand(
		NewCalcCmd(), NewProfileCmd(), newShiftCmd(), NewScoreCmd(),
		newPlanCmd(), newRegionsCmd(), newDevicesCmd(), newHistoryCmd(),
		NewSummaryCmd(), NewTUICmd(), newConfigCmd(),
	)

	return cmd
}

const rootCmdExample = `  # Calculate today's footprint
  carbonfocus calc --set electricity_kwh=10 --set bus_km=5

  # Show the 24h intensity profile for France in winter
  carbonfocus profile --region FR --season winter

  # Find the three cleanest hours to run appliances
  carbonfocus shift low-hours --top 3

  # Project annual savings from shifting a 2 kWh daily task
  carbonfocus shift annual --kwh 2 --hour 19

  # Score a day against household baselines
  carbonfocus score --set electricity_kwh=6 --set petrol_liter=2

  # Log today's readings and review the week
  carbonfocus history log --set electricity_kwh=10
  carbonfocus summary

  # Browse region packs and device presets
  carbonfocus regions list
  carbonfocus devices list

  # Open the interactive dashboard
  carbonfocus tui`

// newShiftCmd creates the shift command group for load-shifting advice.
func newShiftCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "shift", Short: "Load-shifting advice against the hourly intensity profile"}
	cmd.AddCommand(NewShiftLowHoursCmd(), NewShiftCompareCmd(), NewShiftAnnualCmd())
	return cmd
}

// newPlanCmd creates the plan command group with the planning aids.
func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "plan", Short: "Forecasts, weekly goals, and offset estimates"}
	cmd.AddCommand(NewPlanForecastCmd(), NewPlanGoalCmd(), NewPlanOffsetsCmd())
	return cmd
}

// newRegionsCmd creates the regions command group.
func newRegionsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "regions", Short: "Region pack inspection"}
	cmd.AddCommand(NewRegionsListCmd(), NewRegionsShowCmd())
	return cmd
}

// newDevicesCmd creates the devices command group.
func newDevicesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "devices", Short: "Household device presets"}
	cmd.AddCommand(NewDevicesListCmd(), NewDevicesEstimateCmd())
	return cmd
}

// newHistoryCmd creates the history command group.
func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "history", Short: "Logged daily entries"}
	cmd.AddCommand(NewHistoryLogCmd(), NewHistoryShowCmd(), NewHistoryExportCmd())
	return cmd
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd())
	return cmd
}
