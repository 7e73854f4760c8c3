package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carbonfocus/carbonfocus/internal/engine"
)

// shiftLowHoursParams holds the parameters for "shift low-hours".
type shiftLowHoursParams struct {
	season string
	top    int
}

// NewShiftLowHoursCmd creates the "shift low-hours" command listing the
// cleanest hours of the day.
func NewShiftLowHoursCmd() *cobra.Command {
	var params shiftLowHoursParams

	cmd := &cobra.Command{
		Use:     "low-hours",
		Short:   "List the lowest-intensity hours of the day",
		Example: shiftLowHoursExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeShiftLowHours(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.season, "season", "", "Season hint: winter, spring, summer, or autumn")
	cmd.Flags().IntVar(&params.top, "top", 3, "Number of hours to suggest")

	return cmd
}

const shiftLowHoursExample = `  # Three cleanest hours for the default region
  carbonfocus shift low-hours

  # Five cleanest hours for France in summer
  carbonfocus shift low-hours --region FR --season summer --top 5`

func executeShiftLowHours(cmd *cobra.Command, params shiftLowHoursParams) error {
	env := loadEnvironment(cmd.Context())
	regionCode := resolveRegion(cmd, env.cfg)

	profile := env.engine.HourlyProfile(regionCode, params.season)
	hours := engine.SuggestLowHours(profile, params.top)

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), map[string]any{
			"region": regionLabel(regionCode), "low_hours": hours,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(
		fmt.Sprintf("Cleanest hours — %s", regionLabel(regionCode))))
	table := newTable(out)
	for rank, hour := range hours {
		fmt.Fprintf(table, "  %d.\t%s\t%s\n",
			rank+1, hourLabel(hour), formatIntensity(profile[hour]))
	}
	return table.Flush()
}

// shiftCompareParams holds the parameters for "shift compare".
type shiftCompareParams struct {
	season string
	tasks  []string
}

// NewShiftCompareCmd creates the "shift compare" command comparing tasks
// at their current hour against the day's optimum.
func NewShiftCompareCmd() *cobra.Command {
	var params shiftCompareParams

	cmd := &cobra.Command{
		Use:     "compare",
		Short:   "Compare task emissions at their current hour vs the optimal hour",
		Example: shiftCompareExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeShiftCompare(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.season, "season", "", "Season hint: winter, spring, summer, or autumn")
	cmd.Flags().StringArrayVar(&params.tasks, "task", nil,
		"Task as name:kwh:hour (repeatable, e.g. --task laundry:1.5:19)")

	return cmd
}

const shiftCompareExample = `  # Two evening chores on the French grid
  carbonfocus shift compare --region FR \
    --task laundry:1.5:19 --task dishwasher:1.2:20

  # Machine-readable
  carbonfocus shift compare --task "ev charge:7:18" --output json`

func executeShiftCompare(cmd *cobra.Command, params shiftCompareParams) error {
	env := loadEnvironment(cmd.Context())
	regionCode := resolveRegion(cmd, env.cfg)

	tasks, err := parseTasks(params.tasks)
	if err != nil {
		return err
	}
	if len(tasks) == 0 {
		return fmt.Errorf("no tasks supplied (use --task name:kwh:hour)")
	}

	profile := env.engine.HourlyProfile(regionCode, params.season)
	comparisons := engine.CompareTasksAtHours(profile, tasks)

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), comparisons)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("Task comparison"))
	table := newTable(out)
	fmt.Fprintf(table, "  TASK\tNOW\tOPTIMAL\tSAVES\n")
	for _, c := range comparisons {
		fmt.Fprintf(table, "  %s\t%s %.3f kg\t%s %.3f kg\t%.3f kg (%.1f%%)\n",
			c.Name,
			hourLabel(c.CurrentHour), c.CurrentCO2Kg,
			hourLabel(c.OptimalHour), c.OptimalCO2Kg,
			c.SavingsKg, c.SavingsPct)
	}
	return table.Flush()
}

// parseTasks parses repeated name:kwh:hour specs. Task names may contain
// spaces but not colons.
func parseTasks(specs []string) ([]engine.Task, error) {
	tasks := make([]engine.Task, 0, len(specs))
	for _, spec := range specs {
		parts := strings.Split(spec, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("invalid --task %q: expected name:kwh:hour", spec)
		}
		kwh, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --task %q: bad kWh: %w", spec, err)
		}
		hour, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("invalid --task %q: bad hour: %w", spec, err)
		}
		tasks = append(tasks, engine.Task{
			Name: strings.TrimSpace(parts[0]), KWh: kwh, Hour: hour,
		})
	}
	return tasks, nil
}

// shiftAnnualParams holds the parameters for "shift annual".
type shiftAnnualParams struct {
	season string
	kwh    float64
	hour   int
}

// NewShiftAnnualCmd creates the "shift annual" command projecting yearly
// savings from permanently moving a daily task to the cleanest hour.
func NewShiftAnnualCmd() *cobra.Command {
	var params shiftAnnualParams

	cmd := &cobra.Command{
		Use:     "annual",
		Short:   "Project annual savings from shifting a daily task",
		Example: shiftAnnualExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeShiftAnnual(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.season, "season", "", "Season hint: winter, spring, summer, or autumn")
	cmd.Flags().Float64Var(&params.kwh, "kwh", 0, "Daily task consumption in kWh")
	cmd.Flags().IntVar(&params.hour, "hour", 0, "Hour the task currently runs (0-23)")

	return cmd
}

const shiftAnnualExample = `  # Shifting a 2 kWh daily task away from 19:00
  carbonfocus shift annual --kwh 2 --hour 19

  # Same, on the French winter grid
  carbonfocus shift annual --kwh 2 --hour 19 --region FR --season winter`

func executeShiftAnnual(cmd *cobra.Command, params shiftAnnualParams) error {
	env := loadEnvironment(cmd.Context())
	regionCode := resolveRegion(cmd, env.cfg)

	if params.kwh <= 0 {
		return fmt.Errorf("--kwh must be positive, got %v", params.kwh)
	}

	profile := env.engine.HourlyProfile(regionCode, params.season)
	savings := engine.CalculateAnnualSavings(params.kwh, params.hour, profile)

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), savings)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("Annual shift projection"))
	table := newTable(out)
	fmt.Fprintf(table, "  Current hour\t%s (%s)\n",
		hourLabel(params.hour), formatIntensity(savings.CurrentIntensity))
	fmt.Fprintf(table, "  Best hour\t%s (%s)\n",
		hourLabel(savings.BestHour), formatIntensity(savings.BestIntensity))
	fmt.Fprintf(table, "  Daily savings\t%.3f kg\n", savings.DailySavingsKg)
	fmt.Fprintf(table, "  Monthly savings\t%.2f kg\n", savings.MonthlySavingsKg)
	fmt.Fprintf(table, "  Yearly savings\t%.1f kg (%.1f%%)\n",
		savings.YearlySavingsKg, savings.SavingsPct)
	fmt.Fprintf(table, "  Yearly cost offset\t$%.2f\n", savings.YearlyCostSavingsUSD)
	return table.Flush()
}
