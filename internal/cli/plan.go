package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonfocus/carbonfocus/internal/engine"
	"github.com/carbonfocus/carbonfocus/internal/logging"
)

// planForecastParams holds the parameters for "plan forecast".
type planForecastParams struct {
	totals []float64
}

// NewPlanForecastCmd creates the "plan forecast" command projecting the
// next seven days from recent history.
//
// Daily totals come from the history database when present; --totals
// supplies them explicitly for ad-hoc runs.
func NewPlanForecastCmd() *cobra.Command {
	var params planForecastParams

	cmd := &cobra.Command{
		Use:     "forecast",
		Short:   "Project the next 7 days from recent daily totals",
		Example: planForecastExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executePlanForecast(cmd, params)
		},
	}

	cmd.Flags().Float64SliceVar(&params.totals, "totals", nil,
		"Recent daily totals in kg (defaults to logged history)")

	return cmd
}

const planForecastExample = `  # From logged history
  carbonfocus plan forecast

  # From explicit totals
  carbonfocus plan forecast --totals 12.1,9.8,11.4`

func executePlanForecast(cmd *cobra.Command, params planForecastParams) error {
	ctx := cmd.Context()
	env := loadEnvironment(ctx)

	totals := params.totals
	if len(totals) == 0 {
		store, err := openHistory()
		if err != nil {
			return err
		}
		defer store.Close()
		totals, err = store.DailyTotals(ctx, engine.ForecastDays)
		if err != nil {
			return err
		}
	}
	if len(totals) == 0 {
		return fmt.Errorf("no daily totals available: log entries with 'history log' or pass --totals")
	}

	log := logging.FromContext(ctx)
	log.Debug().Int("days", len(totals)).Msg("forecasting from daily totals")

	forecast := engine.ForecastNext7(totals)

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), map[string]any{"forecast": forecast})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("7-day forecast"))
	table := newTable(out)
	week := 0.0
	for i, kg := range forecast {
		fmt.Fprintf(table, "  Day %d\t%.2f kg\n", i+1, kg)
		week += kg
	}
	if err := table.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n  Week total: %s\n", formatKg(week))
	return nil
}

// planGoalParams holds the parameters for "plan goal".
type planGoalParams struct {
	target    float64
	current   float64
	remaining int
}

// NewPlanGoalCmd creates the "plan goal" command computing the allowed
// daily average to hit a weekly target.
func NewPlanGoalCmd() *cobra.Command {
	var params planGoalParams

	cmd := &cobra.Command{
		Use:     "goal",
		Short:   "Compute the daily budget to land on a weekly target",
		Example: planGoalExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executePlanGoal(cmd, params)
		},
	}

	cmd.Flags().Float64Var(&params.target, "target", 0,
		"Weekly target in kg (default from config weekly_goal_kg)")
	cmd.Flags().Float64Var(&params.current, "current", 0, "Kg emitted so far this week")
	cmd.Flags().IntVar(&params.remaining, "remaining-days", 7, "Days left in the week")

	return cmd
}

const planGoalExample = `  # 3 days in, 4 to go, 50 kg weekly target
  carbonfocus plan goal --target 50 --current 22.4 --remaining-days 4

  # Using the configured weekly goal
  carbonfocus plan goal --current 22.4 --remaining-days 4`

func executePlanGoal(cmd *cobra.Command, params planGoalParams) error {
	env := loadEnvironment(cmd.Context())

	target := params.target
	if target <= 0 {
		target = env.cfg.WeeklyGoalKg
	}
	if target <= 0 {
		return fmt.Errorf("no weekly target: pass --target or set weekly_goal_kg in config")
	}

	plan := engine.WeeklyGoalPlan(params.current, params.remaining, target)

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), plan)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("Weekly goal"))
	table := newTable(out)
	fmt.Fprintf(table, "  Target\t%.1f kg\n", target)
	fmt.Fprintf(table, "  Emitted so far\t%.1f kg\n", params.current)
	fmt.Fprintf(table, "  Allowed per day\t%.2f kg over %d day(s)\n",
		plan.RequiredPerDay, params.remaining)
	if err := table.Flush(); err != nil {
		return err
	}

	switch {
	case plan.DeltaVsCurrentAvg > 0:
		fmt.Fprintf(out, "\n  %s\n", goodStyle.Render(fmt.Sprintf(
			"Headroom: %.2f kg/day above your current pace", plan.DeltaVsCurrentAvg)))
	case plan.DeltaVsCurrentAvg < 0:
		fmt.Fprintf(out, "\n  %s\n", warnStyle.Render(fmt.Sprintf(
			"Cut %.2f kg/day from your current pace to stay on target", -plan.DeltaVsCurrentAvg)))
	}
	return nil
}

// planOffsetsParams holds the parameters for "plan offsets".
type planOffsetsParams struct {
	today float64
	week  float64
	price float64
}

// NewPlanOffsetsCmd creates the "plan offsets" command estimating offset
// purchases for today's (and optionally the week's) footprint.
func NewPlanOffsetsCmd() *cobra.Command {
	var params planOffsetsParams

	cmd := &cobra.Command{
		Use:     "offsets",
		Short:   "Estimate offset purchases for a footprint",
		Example: planOffsetsExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executePlanOffsets(cmd, params)
		},
	}

	cmd.Flags().Float64Var(&params.today, "today", 0, "Today's footprint in kg")
	cmd.Flags().Float64Var(&params.week, "week", 0, "This week's footprint in kg (optional)")
	cmd.Flags().Float64Var(&params.price, "price", 0,
		"USD per tonne (default from config offset_price_per_tonne)")

	return cmd
}

const planOffsetsExample = `  # Today's 12.4 kg at the configured price
  carbonfocus plan offsets --today 12.4

  # Today and the week, at $18/tonne
  carbonfocus plan offsets --today 12.4 --week 80.5 --price 18`

func executePlanOffsets(cmd *cobra.Command, params planOffsetsParams) error {
	env := loadEnvironment(cmd.Context())

	price := params.price
	if price <= 0 {
		price = env.cfg.OffsetPricePerTonne
	}

	var week *float64
	if params.week > 0 {
		week = &params.week
	} else if params.today > 0 {
		// Fill the week from history when available.
		if store, err := openHistory(); err == nil {
			defer store.Close()
			if totals, err := store.DailyTotals(cmd.Context(), engine.ForecastDays); err == nil && len(totals) > 0 {
				sum := 0.0
				for _, t := range totals {
					sum += t
				}
				week = &sum
			}
		}
	}

	estimate := engine.EstimateOffsets(params.today, week, price)

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), estimate)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("Offset estimate"))
	renderOffsetBucket(cmd, "Today", estimate.Today)
	if estimate.Week != nil {
		fmt.Fprintln(out)
		renderOffsetBucket(cmd, "This week", *estimate.Week)
	}
	return nil
}

func renderOffsetBucket(cmd *cobra.Command, label string, bucket engine.OffsetBucket) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %s: %.4f t → $%.2f at $%.0f/tonne\n",
		label, bucket.Tonnes, bucket.CostUSD, bucket.PricePerTonne)
	table := newTable(out)
	for _, project := range bucket.Mix {
		fmt.Fprintf(table, "    %s\t%.0f%%\t$%.2f\n",
			project.Project, project.Share*100, bucket.CostUSD*project.Share)
	}
	_ = table.Flush()
}
