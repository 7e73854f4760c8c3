package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonfocus/carbonfocus/internal/equiv"
	"github.com/carbonfocus/carbonfocus/internal/history"
)

// summaryParams holds the parameters for the summary command execution.
type summaryParams struct {
	date string
}

// summaryResult is the JSON shape of the daily summary.
type summaryResult struct {
	Date          string        `json:"date"`
	TotalKg       *float64      `json:"total_kg,omitempty"`
	YesterdayKg   *float64      `json:"yesterday_kg,omitempty"`
	DeltaKg       *float64      `json:"delta_kg,omitempty"`
	Streak        int           `json:"streak"`
	Badges        []string      `json:"badges,omitempty"`
	Equivalencies *equiv.Output `json:"equivalencies,omitempty"`
}

// NewSummaryCmd creates the "summary" command: today's logged total against
// yesterday, the logging streak, earned badges, and equivalencies.
func NewSummaryCmd() *cobra.Command {
	var params summaryParams

	cmd := &cobra.Command{
		Use:     "summary",
		Short:   "Summarize a logged day against yesterday",
		Example: summaryExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeSummary(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.date, "date", "", "Day to summarize as YYYY-MM-DD (default today)")
	return cmd
}

const summaryExample = `  # Today
  carbonfocus summary

  # A past day, as JSON
  carbonfocus summary --date 2026-08-24 --output json`

func executeSummary(cmd *cobra.Command, params summaryParams) error {
	ctx := cmd.Context()
	env := loadEnvironment(ctx)

	date, err := entryDate(params.date)
	if err != nil {
		return err
	}

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	result := summaryResult{Date: date.Format(history.DateLayout)}

	if total, ok, err := store.TotalFor(ctx, date); err != nil {
		return err
	} else if ok {
		result.TotalKg = &total
	}
	if yesterday, ok, err := store.TotalFor(ctx, date.AddDate(0, 0, -1)); err != nil {
		return err
	} else if ok {
		result.YesterdayKg = &yesterday
	}
	if result.TotalKg != nil && result.YesterdayKg != nil {
		delta := *result.TotalKg - *result.YesterdayKg
		result.DeltaKg = &delta
	}

	if result.Streak, err = store.Streak(ctx, date); err != nil {
		return err
	}
	if result.TotalKg != nil {
		if result.Badges, err = store.Badges(ctx, date, *result.TotalKg); err != nil {
			return err
		}
		if eq, err := equiv.Calculate(*result.TotalKg); err == nil && !eq.IsEmpty {
			result.Equivalencies = &eq
		}
	}

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), result)
	}
	renderSummaryTable(cmd, result)
	return nil
}

func renderSummaryTable(cmd *cobra.Command, result summaryResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Summary — %s", result.Date)))

	if result.TotalKg == nil {
		fmt.Fprintln(out, "  Nothing logged for this day yet (see 'history log').")
	} else {
		fmt.Fprintf(out, "  Total: %s\n", formatKg(*result.TotalKg))
	}

	switch {
	case result.DeltaKg == nil:
		if result.YesterdayKg != nil {
			fmt.Fprintf(out, "  Yesterday: %s\n", formatKg(*result.YesterdayKg))
		}
	case *result.DeltaKg < 0:
		fmt.Fprintf(out, "  %s\n", goodStyle.Render(
			fmt.Sprintf("▼ %.2f kg vs yesterday", -*result.DeltaKg)))
	case *result.DeltaKg > 0:
		fmt.Fprintf(out, "  %s\n", warnStyle.Render(
			fmt.Sprintf("▲ %.2f kg vs yesterday", *result.DeltaKg)))
	default:
		fmt.Fprintln(out, "  Level with yesterday")
	}

	if result.Streak > 0 {
		fmt.Fprintf(out, "  Streak: %d day(s)\n", result.Streak)
	}
	for _, badge := range result.Badges {
		fmt.Fprintf(out, "  %s\n", goodStyle.Render("★ "+badge))
	}
	if result.Equivalencies != nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  %s\n", labelStyle.Render(result.Equivalencies.DisplayText))
	}
}
