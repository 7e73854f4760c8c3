package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonfocus/carbonfocus/internal/engine"
)

// profileParams holds the parameters for the profile command execution.
type profileParams struct {
	season string
	top    int
}

// profileResult is the JSON shape of a synthesized profile.
type profileResult struct {
	Region   string    `json:"region"`
	Season   string    `json:"season,omitempty"`
	Hours    []float64 `json:"hours"`
	LowHours []int     `json:"low_hours"`
}

// NewProfileCmd creates the "profile" command showing the synthesized 24h
// electricity intensity curve for a region and season.
func NewProfileCmd() *cobra.Command {
	var params profileParams

	cmd := &cobra.Command{
		Use:     "profile",
		Short:   "Show the 24-hour grid intensity profile",
		Example: profileExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeProfile(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.season, "season", "", "Season hint: winter, spring, summer, or autumn")
	cmd.Flags().IntVar(&params.top, "top", 3, "Number of low-intensity hours to highlight")

	return cmd
}

const profileExample = `  # Default region's profile
  carbonfocus profile

  # France in winter, highlighting the 5 cleanest hours
  carbonfocus profile --region FR --season winter --top 5

  # Machine-readable
  carbonfocus profile --region US-avg --output json`

func executeProfile(cmd *cobra.Command, params profileParams) error {
	env := loadEnvironment(cmd.Context())
	regionCode := resolveRegion(cmd, env.cfg)

	hours := env.engine.HourlyProfile(regionCode, params.season)
	result := profileResult{
		Region:   regionLabel(regionCode),
		Season:   params.season,
		Hours:    hours,
		LowHours: engine.SuggestLowHours(hours, params.top),
	}

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), result)
	}
	renderProfileTable(cmd, result)
	return nil
}

func regionLabel(code string) string {
	if code == "" {
		return "default"
	}
	return code
}

func renderProfileTable(cmd *cobra.Command, result profileResult) {
	out := cmd.OutOrStdout()

	title := fmt.Sprintf("Hourly intensity — %s", result.Region)
	if result.Season != "" {
		title += fmt.Sprintf(" (%s)", result.Season)
	}
	fmt.Fprintln(out, headerStyle.Render(title))

	max := 0.0
	for _, v := range result.Hours {
		if v > max {
			max = v
		}
	}

	low := make(map[int]bool, len(result.LowHours))
	for _, h := range result.LowHours {
		low[h] = true
	}

	table := newTable(out)
	for hour, value := range result.Hours {
		bar := intensityBar(value, max)
		if low[hour] {
			bar = goodStyle.Render(bar) + " ◀ low"
		}
		fmt.Fprintf(table, "  %s\t%.5f\t%s\n", hourLabel(hour), value, bar)
	}
	_ = table.Flush()

	fmt.Fprintln(out)
	fmt.Fprintf(out, "%s\n", labelStyle.Render(
		fmt.Sprintf("Cleanest hours: %s", formatHours(result.LowHours))))
}

func formatHours(hours []int) string {
	if len(hours) == 0 {
		return "n/a"
	}
	s := ""
	for i, h := range hours {
		if i > 0 {
			s += ", "
		}
		s += hourLabel(h)
	}
	return s
}
