package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carbonfocus/carbonfocus/internal/engine"
)

// NewScoreCmd creates the "score" command rating a day's readings against
// household baselines.
func NewScoreCmd() *cobra.Command {
	var params readingsParams

	cmd := &cobra.Command{
		Use:     "score",
		Short:   "Rate a day's readings 0-100 against household baselines",
		Example: scoreExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeScore(cmd, params)
		},
	}

	registerReadingsFlags(cmd, &params)
	return cmd
}

const scoreExample = `  # Score a light day
  carbonfocus score --set electricity_kwh=6 --set bus_km=8

  # From a JSON file
  carbonfocus score --input today.json --output json`

func executeScore(cmd *cobra.Command, params readingsParams) error {
	env := loadEnvironment(cmd.Context())

	raw, err := parseReadings(cmd, params)
	if err != nil {
		return err
	}

	var result engine.ScoreResult
	if engine.HasMeaningfulInput(raw) {
		warnInvalidFields(cmd, raw)
		result = engine.EfficiencyScore(engine.Sanitize(raw))
	} else {
		result = engine.FallbackScore()
	}

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), result)
	}
	renderScoreTable(cmd, result)
	return nil
}

func renderScoreTable(cmd *cobra.Command, result engine.ScoreResult) {
	out := cmd.OutOrStdout()

	badge := result.Badges
	style := goodStyle
	if result.Score < 50 {
		style = warnStyle
	}
	fmt.Fprintln(out, headerStyle.Render("Efficiency score"))
	fmt.Fprintf(out, "  %s\n", style.Render(fmt.Sprintf("%d/100 — %s", result.Score, joinBadges(badge))))

	if len(result.CategoryScores) > 0 {
		fmt.Fprintln(out)
		table := newTable(out)
		for _, cat := range engine.Categories() {
			if score, ok := result.CategoryScores[cat]; ok {
				fmt.Fprintf(table, "  %s\t%d/100\n", cat, score)
			}
		}
		_ = table.Flush()
	}

	for _, note := range result.Notes {
		fmt.Fprintf(out, "  %s\n", labelStyle.Render(note))
	}
}

func joinBadges(badges []string) string {
	if len(badges) == 0 {
		return "unrated"
	}
	s := badges[0]
	for _, b := range badges[1:] {
		s += ", " + b
	}
	return s
}
