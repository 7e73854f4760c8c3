package cli

import (
	"fmt"
	"sort"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/carbonfocus/carbonfocus/internal/config"
	"github.com/carbonfocus/carbonfocus/internal/engine"
	"github.com/carbonfocus/carbonfocus/internal/logging"
	"github.com/carbonfocus/carbonfocus/internal/region"
	"github.com/carbonfocus/carbonfocus/internal/tui"
)

// NewTUICmd creates the "tui" command opening the interactive dashboard.
// When readings are supplied the dashboard also shows the day's score.
func NewTUICmd() *cobra.Command {
	var params readingsParams

	cmd := &cobra.Command{
		Use:     "tui",
		Short:   "Open the interactive dashboard",
		Example: tuiExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeTUI(cmd, params)
		},
	}

	registerReadingsFlags(cmd, &params)
	return cmd
}

const tuiExample = `  # Browse profiles and cleanest hours
  carbonfocus tui

  # Include today's score
  carbonfocus tui --set electricity_kwh=8 --set petrol_liter=2`

func executeTUI(cmd *cobra.Command, params readingsParams) error {
	ctx := cmd.Context()
	env := loadEnvironment(ctx)

	// Pick up region pack edits while the dashboard is open.
	if watcher, err := region.NewWatcher(config.RegionsPath(), env.engine.Regions()); err == nil {
		defer watcher.Stop()
		_ = watcher.Start(ctx)
	} else {
		logger := logging.FromContext(ctx)
		logger.Debug().Err(err).Msg("region watcher unavailable")
	}

	var score *engine.ScoreResult
	raw, err := parseReadings(cmd, params)
	if err != nil {
		return err
	}
	if engine.HasMeaningfulInput(raw) {
		result := engine.EfficiencyScore(engine.Sanitize(raw))
		score = &result
	}

	codes := env.engine.Regions().Current().Codes()
	sort.Strings(codes)

	model := tui.NewDashboardModel(env.engine, codes, resolveRegion(cmd, env.cfg), score)
	p := tea.NewProgram(model, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run dashboard: %w", err)
	}
	return nil
}
