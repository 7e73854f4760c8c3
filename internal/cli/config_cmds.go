package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carbonfocus/carbonfocus/internal/config"
)

// NewConfigInitCmd creates the "config init" command writing a default
// config file under the carbonfocus home directory.
func NewConfigInitCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Write a default configuration file",
		Example: configInitExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeConfigInit(cmd, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing configuration file")
	return cmd
}

const configInitExample = `  carbonfocus config init

  # Replace an existing file
  carbonfocus config init --force`

func executeConfigInit(cmd *cobra.Command, force bool) error {
	path := config.Path()
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
	}

	if err := config.New().Save(); err != nil {
		return err
	}
	cmd.Printf("Wrote default configuration to %s\n", path)
	return nil
}

// NewConfigShowCmd creates the "config show" command printing the effective
// configuration after env overrides.
func NewConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE:  executeConfigShow,
	}
}

func executeConfigShow(cmd *cobra.Command, _ []string) error {
	cfg := config.Load(cmd.Context())

	if resolveOutput(cmd, cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), map[string]any{
			"default_region":         cfg.DefaultRegion,
			"renewable_share":        cfg.RenewableShare,
			"weekly_goal_kg":         cfg.WeeklyGoalKg,
			"offset_price_per_tonne": cfg.OffsetPricePerTonne,
			"output":                 cfg.Output,
			"log_level":              cfg.LogLevel,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("Configuration"))
	table := newTable(out)
	fmt.Fprintf(table, "  default_region\t%s\n", regionLabel(cfg.DefaultRegion))
	fmt.Fprintf(table, "  renewable_share\t%.2f\n", cfg.RenewableShare)
	fmt.Fprintf(table, "  weekly_goal_kg\t%.1f\n", cfg.WeeklyGoalKg)
	fmt.Fprintf(table, "  offset_price_per_tonne\t%.1f\n", cfg.OffsetPricePerTonne)
	fmt.Fprintf(table, "  output\t%s\n", cfg.Output)
	fmt.Fprintf(table, "  log_level\t%s\n", cfg.LogLevel)
	if err := table.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n  %s\n", labelStyle.Render(fmt.Sprintf("File: %s", config.Path())))
	return nil
}
