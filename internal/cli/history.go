package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/carbonfocus/carbonfocus/internal/engine"
	"github.com/carbonfocus/carbonfocus/internal/history"
	"github.com/carbonfocus/carbonfocus/internal/logging"
)

// historyLogParams holds the parameters for "history log".
type historyLogParams struct {
	readings readingsParams
	date     string
}

// NewHistoryLogCmd creates the "history log" command upserting one day's
// readings. Re-logging a date replaces that day's entry.
func NewHistoryLogCmd() *cobra.Command {
	var params historyLogParams

	cmd := &cobra.Command{
		Use:     "log",
		Short:   "Log (or replace) a day's activity readings",
		Example: historyLogExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeHistoryLog(cmd, params)
		},
	}

	registerReadingsFlags(cmd, &params.readings)
	cmd.Flags().StringVar(&params.date, "date", "",
		"Entry date as YYYY-MM-DD (default today)")

	return cmd
}

const historyLogExample = `  # Log today
  carbonfocus history log --set electricity_kwh=10 --set bus_km=5

  # Backfill a date from a JSON file
  carbonfocus history log --input monday.json --date 2026-08-24`

func executeHistoryLog(cmd *cobra.Command, params historyLogParams) error {
	ctx := cmd.Context()
	env := loadEnvironment(ctx)

	raw, err := parseReadings(cmd, params.readings)
	if err != nil {
		return err
	}
	if !engine.HasMeaningfulInput(raw) {
		return fmt.Errorf("no activity readings supplied (use --set or --input)")
	}
	warnInvalidFields(cmd, raw)
	readings := engine.Sanitize(raw)

	date, err := entryDate(params.date)
	if err != nil {
		return err
	}

	total := env.engine.Total(readings, engine.CalcOptions{
		RegionCode:      resolveRegion(cmd, env.cfg),
		RenewableAdjust: env.cfg.RenewableShare,
	})

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	entry, err := store.Save(ctx, date, readings, total)
	if err != nil {
		return err
	}

	log := logging.FromContext(ctx)
	log.Info().Str("date", entry.Date).Float64("total_kg", entry.TotalKg).Msg("entry logged")

	badges, err := store.Badges(ctx, date, entry.TotalKg)
	if err != nil {
		return err
	}

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), map[string]any{
			"entry": entry, "badges": badges,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Logged %s: %s\n", entry.Date, formatKg(entry.TotalKg))
	for _, badge := range badges {
		fmt.Fprintf(out, "  %s\n", goodStyle.Render("★ "+badge))
	}
	return nil
}

// entryDate parses --date, defaulting to today.
func entryDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	date, err := time.Parse(history.DateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", value)
	}
	return date, nil
}

// historyShowParams holds the parameters for "history show".
type historyShowParams struct {
	days int
}

// NewHistoryShowCmd creates the "history show" command listing recent
// entries.
func NewHistoryShowCmd() *cobra.Command {
	var params historyShowParams

	cmd := &cobra.Command{
		Use:     "show",
		Short:   "Show recent logged entries",
		Example: historyShowExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeHistoryShow(cmd, params)
		},
	}

	cmd.Flags().IntVar(&params.days, "days", 7, "Days to look back")
	return cmd
}

const historyShowExample = `  # The last week
  carbonfocus history show

  # The last month, as JSON
  carbonfocus history show --days 30 --output json`

func executeHistoryShow(cmd *cobra.Command, params historyShowParams) error {
	ctx := cmd.Context()
	env := loadEnvironment(ctx)

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if params.days < 1 {
		params.days = 1
	}
	now := time.Now()
	entries, err := store.Range(ctx, now.AddDate(0, 0, -(params.days-1)), now)
	if err != nil {
		return err
	}

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), entries)
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No entries logged in this window.")
		return nil
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Last %d day(s)", params.days)))
	table := newTable(out)
	week := 0.0
	for _, entry := range entries {
		fmt.Fprintf(table, "  %s\t%.2f kg\t%d reading(s)\n",
			entry.Date, entry.TotalKg, len(entry.Readings))
		week += entry.TotalKg
	}
	if err := table.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "\n  Window total: %s\n", formatKg(week))
	return nil
}

// historyExportParams holds the parameters for "history export".
type historyExportParams struct {
	out string
}

// NewHistoryExportCmd creates the "history export" command writing the full
// history as CSV.
func NewHistoryExportCmd() *cobra.Command {
	var params historyExportParams

	cmd := &cobra.Command{
		Use:     "export",
		Short:   "Export all entries as CSV",
		Example: historyExportExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeHistoryExport(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.out, "out", "", "Destination file (default stdout)")
	return cmd
}

const historyExportExample = `  # To stdout
  carbonfocus history export

  # To a file
  carbonfocus history export --out history.csv`

func executeHistoryExport(cmd *cobra.Command, params historyExportParams) error {
	ctx := cmd.Context()

	store, err := openHistory()
	if err != nil {
		return err
	}
	defer store.Close()

	if params.out == "" {
		return store.ExportCSV(ctx, cmd.OutOrStdout())
	}

	file, err := os.Create(params.out)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer file.Close()

	if err := store.ExportCSV(ctx, file); err != nil {
		return err
	}
	cmd.Printf("Exported history to %s\n", params.out)
	return nil
}
