package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/carbonfocus/carbonfocus/internal/engine"
	"github.com/carbonfocus/carbonfocus/internal/equiv"
	"github.com/carbonfocus/carbonfocus/internal/logging"
)

// calcParams holds the parameters for the calc command execution.
type calcParams struct {
	readings  readingsParams
	renewable float64
	noAdjust  bool
}

// calcResult is the JSON shape of a calculation.
type calcResult struct {
	TotalKg       float64                     `json:"total_kg"`
	Breakdown     map[string]float64          `json:"breakdown"`
	Categories    map[engine.Category]float64 `json:"categories"`
	Meta          map[string]string           `json:"meta"`
	Equivalencies *equiv.Output               `json:"equivalencies,omitempty"`
}

// NewCalcCmd creates the "calc" command for one-off footprint calculations.
//
// Readings come from repeatable --set key=value pairs, a JSON file via
// --input, or both (--set wins per key). Unknown keys are accepted and
// contribute nothing; non-numeric values are reported and skipped.
func NewCalcCmd() *cobra.Command {
	var params calcParams

	cmd := &cobra.Command{
		Use:     "calc",
		Short:   "Calculate a household CO₂ footprint from activity readings",
		Example: calcExample,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return executeCalc(cmd, params)
		},
	}

	registerReadingsFlags(cmd, &params.readings)
	cmd.Flags().Float64Var(&params.renewable, "renewable", -1,
		"Renewable share adjustment 0..1 (default from config)")
	cmd.Flags().BoolVar(&params.noAdjust, "no-adjust", false,
		"Disable the renewable share adjustment")

	return cmd
}

const calcExample = `  # Flags only
  carbonfocus calc --set electricity_kwh=10 --set bus_km=5 --set meat_kg=0.2

  # From a JSON file, for France's grid
  carbonfocus calc --input today.json --region FR

  # With 50% self-generated renewables
  carbonfocus calc --set electricity_kwh=12 --renewable 0.5

  # Machine-readable
  carbonfocus calc --set electricity_kwh=10 --output json`

func executeCalc(cmd *cobra.Command, params calcParams) error {
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

	opts := calcOptions(cmd, env, params)

	log := logging.FromContext(ctx)
	log.Debug().Str("region", opts.RegionCode).
		Float64("renewable_adjust", opts.RenewableAdjust).
		Int("readings", len(readings)).
		Msg("calculating footprint")

	result := calcResult{
		TotalKg:    env.engine.Total(readings, opts),
		Breakdown:  env.engine.Breakdown(readings, opts),
		Categories: engine.CategoryTotals(readings),
		Meta:       env.engine.Meta(opts.RegionCode),
	}
	if eq, err := equiv.Calculate(result.TotalKg); err == nil && !eq.IsEmpty {
		result.Equivalencies = &eq
	}

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), result)
	}
	renderCalcTable(cmd, result)
	return nil
}

// calcOptions merges flags and config into the engine options.
func calcOptions(cmd *cobra.Command, env environment, params calcParams) engine.CalcOptions {
	opts := engine.CalcOptions{
		RegionCode:      resolveRegion(cmd, env.cfg),
		RenewableAdjust: env.cfg.RenewableShare,
	}
	if params.renewable >= 0 {
		opts.RenewableAdjust = params.renewable
	}
	if params.noAdjust {
		opts.RenewableAdjust = 0
	}
	return opts
}

func renderCalcTable(cmd *cobra.Command, result calcResult) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, headerStyle.Render("Footprint"))
	fmt.Fprintf(out, "  Total: %s\n", formatKg(result.TotalKg))
	if source := result.Meta["source"]; source != "" {
		fmt.Fprintf(out, "  %s\n", labelStyle.Render(
			fmt.Sprintf("Factors: %s (%s, version %s)",
				source, result.Meta["region_code"], result.Meta["version"])))
	}

	if len(result.Breakdown) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render("Breakdown"))
		table := newTable(out)
		for _, key := range sortedKeys(result.Breakdown) {
			fmt.Fprintf(table, "  %s\t%.4f kg\n", key, result.Breakdown[key])
		}
		_ = table.Flush()
	}

	if len(result.Categories) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render("By category"))
		table := newTable(out)
		for _, cat := range engine.Categories() {
			if total, ok := result.Categories[cat]; ok {
				fmt.Fprintf(table, "  %s\t%.2f kg\n", cat, total)
			}
		}
		_ = table.Flush()
	}

	if result.Equivalencies != nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, goodStyle.Render(result.Equivalencies.DisplayText))
	}
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
