package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/carbonfocus/carbonfocus/internal/engine"
	"github.com/carbonfocus/carbonfocus/internal/logging"
)

// regionSummary is one row of the regions listing.
type regionSummary struct {
	Code             string  `json:"code"`
	Source           string  `json:"source"`
	Version          string  `json:"version"`
	ImpliedIntensity float64 `json:"implied_intensity"`
	Sources          int     `json:"sources"`
}

// NewRegionsListCmd creates the "regions list" command summarizing every
// loaded region pack. Implied intensities are computed concurrently, one
// goroutine per region.
func NewRegionsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List loaded region packs with their implied intensity",
		Example: regionsListExample,
		RunE:    executeRegionsList,
	}
	return cmd
}

const regionsListExample = `  # Built-in and user-loaded packs
  carbonfocus regions list

  # Machine-readable
  carbonfocus regions list --output json`

func executeRegionsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	env := loadEnvironment(ctx)

	codes := env.engine.Regions().Current().Codes()
	sort.Strings(codes)

	log := logging.FromContext(ctx)
	log.Debug().Int("regions", len(codes)).Msg("summarizing region packs")

	summaries := make([]regionSummary, len(codes))
	var group errgroup.Group
	for i, code := range codes {
		group.Go(func() error {
			mix := env.engine.GridMix(code)
			meta := env.engine.Meta(code)
			summaries[i] = regionSummary{
				Code:             code,
				Source:           meta["source"],
				Version:          meta["version"],
				ImpliedIntensity: engine.ImpliedIntensity(mix),
				Sources:          len(mix),
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), summaries)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render("Region packs"))
	table := newTable(out)
	fmt.Fprintf(table, "  CODE\tIMPLIED\tSOURCES\tPROVENANCE\n")
	for _, s := range summaries {
		fmt.Fprintf(table, "  %s\t%.3f kg/kWh\t%d\t%s (v%s)\n",
			s.Code, s.ImpliedIntensity, s.Sources, s.Source, s.Version)
	}
	return table.Flush()
}

// NewRegionsShowCmd creates the "regions show" command dumping one pack in
// detail: factor overrides, grid mix with per-source intensities, and
// provenance.
func NewRegionsShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show <code>",
		Short:   "Show one region pack in detail",
		Example: regionsShowExample,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRegionsShow(cmd, args[0])
		},
	}
	return cmd
}

const regionsShowExample = `  # The French pack
  carbonfocus regions show FR

  carbonfocus regions show EU-avg --output json`

// regionDetail is the JSON shape of one pack.
type regionDetail struct {
	Code             string             `json:"code"`
	Meta             map[string]string  `json:"meta"`
	Factors          map[string]float64 `json:"factors,omitempty"`
	GridMix          map[string]float64 `json:"grid_mix,omitempty"`
	ImpliedIntensity float64            `json:"implied_intensity"`
	ElectricityKgKWh float64            `json:"electricity_kg_kwh"`
}

func executeRegionsShow(cmd *cobra.Command, code string) error {
	env := loadEnvironment(cmd.Context())

	pack, ok := env.engine.Regions().Current().Pack(code)
	if !ok {
		return fmt.Errorf("unknown region %q (see 'regions list')", code)
	}

	mix := env.engine.GridMix(code)
	detail := regionDetail{
		Code:             code,
		Meta:             env.engine.Meta(code),
		Factors:          pack.Factors,
		GridMix:          mix,
		ImpliedIntensity: engine.ImpliedIntensity(mix),
		ElectricityKgKWh: env.engine.EffectiveElectricityFactor(code, 0),
	}

	if resolveOutput(cmd, env.cfg) == "json" {
		return renderJSON(cmd.OutOrStdout(), detail)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Region %s", code)))
	fmt.Fprintf(out, "  %s\n", labelStyle.Render(fmt.Sprintf("%s (version %s)",
		detail.Meta["source"], detail.Meta["version"])))
	fmt.Fprintf(out, "  Electricity: %s (implied %.3f)\n",
		formatIntensity(detail.ElectricityKgKWh), detail.ImpliedIntensity)

	if len(detail.Factors) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render("Factor overrides"))
		table := newTable(out)
		for _, key := range sortedKeys(detail.Factors) {
			fmt.Fprintf(table, "  %s\t%.4f\n", key, detail.Factors[key])
		}
		if err := table.Flush(); err != nil {
			return err
		}
	}

	if len(detail.GridMix) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, headerStyle.Render("Grid mix"))
		table := newTable(out)
		for _, source := range sortedKeys(detail.GridMix) {
			line := fmt.Sprintf("  %s\t%.1f%%", source, detail.GridMix[source]*100)
			if intensity, ok := engine.SourceIntensity(source); ok {
				line += fmt.Sprintf("\t%.3f kg/kWh", intensity)
			} else {
				line += "\t(unknown source)"
			}
			fmt.Fprintln(table, line)
		}
		return table.Flush()
	}
	return nil
}
