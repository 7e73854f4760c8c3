package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/carbonfocus/carbonfocus/internal/config"
	"github.com/carbonfocus/carbonfocus/internal/engine"
	"github.com/carbonfocus/carbonfocus/internal/history"
	"github.com/carbonfocus/carbonfocus/internal/region"
)

// environment bundles the collaborators a command execution needs.
type environment struct {
	cfg    *config.Config
	engine *engine.Engine
}

// loadEnvironment loads config and the region registry (falling back to the
// built-in packs) and builds the calculation engine on top.
func loadEnvironment(ctx context.Context) environment {
	cfg := config.Load(ctx)
	registry := region.Load(ctx, config.RegionsPath())
	return environment{cfg: cfg, engine: engine.New(registry)}
}

// resolveRegion picks the region code: --region flag, then config default.
func resolveRegion(cmd *cobra.Command, cfg *config.Config) string {
	if flag, _ := cmd.Flags().GetString("region"); flag != "" {
		return flag
	}
	return cfg.DefaultRegion
}

// resolveOutput picks the output format: --output flag, then config, then
// table. Unknown values fall back to table.
func resolveOutput(cmd *cobra.Command, cfg *config.Config) string {
	format, _ := cmd.Flags().GetString("output")
	if format == "" {
		format = cfg.Output
	}
	if format != "json" {
		format = "table"
	}
	return format
}

// openHistory opens the history store at the configured path.
func openHistory() (*history.Store, error) {
	return history.Open(config.HistoryPath())
}

// readingsParams holds the shared activity-input flags.
type readingsParams struct {
	set   []string
	input string
}

// registerReadingsFlags adds the --set and --input flags used by every
// command that accepts activity readings.
func registerReadingsFlags(cmd *cobra.Command, params *readingsParams) {
	cmd.Flags().StringArrayVar(&params.set, "set", nil,
		"Activity reading as key=value (repeatable, e.g. --set electricity_kwh=10)")
	cmd.Flags().StringVar(&params.input, "input", "",
		"Path to a JSON object of activity readings ('-' for stdin)")
}

// parseReadings merges --input JSON and --set pairs into a raw reading map.
// --set entries override file values for the same key. Keys are left
// unnormalized; the engine's sanitizer owns that.
func parseReadings(cmd *cobra.Command, params readingsParams) (map[string]any, error) {
	raw := map[string]any{}

	if params.input != "" {
		data, err := readInput(cmd.InOrStdin(), params.input)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse readings JSON: %w", err)
		}
	}

	for _, pair := range params.set {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: expected key=value", pair)
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", pair, err)
		}
		raw[strings.TrimSpace(key)] = parsed
	}

	return raw, nil
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read readings file: %w", err)
	}
	return data, nil
}

// warnInvalidFields prints a notice for readings that could not be coerced.
func warnInvalidFields(cmd *cobra.Command, raw map[string]any) {
	if invalid := engine.InvalidFields(raw); len(invalid) > 0 {
		cmd.PrintErrf("Warning: ignoring non-numeric fields: %s\n", strings.Join(invalid, ", "))
	}
}

// renderJSON writes v as indented JSON, the shared --output json path.
func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
