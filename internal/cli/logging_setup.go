package cli

import (
	"github.com/spf13/cobra"

	"github.com/carbonfocus/carbonfocus/internal/config"
	"github.com/carbonfocus/carbonfocus/internal/logging"
)

// setupLogging builds the CLI logger from config and the --debug flag and
// attaches it to the command context so downstream code can use
// logging.FromContext.
func setupLogging(cmd *cobra.Command) {
	ctx := cmd.Context()
	cfg := config.Load(ctx)

	level := cfg.LogLevel
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}

	logger := config.NewLogger(cmd.ErrOrStderr(), level)
	ctx = logging.WithContext(ctx, logger)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("command started")
}
