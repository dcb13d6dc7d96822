package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexzk1/ed-fc-companion/internal/config"
	"github.com/alexzk1/ed-fc-companion/internal/logging"
)

// setupLogging configures console logging for a command run and stores the
// logger and a trace id in the command context.
func setupLogging(cmd *cobra.Command, level string) {
	if err := config.InitLoggerTo(level, "", cmd.ErrOrStderr()); err != nil {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: could not set up logging: %v\n", err)
	}
	logger = logging.ComponentLogger(config.GetLogger(), "cli")

	ctx := cmd.Context()
	traceID := logging.GetOrGenerateTraceID(ctx)
	ctx = logging.ContextWithTraceID(ctx, traceID)
	ctx = logger.WithContext(ctx)
	cmd.SetContext(ctx)

	logger.Debug().Ctx(ctx).Str("command", cmd.Name()).Str("trace_id", traceID).Msg("command started")
}

// switchToFileLogging sends log output to the configured log file only.
// The interactive view owns the terminal, so nothing may reach stderr.
func switchToFileLogging(cmd *cobra.Command, level string) error {
	if err := config.EnsureLogDir(); err != nil {
		return err
	}
	if err := config.InitLoggerTo(level, config.GetLogFile(), nil); err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	logger = logging.ComponentLogger(config.GetLogger(), "cli")
	cmd.SetContext(logger.WithContext(cmd.Context()))
	return nil
}

// cleanupLogging closes the log file handle, if any.
func cleanupLogging() {
	config.CloseLogFile()
}
