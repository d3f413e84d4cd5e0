package preprocess

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/blackjack/pkg/logger"
)

// SetupLogging initializes the global logger for the command. Logs go to
// stderr so stdout stays free for the help text.
func SetupLogging(level, format string) error {
	if err := logger.Init(logger.WithFormat(format), logger.WithWriter(os.Stderr)); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	if err := logger.SetLevelString(level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return nil
}

// ShowHelp prints usage information for the preprocess command.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `Blackjack Strategy Preprocessor
===============================

Reads raw simulation results ({key}_results.json, with underscores in the
file name standing for dashes in the key) and writes one summary per
strategy ({key}_summary.json) for the API to serve.

Usage:
  go run ./cmd/preprocess [options]

Options:
  -results string
        Directory holding simulation results (default "simulation_results")
  -out string
        Directory to write summaries to (default "processed_data")
  -strategies string
        Comma-separated strategy keys to process (default: every result file)
  -unit-bet float
        Stake assumed for hands without a recorded bet (default 10)
  -samples int
        Bankroll history points kept per strategy (default 500)
  -workers int
        Strategies aggregated at once (default 4)
  -log-level string
        debug, info, warn or error (default "info")
  -log-format string
        text or json (default "text")
  -help
        Show this help message

Examples:
  # Process every result file with default settings
  go run ./cmd/preprocess

  # Process two strategies into a custom directory
  go run ./cmd/preprocess -strategies basic,card-counter -out /srv/summaries
`)
}
