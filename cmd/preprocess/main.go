package main

import (
	"context"
	"flag"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/okian/blackjack/internal/preprocess"
)

// Default configuration constants.
const (
	defaultRunTimeout = 30 * time.Minute
)

// Exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	defaults := preprocess.DefaultConfig()

	fs := flag.NewFlagSet("preprocess", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		results    = fs.String("results", defaults.ResultsDir, "Directory holding simulation results")
		out        = fs.String("out", defaults.OutDir, "Directory to write summaries to")
		strategies = fs.String("strategies", "", "Comma-separated strategy keys to process (default: every result file)")
		unitBet    = fs.Float64("unit-bet", defaults.UnitBet, "Stake assumed for hands without a recorded bet")
		samples    = fs.Int("samples", defaults.Samples, "Bankroll history points kept per strategy")
		workers    = fs.Int("workers", defaults.Workers, "Strategies aggregated at once")
		logLevel   = fs.String("log-level", "info", "debug, info, warn or error")
		logFormat  = fs.String("log-format", "text", "text or json")
		help       = fs.Bool("help", false, "Show help")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *help {
		preprocess.ShowHelp(stdout)
		return exitOK
	}

	if err := preprocess.SetupLogging(*logLevel, *logFormat); err != nil {
		_, _ = io.WriteString(stderr, "Failed to setup logging: "+err.Error()+"\n")
		return exitUsage
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, defaultRunTimeout)
	defer cancel()

	cfg := preprocess.Config{
		ResultsDir: *results,
		OutDir:     *out,
		UnitBet:    *unitBet,
		Samples:    *samples,
		Workers:    *workers,
		Strategies: splitKeys(*strategies),
	}

	if _, err := preprocess.Run(ctx, cfg); err != nil {
		_, _ = io.WriteString(stderr, "Preprocessing failed: "+err.Error()+"\n")
		return exitFailed
	}
	return exitOK
}

func splitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
