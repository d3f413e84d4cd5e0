// Package preprocess turns raw simulation results into the summary files the
// API serves.
package preprocess

import (
	"fmt"
	"time"

	"github.com/okian/blackjack/internal/domain/aggregate"
	"github.com/okian/blackjack/internal/domain/strategy"
)

// Config holds configuration for a preprocessing run.
type Config struct {
	ResultsDir string   // Directory holding {key}_results.json files
	OutDir     string   // Directory the {key}_summary.json files go to
	UnitBet    float64  // Stake assumed for hands without a recorded bet
	Samples    int      // Bankroll history points kept per strategy
	Workers    int      // Strategies aggregated at once
	Strategies []string // Optional subset of keys; empty means every result file
}

// DefaultConfig returns the defaults used by the preprocess command.
func DefaultConfig() Config {
	return Config{
		ResultsDir: "simulation_results",
		OutDir:     "processed_data",
		UnitBet:    aggregate.DefaultUnitBet,
		Samples:    aggregate.DefaultBankrollSamples,
		Workers:    defaultWorkers,
	}
}

// Validate checks the run configuration.
func (c Config) Validate() error {
	switch {
	case c.ResultsDir == "":
		return fmt.Errorf("%w: results dir must not be empty", ErrInvalidConfig)
	case c.OutDir == "":
		return fmt.Errorf("%w: output dir must not be empty", ErrInvalidConfig)
	case c.UnitBet <= 0:
		return fmt.Errorf("%w: unit bet must be positive", ErrInvalidConfig)
	case c.Samples < 1:
		return fmt.Errorf("%w: samples must be at least 1", ErrInvalidConfig)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be at least 1", ErrInvalidConfig)
	}
	for _, key := range c.Strategies {
		if err := strategy.ValidateKey(key); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

// Outcome is what happened to one strategy.
type Outcome struct {
	Key   string
	Hands int
	Took  time.Duration
	Err   error
}

// Report summarizes a run.
type Report struct {
	RunID     string
	Outcomes  []Outcome
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Written returns the number of strategies whose summary was saved.
func (r *Report) Written() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the outcomes that carry an error.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Err != nil {
			out = append(out, o)
		}
	}
	return out
}
