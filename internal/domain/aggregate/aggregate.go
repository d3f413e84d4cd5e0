// Package aggregate turns raw per-hand simulation results into strategy
// summaries.
package aggregate

import (
	"context"
	"fmt"

	"github.com/okian/blackjack/internal/domain/simulation"
	"github.com/okian/blackjack/internal/domain/strategy"
)

// Default aggregation configuration constants.
const (
	DefaultUnitBet         = 10.0
	DefaultBankrollSamples = 500
	ctxCheckEvery          = 8192
)

// Aggregator computes summaries. It holds no mutable state and is safe for
// concurrent use.
type Aggregator struct {
	unitBet float64
	samples int
	catalog *strategy.Catalog
}

// New creates an aggregator with configuration options.
func New(opts ...Option) *Aggregator {
	a := &Aggregator{
		unitBet: DefaultUnitBet,
		samples: DefaultBankrollSamples,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.catalog == nil {
		a.catalog = strategy.DefaultCatalog()
	}
	return a
}

// UnitBet is the wager assumed for hands that carry no bet.
func (a *Aggregator) UnitBet() float64 { return a.unitBet }

// Aggregate summarizes the hands of one strategy. It fails with ErrEmptyInput
// when there are no hands and with a *simulation.MalformedRecordError when
// any hand is invalid; no partial summary is ever returned.
func (a *Aggregator) Aggregate(ctx context.Context, key string, hands []simulation.HandRecord) (strategy.Summary, error) {
	if err := strategy.ValidateKey(key); err != nil {
		return strategy.Summary{}, fmt.Errorf("aggregate: %w", err)
	}
	if len(hands) == 0 {
		return strategy.Summary{}, fmt.Errorf("aggregate %s: %w", key, ErrEmptyInput)
	}

	nets := make([]float64, len(hands))
	var wagered float64
	for i, h := range hands {
		if i%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return strategy.Summary{}, fmt.Errorf("aggregate %s: %w", key, err)
			}
		}
		if err := h.Validate(i); err != nil {
			return strategy.Summary{}, fmt.Errorf("aggregate %s: %w", key, err)
		}
		nets[i] = h.Net
		if h.Bet > 0 {
			wagered += h.Bet
		} else {
			wagered += a.unitBet
		}
	}

	total := sum(nets)
	mean := total / float64(len(nets))
	info := a.catalog.Lookup(key)

	return strategy.Summary{
		Key:                  key,
		Name:                 info.Name,
		Description:          info.Description,
		Simulations:          len(nets),
		TotalWinnings:        total,
		TotalWagered:         wagered,
		UnitBet:              a.unitBet,
		AvgNetPerHand:        mean,
		ROI:                  total / wagered * 100,
		StdDeviation:         populationStdDev(nets, mean),
		WinRate:              winRate(nets),
		WinningsDistribution: distribution(nets),
		BankrollHistory:      bankrollHistory(nets, a.samples),
	}, nil
}

// AggregateNets is a convenience for callers that only have net results;
// every hand is assumed to wager the unit bet.
func (a *Aggregator) AggregateNets(ctx context.Context, key string, nets []float64) (strategy.Summary, error) {
	hands := make([]simulation.HandRecord, len(nets))
	for i, n := range nets {
		hands[i] = simulation.HandRecord{Net: n}
	}
	return a.Aggregate(ctx, key, hands)
}
