package aggregate

import "github.com/okian/blackjack/internal/domain/strategy"

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithUnitBet sets the wager assumed for hands without a recorded bet.
func WithUnitBet(bet float64) Option {
	return func(a *Aggregator) {
		if bet > 0 {
			a.unitBet = bet
		}
	}
}

// WithBankrollSamples caps the number of points in the bankroll history.
func WithBankrollSamples(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.samples = n
		}
	}
}

// WithCatalog sets the catalog used for display names.
func WithCatalog(c *strategy.Catalog) Option {
	return func(a *Aggregator) {
		if c != nil {
			a.catalog = c
		}
	}
}
