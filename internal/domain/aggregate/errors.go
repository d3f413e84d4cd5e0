package aggregate

import (
	"errors"

	"github.com/okian/blackjack/internal/domain/simulation"
)

// Sentinel kinds for aggregation errors.
var (
	ErrEmptyInput      = errors.New("no hands to aggregate")
	ErrMalformedRecord = simulation.ErrMalformedRecord
)
