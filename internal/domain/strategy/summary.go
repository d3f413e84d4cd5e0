// Package strategy contains the strategy summary served by the API and the
// conventions that identify a strategy.
package strategy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Summary is the aggregated statistical record for one strategy.
//
// ROI is the total net result as a percentage of the total amount wagered;
// hands without a recorded bet count as UnitBet. StdDeviation is the
// population standard deviation of per-hand nets. WinRate is a fraction in
// [0,1].
type Summary struct {
	Key                  string              `json:"key"`
	Name                 string              `json:"name"`
	Description          string              `json:"description"`
	Simulations          int                 `json:"simulations"`
	TotalWinnings        float64             `json:"totalWinnings"`
	TotalWagered         float64             `json:"totalWagered"`
	UnitBet              float64             `json:"unitBet"`
	AvgNetPerHand        float64             `json:"avgNetPerHand"`
	ROI                  float64             `json:"roi"`
	StdDeviation         float64             `json:"stdDeviation"`
	WinRate              float64             `json:"winRate"`
	WinningsDistribution []DistributionBucket `json:"winningsDistribution"`
	BankrollHistory      []BankrollPoint      `json:"bankrollHistory"`
}

// DistributionBucket counts hands whose net fell in a named range.
type DistributionBucket struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// BankrollPoint is the cumulative net after Hand (0-based).
type BankrollPoint struct {
	Hand     int     `json:"hand"`
	Bankroll float64 `json:"bankroll"`
}

// Validate checks the invariants every stored summary must hold.
func (s Summary) Validate() error {
	switch {
	case s.Key == "":
		return fmt.Errorf("%w: empty key", ErrInvalidSummary)
	case s.Simulations <= 0:
		return fmt.Errorf("%w: %s: simulations must be positive", ErrInvalidSummary, s.Key)
	case math.IsNaN(s.WinRate) || s.WinRate < 0 || s.WinRate > 1:
		return fmt.Errorf("%w: %s: winRate %v outside [0,1]", ErrInvalidSummary, s.Key, s.WinRate)
	case math.IsNaN(s.StdDeviation) || s.StdDeviation < 0:
		return fmt.Errorf("%w: %s: negative stdDeviation", ErrInvalidSummary, s.Key)
	case math.IsNaN(s.AvgNetPerHand) || math.IsInf(s.AvgNetPerHand, 0):
		return fmt.Errorf("%w: %s: avgNetPerHand not finite", ErrInvalidSummary, s.Key)
	case math.IsNaN(s.ROI) || math.IsInf(s.ROI, 0):
		return fmt.Errorf("%w: %s: roi not finite", ErrInvalidSummary, s.Key)
	}
	return nil
}

// Keyed pairs a summary with its key for ordered listings.
type Keyed struct {
	Key     string
	Summary Summary
}

// Ordered is a list of summaries that encodes as a JSON object whose keys
// keep the list order.
type Ordered []Keyed

// MarshalJSON writes {"key": summary, ...} in slice order.
func (o Ordered) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(k.Summary)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
