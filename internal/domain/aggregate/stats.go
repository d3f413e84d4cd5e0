package aggregate

import (
	"math"

	"github.com/okian/blackjack/internal/domain/strategy"
)

// Net boundary between small and big swings, in currency units.
const bigSwing = 20.0

// Bucket names, matching what the frontend charts.
const (
	bucketBigLoss   = "Big Loss (<-$20)"
	bucketSmallLoss = "Small Loss (-$20 to $0)"
	bucketSmallWin  = "Small Win ($0 to $20)"
	bucketBigWin    = "Big Win (>$20)"
)

func sum(values []float64) float64 {
	var s float64
	for _, v := range values {
		s += v
	}
	return s
}

// populationStdDev divides by n. Identical values short-circuit to exactly 0
// so rounding in the mean cannot produce a tiny positive deviation.
func populationStdDev(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	first := values[0]
	identical := true
	var sq float64
	for _, v := range values {
		if v != first {
			identical = false
		}
		d := v - mean
		sq += d * d
	}
	if identical {
		return 0
	}
	return math.Sqrt(sq / float64(len(values)))
}

func winRate(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	wins := 0
	for _, v := range values {
		if v > 0 {
			wins++
		}
	}
	return float64(wins) / float64(len(values))
}

// distribution counts hands per swing bucket. A net of exactly +20 lands in
// both win buckets.
func distribution(values []float64) []strategy.DistributionBucket {
	var bigLoss, smallLoss, smallWin, bigWin int
	for _, v := range values {
		switch {
		case v <= -bigSwing:
			bigLoss++
		case v <= 0:
			smallLoss++
		case v <= bigSwing:
			smallWin++
		}
		if v >= bigSwing {
			bigWin++
		}
	}
	return []strategy.DistributionBucket{
		{Name: bucketBigLoss, Value: bigLoss},
		{Name: bucketSmallLoss, Value: smallLoss},
		{Name: bucketSmallWin, Value: smallWin},
		{Name: bucketBigWin, Value: bigWin},
	}
}

// bankrollHistory samples the running total at up to limit evenly spaced
// hands, always including the first and last.
func bankrollHistory(values []float64, limit int) []strategy.BankrollPoint {
	n := len(values)
	if n == 0 || limit <= 0 {
		return nil
	}
	cumulative := make([]float64, n)
	var running float64
	for i, v := range values {
		running += v
		cumulative[i] = running
	}

	return sampleBankroll(cumulative, sampleIndices(n, min(limit, n)))
}

func sampleBankroll(cumulative []float64, indices []int) []strategy.BankrollPoint {
	out := make([]strategy.BankrollPoint, len(indices))
	for i, idx := range indices {
		out[i] = strategy.BankrollPoint{Hand: idx, Bankroll: cumulative[idx]}
	}
	return out
}

// sampleIndices spreads k indices over [0, n-1], truncating toward zero.
func sampleIndices(n, k int) []int {
	if k <= 1 {
		return []int{0}
	}
	step := float64(n-1) / float64(k-1)
	out := make([]int, k)
	for i := range out {
		out[i] = int(float64(i) * step)
	}
	out[k-1] = n - 1
	return out
}
