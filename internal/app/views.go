package service

import (
	"github.com/okian/blackjack/internal/domain/strategy"
)

// ComparisonRow is one chart row of the full comparison view. The JSON
// names are the series labels the dashboard plots.
type ComparisonRow struct {
	Name           string  `json:"name"`
	AvgNetWinnings float64 `json:"Avg Net Winnings"`
	ROI            float64 `json:"ROI (%)"`
	Volatility     float64 `json:"Volatility (Std Dev)"`
}

// Comparison is every summary plus the chart rows.
type Comparison struct {
	Strategies     strategy.Ordered `json:"strategies"`
	ComparisonData []ComparisonRow  `json:"comparisonData"`
}

// QuickRow is the light projection used for the first dashboard paint.
type QuickRow struct {
	Key           string  `json:"key"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	AvgNetPerHand float64 `json:"avgNetPerHand"`
	ROI           float64 `json:"roi"`
	StdDeviation  float64 `json:"stdDeviation"`
	WinRate       float64 `json:"winRate"`
	TotalWinnings float64 `json:"totalWinnings"`
}

// QuickComparison holds quick rows only.
type QuickComparison struct {
	ComparisonData []QuickRow `json:"comparisonData"`
}

// Stats describes the loaded registry for monitoring.
type Stats struct {
	Strategies          int      `json:"strategies"`
	Keys                []string `json:"keys"`
	DataDir             string   `json:"dataDir"`
	ComparisonThreshold int      `json:"comparisonThreshold"`
	LoadedAt            string   `json:"loadedAt"`
	LoadDurationMs      float64  `json:"loadDurationMs"`
}

func comparisonRow(s strategy.Summary) ComparisonRow {
	return ComparisonRow{
		Name:           s.Name,
		AvgNetWinnings: s.AvgNetPerHand,
		ROI:            s.ROI,
		Volatility:     s.StdDeviation,
	}
}

func quickRow(s strategy.Summary) QuickRow {
	return QuickRow{
		Key:           s.Key,
		Name:          s.Name,
		Description:   s.Description,
		AvgNetPerHand: s.AvgNetPerHand,
		ROI:           s.ROI,
		StdDeviation:  s.StdDeviation,
		WinRate:       s.WinRate,
		TotalWinnings: s.TotalWinnings,
	}
}
