package domain

import "fmt"

// Offsets into a most-recent-first daily series.
// Index 0 is assumed to be today, so "yesterday" is 1 and
// "one month" is 21 trading entries back.
const (
	YesterdayOffset = 1
	MonthOffset     = 21
	HistoryDays     = 45
)

// HistoricalSeries is the daily closing prices for both crosses, most recent first.
type HistoricalSeries struct {
	USDAED []float64
	USDSAR []float64
}

// HistoricalSnapshot compares the hedge against past closes.
type HistoricalSnapshot struct {
	YesterdayPL PLResult `json:"yesterday_pl"`
	MonthPL     PLResult `json:"month_pl"`
}

// clampIndex returns min(offset, lastIndex) for a series of length n.
func clampIndex(offset, n int) int {
	last := n - 1
	if offset > last {
		return last
	}
	return offset
}

// RatesAt picks the pair at the clamped offset of each series.
func (s HistoricalSeries) RatesAt(offset int) (RatePair, error) {
	if len(s.USDAED) == 0 || len(s.USDSAR) == 0 {
		return RatePair{}, fmt.Errorf("%w: aed=%d sar=%d entries", ErrMissingHistory, len(s.USDAED), len(s.USDSAR))
	}
	pair := RatePair{
		USDAED: s.USDAED[clampIndex(offset, len(s.USDAED))],
		USDSAR: s.USDSAR[clampIndex(offset, len(s.USDSAR))],
	}
	if err := pair.Validate(); err != nil {
		return RatePair{}, err
	}
	return pair, nil
}

// DeriveSnapshot values the hedge at yesterday's and last month's closes.
func DeriveSnapshot(s HistoricalSeries, cfg HedgeConfig) (HistoricalSnapshot, error) {
	yesterday, err := s.RatesAt(YesterdayOffset)
	if err != nil {
		return HistoricalSnapshot{}, err
	}
	month, err := s.RatesAt(MonthOffset)
	if err != nil {
		return HistoricalSnapshot{}, err
	}
	return HistoricalSnapshot{
		YesterdayPL: CalculatePL(yesterday, cfg),
		MonthPL:     CalculatePL(month, cfg),
	}, nil
}
