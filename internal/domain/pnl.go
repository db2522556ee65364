package domain

import "github.com/shopspring/decimal"

// Leg is one side of the hedge: the contracted rate and the notional amount.
type Leg struct {
	FixedRate decimal.Decimal `yaml:"fixed_rate" json:"fixed_rate"`
	Amount    decimal.Decimal `yaml:"amount" json:"amount"`
}

// HedgeConfig is the fixed position the dashboard values.
type HedgeConfig struct {
	USDAED Leg `yaml:"usdaed" json:"usdaed"`
	USDSAR Leg `yaml:"usdsar" json:"usdsar"`
}

// DefaultHedge is the contracted position used when the config omits one.
func DefaultHedge() HedgeConfig {
	return HedgeConfig{
		USDAED: Leg{FixedRate: decimal.RequireFromString("3.6720"), Amount: decimal.NewFromInt(10_000_000)},
		USDSAR: Leg{FixedRate: decimal.RequireFromString("3.7560"), Amount: decimal.NewFromInt(10_000_000)},
	}
}

// PLResult is the per-leg and total profit/loss in USD.
type PLResult struct {
	PerLegAED float64 `json:"per_leg_aed"`
	PerLegSAR float64 `json:"per_leg_sar"`
	Total     float64 `json:"total"`
}

// CalculatePL values the hedge at the given rates.
//
//	legAED = (current - contracted) * notional / current
//	legSAR = (contracted - current) * notional / current
//
// The legs carry opposite exposures, so the signs are not symmetric.
// Rates must be valid (see RatePair.Validate).
func CalculatePL(rates RatePair, cfg HedgeConfig) PLResult {
	aed := decimal.NewFromFloat(rates.USDAED)
	sar := decimal.NewFromFloat(rates.USDSAR)

	legAED := aed.Sub(cfg.USDAED.FixedRate).Mul(cfg.USDAED.Amount).Div(aed)
	legSAR := cfg.USDSAR.FixedRate.Sub(sar).Mul(cfg.USDSAR.Amount).Div(sar)
	total := legAED.Add(legSAR)

	return PLResult{
		PerLegAED: legAED.InexactFloat64(),
		PerLegSAR: legSAR.InexactFloat64(),
		Total:     total.InexactFloat64(),
	}
}

// Positive reports whether the value renders with the positive style.
func Positive(v float64) bool {
	return v >= 0
}
