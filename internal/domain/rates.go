package domain

import (
	"fmt"
	"math"
	"time"
)

// Symbols used by the upstream quote APIs
const (
	SymbolUSDAED = "USD/AED"
	SymbolUSDSAR = "USD/SAR"
)

// RatePair holds the current exchange rate for both hedged crosses.
// It is always replaced as a whole, never updated field by field.
type RatePair struct {
	USDAED float64 `json:"usdaed"`
	USDSAR float64 `json:"usdsar"`
}

// SeedRates seeds the cache at startup until the first successful fetch.
var SeedRates = RatePair{USDAED: 3.6725, USDSAR: 3.7500}

// Validate rejects non-finite or non-positive components.
func (r RatePair) Validate() error {
	if !validRate(r.USDAED) {
		return fmt.Errorf("%w: usdaed=%v", ErrMalformedResponse, r.USDAED)
	}
	if !validRate(r.USDSAR) {
		return fmt.Errorf("%w: usdsar=%v", ErrMalformedResponse, r.USDSAR)
	}
	return nil
}

func validRate(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v > 0
}

// IsValidRate reports whether v can be used as an exchange rate.
func IsValidRate(v float64) bool {
	return validRate(v)
}

// RateCache is the last successfully fetched rate pair.
// The zero FetchedAt together with HasFetched=false marks a cold cache.
type RateCache struct {
	Rates      RatePair  `json:"rates"`
	FetchedAt  time.Time `json:"fetched_at"`
	HasFetched bool      `json:"has_fetched"`
}

// Due reports whether a refetch should happen at now for the given interval.
// A cache that has never been filled is always due.
func (c RateCache) Due(now time.Time, interval time.Duration) bool {
	if !c.HasFetched {
		return true
	}
	return now.Sub(c.FetchedAt) >= interval
}
