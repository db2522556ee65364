package domain

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRatePair_Validate(t *testing.T) {
	tests := []struct {
		name    string
		pair    RatePair
		wantErr bool
	}{
		{"valid", RatePair{USDAED: 3.67, USDSAR: 3.75}, false},
		{"zero aed", RatePair{USDAED: 0, USDSAR: 3.75}, true},
		{"negative sar", RatePair{USDAED: 3.67, USDSAR: -1}, true},
		{"nan", RatePair{USDAED: math.NaN(), USDSAR: 3.75}, true},
		{"inf", RatePair{USDAED: 3.67, USDSAR: math.Inf(1)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.pair.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrMalformedResponse))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestRateCache_Due(t *testing.T) {
	now := time.Date(2026, 1, 2, 10, 0, 0, 0, time.UTC)

	t.Run("cold cache is always due", func(t *testing.T) {
		c := RateCache{Rates: SeedRates, FetchedAt: now}
		assert.True(t, c.Due(now, time.Hour))
	})

	t.Run("fresh cache is not due", func(t *testing.T) {
		c := RateCache{Rates: SeedRates, FetchedAt: now, HasFetched: true}
		assert.False(t, c.Due(now.Add(9*time.Second), 10*time.Second))
	})

	t.Run("due at exactly the interval", func(t *testing.T) {
		c := RateCache{Rates: SeedRates, FetchedAt: now, HasFetched: true}
		assert.True(t, c.Due(now.Add(10*time.Second), 10*time.Second))
	})
}

func TestManualRates(t *testing.T) {
	pair, ok := ManualRates(ManualMode{Rates: RatePair{USDAED: 3.7, USDSAR: 3.75}})
	assert.True(t, ok)
	assert.Equal(t, 3.7, pair.USDAED)

	_, ok = ManualRates(LiveMode{})
	assert.False(t, ok)
}
