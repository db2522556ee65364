package service

import (
	"fmt"
	"strconv"
	"strings"

	"fx_hedge/internal/domain"
)

// ParseManualInput builds a manual pair from two text fields.
// A blank or unusable field falls back to the last known rate for that leg;
// the input is rejected only when neither field yields a usable rate.
func ParseManualInput(aedText, sarText string, last domain.RatePair) (domain.RatePair, error) {
	aed, okA := parseRate(aedText)
	sar, okS := parseRate(sarText)
	if !okA && !okS {
		return domain.RatePair{}, fmt.Errorf("%w: usdaed=%q usdsar=%q", domain.ErrInvalidManualInput, aedText, sarText)
	}

	pair := last
	if okA {
		pair.USDAED = aed
	}
	if okS {
		pair.USDSAR = sar
	}
	if err := pair.Validate(); err != nil {
		return domain.RatePair{}, fmt.Errorf("%w: %v", domain.ErrInvalidManualInput, err)
	}
	return pair, nil
}

func parseRate(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || !domain.IsValidRate(v) {
		return 0, false
	}
	return v, true
}
