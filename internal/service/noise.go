package service

import (
	"math/rand/v2"
	"sync"

	"fx_hedge/internal/domain"
)

// Jitter half-widths for simulated ticks.
const (
	AEDJitter = 0.00025
	SARJitter = 0.001
)

// NoiseInjector adds bounded uniform jitter to a pair.
// The result is per tick only and never written back to the cache.
type NoiseInjector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewNoiseInjector seeds the generator; use a fixed seed in tests.
func NewNoiseInjector(seed1, seed2 uint64) *NoiseInjector {
	return &NoiseInjector{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Apply returns a jittered copy of rates.
func (n *NoiseInjector) Apply(rates domain.RatePair) domain.RatePair {
	n.mu.Lock()
	defer n.mu.Unlock()

	return domain.RatePair{
		USDAED: rates.USDAED + (n.rng.Float64()-0.5)*2*AEDJitter,
		USDSAR: rates.USDSAR + (n.rng.Float64()-0.5)*2*SARJitter,
	}
}
