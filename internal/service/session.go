package service

import (
	"sync"
	"time"

	"fx_hedge/internal/domain"
)

// historicalState tracks the comparison panel between refreshes.
type historicalState struct {
	lastFetch time.Time
	inFlight  bool
	view      domain.HistoricalView
}

// Session owns all mutable dashboard state for one process lifetime.
// Every update is a whole-value replace under the lock, so overlapping
// fetch completions resolve as last-write-wins without torn fields.
type Session struct {
	mu sync.RWMutex

	cache         domain.RateCache
	requestCount  int
	keyedDisabled bool

	mode            domain.Mode
	simulation      bool
	credentialInput string

	hist historicalState
}

// NewSession seeds the cache with domain.SeedRates in Live mode.
func NewSession(simulation bool) *Session {
	return &Session{
		cache:      domain.RateCache{Rates: domain.SeedRates},
		mode:       domain.LiveMode{},
		simulation: simulation,
		hist: historicalState{
			view: domain.HistoricalView{Status: domain.HistoricalUnavailable},
		},
	}
}

// Cache returns a copy of the rate cache.
func (s *Session) Cache() domain.RateCache {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache
}

// CommitFetch replaces the cache with a freshly fetched pair.
// Keyed fetches count against the request budget.
func (s *Session) CommitFetch(rates domain.RatePair, at time.Time, keyed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache = domain.RateCache{Rates: rates, FetchedAt: at, HasFetched: true}
	if keyed {
		s.requestCount++
	}
}

// ResetRefreshClock makes the next tick refetch immediately.
func (s *Session) ResetRefreshClock() {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.cache
	c.FetchedAt = time.Time{}
	s.cache = c
}

// RequestCount returns the number of successful keyed requests this session.
func (s *Session) RequestCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.requestCount
}

// KeyedDisabled reports whether the request cap switched the session to fallback.
func (s *Session) KeyedDisabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.keyedDisabled
}

// DisableKeyed treats the credential as absent until ResetBudget.
func (s *Session) DisableKeyed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyedDisabled = true
}

// ResetBudget clears the request counter and re-enables the keyed source.
func (s *Session) ResetBudget() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requestCount = 0
	s.keyedDisabled = false
}

// Mode returns the current mode.
func (s *Session) Mode() domain.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// SetManual switches to Manual with the given pair.
func (s *Session) SetManual(rates domain.RatePair) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = domain.ManualMode{Rates: rates}
}

// SetLive leaves Manual mode and resets the request budget.
// It reports false and changes nothing when the session is already Live.
func (s *Session) SetLive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, manual := domain.ManualRates(s.mode); !manual {
		return false
	}
	s.mode = domain.LiveMode{}
	s.requestCount = 0
	s.keyedDisabled = false
	return true
}

// Simulation reports whether pip noise is enabled.
func (s *Session) Simulation() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.simulation
}

// SetSimulation toggles pip noise.
func (s *Session) SetSimulation(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.simulation = enabled
}

// CredentialInput returns the unsaved key typed into the dashboard.
func (s *Session) CredentialInput() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credentialInput
}

// SetCredentialInput replaces the unsaved key.
func (s *Session) SetCredentialInput(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credentialInput = key
}

// TryBeginHistorical claims the historical slot.
// It fails while another fetch is in flight or before interval has passed since the last one.
func (s *Session) TryBeginHistorical(now time.Time, interval time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hist.inFlight {
		return false
	}
	if !s.hist.lastFetch.IsZero() && now.Sub(s.hist.lastFetch) < interval {
		return false
	}
	s.hist.inFlight = true
	return true
}

// FinishHistorical releases the slot and stores the resulting view.
func (s *Session) FinishHistorical(at time.Time, view domain.HistoricalView) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.hist = historicalState{lastFetch: at, inFlight: false, view: view}
}

// HistoricalView returns the last historical view.
func (s *Session) HistoricalView() domain.HistoricalView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hist.view
}
