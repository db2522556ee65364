package service

import (
	"context"
	"log/slog"
	"time"

	"fx_hedge/internal/domain"
	"fx_hedge/internal/infra"
)

// RatePolicy holds the polling constants for the current-rate path.
type RatePolicy struct {
	KeyedInterval    time.Duration
	FallbackInterval time.Duration
	RequestCap       int
}

// SelectSource decides which upstream serves the next fetch.
// Manual wins unconditionally, then Keyed while a credential is present and under cap.
func SelectSource(mode domain.Mode, credential string, requestCount, requestCap int) domain.Source {
	if _, ok := domain.ManualRates(mode); ok {
		return domain.SourceManual
	}
	if credential != "" && requestCount < requestCap {
		return domain.SourceKeyed
	}
	return domain.SourceFallback
}

// RateService resolves the authoritative rate pair for a tick.
type RateService struct {
	session  *Session
	keyed    domain.RateFetcher
	fallback domain.RateFetcher
	policy   RatePolicy
	metrics  *infra.Metrics
	logger   *slog.Logger
}

// NewRateService wires the two upstreams to the session cache.
func NewRateService(session *Session, keyed, fallback domain.RateFetcher, policy RatePolicy, metrics *infra.Metrics) *RateService {
	if metrics == nil {
		metrics = infra.GlobalMetrics
	}
	return &RateService{
		session:  session,
		keyed:    keyed,
		fallback: fallback,
		policy:   policy,
		metrics:  metrics,
		logger:   slog.Default().With("module", "rates"),
	}
}

// EffectiveCredential hides the credential once the request cap disabled it.
func (s *RateService) EffectiveCredential(credential string) string {
	if s.session.KeyedDisabled() {
		return ""
	}
	return credential
}

// SelectSource applies SelectSource to the session and latches the cap.
func (s *RateService) SelectSource(credential string) domain.Source {
	credential = s.EffectiveCredential(credential)
	src := SelectSource(s.session.Mode(), credential, s.session.RequestCount(), s.policy.RequestCap)
	if src == domain.SourceFallback && credential != "" {
		s.logger.Warn("Keyed request cap reached, using fallback until reset",
			slog.Int("cap", s.policy.RequestCap))
		s.session.DisableKeyed()
	}
	return src
}

// ShouldRefetch reports whether the cache is due for the given mode and credential.
// A never-filled cache is always due; Manual mode never fetches.
func (s *RateService) ShouldRefetch(now time.Time, mode domain.Mode, credentialPresent bool) bool {
	if _, ok := domain.ManualRates(mode); ok {
		return false
	}
	interval := s.policy.FallbackInterval
	if credentialPresent && !s.session.KeyedDisabled() && s.session.RequestCount() < s.policy.RequestCap {
		interval = s.policy.KeyedInterval
	}
	return s.session.Cache().Due(now, interval)
}

// CurrentRates returns the pair that governs this tick and the source it came from.
// Fetch errors never escape: the last cached pair is returned instead.
func (s *RateService) CurrentRates(ctx context.Context, credential string, now time.Time) (domain.RatePair, domain.Source) {
	mode := s.session.Mode()
	src := s.SelectSource(credential)
	if manual, ok := domain.ManualRates(mode); ok {
		return manual, src
	}

	if !s.ShouldRefetch(now, mode, s.EffectiveCredential(credential) != "") {
		return s.session.Cache().Rates, src
	}

	pair, err := s.fetchRates(ctx, src, credential)
	if err != nil {
		s.metrics.RecordFetch(false)
		s.logger.Warn("Rate fetch failed, serving cached rates",
			slog.String("source", src.String()),
			slog.Bool("retriable", domain.IsRetriable(err)),
			slog.Any("error", err))
		return s.session.Cache().Rates, src
	}

	s.metrics.RecordFetch(true)
	s.session.CommitFetch(pair, now, src == domain.SourceKeyed)
	if src == domain.SourceKeyed {
		s.metrics.RecordKeyedRequest()
	}
	s.logger.Debug("Rates updated",
		slog.String("source", src.String()),
		slog.Float64("usdaed", pair.USDAED),
		slog.Float64("usdsar", pair.USDSAR))
	return pair, src
}

func (s *RateService) fetchRates(ctx context.Context, src domain.Source, credential string) (domain.RatePair, error) {
	var (
		pair domain.RatePair
		err  error
	)
	switch src {
	case domain.SourceKeyed:
		pair, err = s.keyed.FetchRates(ctx, credential)
	default:
		pair, err = s.fallback.FetchRates(ctx, "")
	}
	if err != nil {
		return domain.RatePair{}, err
	}
	if err := pair.Validate(); err != nil {
		return domain.RatePair{}, domain.NewFetchError(src, err)
	}
	return pair, nil
}
