package service

import (
	"context"
	"log/slog"
	"time"

	"fx_hedge/internal/domain"
	"fx_hedge/internal/infra"
)

// HistoryService refreshes the yesterday / one-month comparison.
type HistoryService struct {
	session  *Session
	fetcher  domain.HistoryFetcher
	hedge    domain.HedgeConfig
	interval time.Duration
	metrics  *infra.Metrics
	logger   *slog.Logger
}

// NewHistoryService creates the historical path; interval gates refreshes.
func NewHistoryService(session *Session, fetcher domain.HistoryFetcher, hedge domain.HedgeConfig, interval time.Duration, metrics *infra.Metrics) *HistoryService {
	if metrics == nil {
		metrics = infra.GlobalMetrics
	}
	return &HistoryService{
		session:  session,
		fetcher:  fetcher,
		hedge:    hedge,
		interval: interval,
		metrics:  metrics,
		logger:   slog.Default().With("module", "history"),
	}
}

func unavailable(now time.Time) domain.HistoricalView {
	return domain.HistoricalView{Status: domain.HistoricalUnavailable, UpdatedAt: now}
}

// Refresh returns the view the panel should show at now.
// It fetches only in Live mode with a credential, at most once per interval,
// and never while another fetch is in flight (the stale view is returned instead).
func (h *HistoryService) Refresh(ctx context.Context, credential string, now time.Time) domain.HistoricalView {
	if _, manual := domain.ManualRates(h.session.Mode()); manual {
		return unavailable(now)
	}
	if credential == "" {
		return unavailable(now)
	}
	if !h.session.TryBeginHistorical(now, h.interval) {
		return h.session.HistoricalView()
	}

	view := h.fetch(ctx, credential, now)
	h.session.FinishHistorical(now, view)
	return view
}

func (h *HistoryService) fetch(ctx context.Context, credential string, now time.Time) domain.HistoricalView {
	series, err := h.fetcher.FetchHistorical(ctx, credential)
	if err != nil {
		h.metrics.RecordHistorical(false)
		h.logger.Warn("Historical fetch failed",
			slog.Bool("retriable", domain.IsRetriable(err)),
			slog.Any("error", err))
		return unavailable(now)
	}

	snap, err := domain.DeriveSnapshot(series, h.hedge)
	if err != nil {
		h.metrics.RecordHistorical(false)
		h.logger.Warn("Historical snapshot derivation failed", slog.Any("error", err))
		return unavailable(now)
	}

	h.metrics.RecordHistorical(true)
	h.logger.Info("Historical snapshot updated",
		slog.Float64("yesterday_total", snap.YesterdayPL.Total),
		slog.Float64("month_total", snap.MonthPL.Total))
	return domain.HistoricalView{Status: domain.HistoricalOK, Snapshot: &snap, UpdatedAt: now}
}
