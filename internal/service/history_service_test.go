package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"fx_hedge/internal/domain"
	"fx_hedge/internal/infra"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSeries = domain.HistoricalSeries{
	USDAED: []float64{3.6730, 3.6725, 3.6722},
	USDSAR: []float64{3.7500, 3.7510, 3.7520},
}

func newHistoryService(f *fakeHistory) (*HistoryService, *Session) {
	session := NewSession(false)
	return NewHistoryService(session, f, domain.DefaultHedge(), 15*time.Minute, &infra.Metrics{}), session
}

func TestHistoryService_NoCredential(t *testing.T) {
	f := &fakeHistory{series: testSeries}
	h, _ := newHistoryService(f)

	view := h.Refresh(context.Background(), "", t0)
	assert.Equal(t, domain.HistoricalUnavailable, view.Status)
	assert.Equal(t, 0, f.Calls())
}

func TestHistoryService_ManualSuppresses(t *testing.T) {
	f := &fakeHistory{series: testSeries}
	h, session := newHistoryService(f)
	session.SetManual(livePair)

	view := h.Refresh(context.Background(), "key", t0)
	assert.Equal(t, domain.HistoricalUnavailable, view.Status)
	assert.Equal(t, 0, f.Calls())
}

func TestHistoryService_RefreshAndGate(t *testing.T) {
	f := &fakeHistory{series: testSeries}
	h, _ := newHistoryService(f)

	view := h.Refresh(context.Background(), "key", t0)
	require.Equal(t, domain.HistoricalOK, view.Status)
	require.NotNil(t, view.Snapshot)

	want := domain.CalculatePL(domain.RatePair{USDAED: 3.6725, USDSAR: 3.7510}, domain.DefaultHedge())
	assert.InDelta(t, want.Total, view.Snapshot.YesterdayPL.Total, 1e-9)

	// Within 15 minutes the stored view is served without a call.
	again := h.Refresh(context.Background(), "key", t0.Add(14*time.Minute))
	assert.Equal(t, view, again)
	assert.Equal(t, 1, f.Calls())

	h.Refresh(context.Background(), "key", t0.Add(15*time.Minute))
	assert.Equal(t, 2, f.Calls())
}

func TestHistoryService_FailureIsUnavailable(t *testing.T) {
	f := &fakeHistory{err: domain.NewFetchError(domain.SourceKeyed, domain.ErrMissingHistory)}
	h, _ := newHistoryService(f)

	view := h.Refresh(context.Background(), "key", t0)
	assert.Equal(t, domain.HistoricalUnavailable, view.Status)
	assert.Nil(t, view.Snapshot)
}

func TestHistoryService_FailureLogsRetriable(t *testing.T) {
	logs := captureLogs(t)
	f := &fakeHistory{err: domain.NewNetworkError("time_series", errors.New("502"))}
	h, _ := newHistoryService(f)

	h.Refresh(context.Background(), "key", t0)
	assert.Contains(t, logs.String(), "Historical fetch failed")
	assert.Contains(t, logs.String(), `"retriable":true`)
}

func TestHistoryService_InFlightDropsOverlap(t *testing.T) {
	f := &fakeHistory{
		series:  testSeries,
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
	h, _ := newHistoryService(f)

	done := make(chan domain.HistoricalView)
	go func() { done <- h.Refresh(context.Background(), "key", t0) }()
	<-f.started

	// A second request while the first is outstanding is dropped, serving the stale view.
	stale := h.Refresh(context.Background(), "key", t0.Add(time.Hour))
	assert.Equal(t, domain.HistoricalUnavailable, stale.Status)
	assert.Equal(t, 1, f.Calls())

	close(f.release)
	select {
	case view := <-done:
		assert.Equal(t, domain.HistoricalOK, view.Status)
	case <-time.After(time.Second):
		t.Fatal("in-flight refresh did not finish")
	}
}

func TestHistoryService_DeriveError(t *testing.T) {
	f := &fakeHistory{series: domain.HistoricalSeries{USDAED: []float64{3.67}}}
	h, _ := newHistoryService(f)

	view := h.Refresh(context.Background(), "key", t0)
	assert.Equal(t, domain.HistoricalUnavailable, view.Status)
}
