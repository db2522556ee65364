package infra

import (
	"testing"
	"time"
)

func TestMetrics_RecordTick(t *testing.T) {
	m := &Metrics{}

	m.RecordTick(1000)
	m.RecordTick(2000)
	m.RecordTick(3000)

	snap := m.Snapshot()

	if snap.TicksProcessed != 3 {
		t.Errorf("Expected 3 ticks, got %d", snap.TicksProcessed)
	}

	// Average latency: (1000 + 2000 + 3000) / 3 = 2000
	if snap.AvgTickLatencyNs != 2000 {
		t.Errorf("Expected avg latency 2000, got %d", snap.AvgTickLatencyNs)
	}
}

func TestMetrics_Fetches(t *testing.T) {
	m := &Metrics{}

	m.RecordFetch(true)
	m.RecordFetch(false)
	m.RecordFetch(false)
	m.RecordKeyedRequest()
	m.RecordHistorical(false)

	snap := m.Snapshot()
	if snap.FetchSuccess != 1 || snap.FetchFailures != 2 {
		t.Errorf("Expected 1/2 fetches, got %d/%d", snap.FetchSuccess, snap.FetchFailures)
	}
	if snap.KeyedRequests != 1 {
		t.Errorf("Expected 1 keyed request, got %d", snap.KeyedRequests)
	}
	if snap.HistoricalFailure != 1 {
		t.Errorf("Expected 1 historical failure, got %d", snap.HistoricalFailure)
	}
}

func TestMetrics_Connections(t *testing.T) {
	m := &Metrics{}

	m.IncrementConnections()
	m.IncrementConnections()
	m.IncrementConnections()

	snap := m.Snapshot()
	if snap.ActiveConnections != 3 {
		t.Errorf("Expected 3 connections, got %d", snap.ActiveConnections)
	}

	m.DecrementConnections()
	snap = m.Snapshot()
	if snap.ActiveConnections != 2 {
		t.Errorf("Expected 2 connections, got %d", snap.ActiveConnections)
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := &Metrics{}

	m.RecordTick(time.Millisecond)
	m.RecordFetch(false)
	m.IncrementConnections()

	m.Reset()
	snap := m.Snapshot()

	if snap.TicksProcessed != 0 {
		t.Error("Expected 0 ticks after reset")
	}
	if snap.FetchFailures != 0 {
		t.Error("Expected 0 failures after reset")
	}
	if snap.ActiveConnections != 0 {
		t.Error("Expected 0 connections after reset")
	}
}
