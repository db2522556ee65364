package infra

import (
	"sync/atomic"
	"time"
)

// Metrics provides lightweight observability without external dependencies.
// Uses atomic operations for thread-safety.
type Metrics struct {
	// Counters
	ticksProcessed    atomic.Uint64
	fetchSuccess      atomic.Uint64
	fetchFailures     atomic.Uint64
	keyedRequests     atomic.Uint64
	historicalSuccess atomic.Uint64
	historicalFailure atomic.Uint64

	// Latency tracking
	latencySumNs atomic.Int64
	latencyCount atomic.Uint64

	// Gauges
	activeConnections atomic.Int32
}

// GlobalMetrics is the singleton metrics instance.
var GlobalMetrics = &Metrics{}

// RecordTick records one pipeline tick with its latency.
func (m *Metrics) RecordTick(latency time.Duration) {
	m.ticksProcessed.Add(1)
	m.latencySumNs.Add(latency.Nanoseconds())
	m.latencyCount.Add(1)
}

// RecordFetch records the outcome of a current-rate fetch.
func (m *Metrics) RecordFetch(ok bool) {
	if ok {
		m.fetchSuccess.Add(1)
	} else {
		m.fetchFailures.Add(1)
	}
}

// RecordKeyedRequest counts a successful request against the keyed quota.
func (m *Metrics) RecordKeyedRequest() {
	m.keyedRequests.Add(1)
}

// RecordHistorical records the outcome of a historical fetch.
func (m *Metrics) RecordHistorical(ok bool) {
	if ok {
		m.historicalSuccess.Add(1)
	} else {
		m.historicalFailure.Add(1)
	}
}

// IncrementConnections increments active connections by 1.
func (m *Metrics) IncrementConnections() {
	m.activeConnections.Add(1)
}

// DecrementConnections decrements active connections by 1.
func (m *Metrics) DecrementConnections() {
	m.activeConnections.Add(-1)
}

// MetricsSnapshot is a point-in-time view of all metrics.
type MetricsSnapshot struct {
	TicksProcessed    uint64    `json:"ticks_processed"`
	FetchSuccess      uint64    `json:"fetch_success"`
	FetchFailures     uint64    `json:"fetch_failures"`
	KeyedRequests     uint64    `json:"keyed_requests"`
	HistoricalSuccess uint64    `json:"historical_success"`
	HistoricalFailure uint64    `json:"historical_failure"`
	AvgTickLatencyNs  int64     `json:"avg_tick_latency_ns"`
	ActiveConnections int32     `json:"active_connections"`
	Timestamp         time.Time `json:"timestamp"`
}

// Snapshot returns current metrics as a snapshot.
func (m *Metrics) Snapshot() MetricsSnapshot {
	var avgLatency int64
	count := m.latencyCount.Load()
	if count > 0 {
		avgLatency = m.latencySumNs.Load() / int64(count)
	}

	return MetricsSnapshot{
		TicksProcessed:    m.ticksProcessed.Load(),
		FetchSuccess:      m.fetchSuccess.Load(),
		FetchFailures:     m.fetchFailures.Load(),
		KeyedRequests:     m.keyedRequests.Load(),
		HistoricalSuccess: m.historicalSuccess.Load(),
		HistoricalFailure: m.historicalFailure.Load(),
		AvgTickLatencyNs:  avgLatency,
		ActiveConnections: m.activeConnections.Load(),
		Timestamp:         time.Now(),
	}
}

// Reset clears all metrics (for testing).
func (m *Metrics) Reset() {
	m.ticksProcessed.Store(0)
	m.fetchSuccess.Store(0)
	m.fetchFailures.Store(0)
	m.keyedRequests.Store(0)
	m.historicalSuccess.Store(0)
	m.historicalFailure.Store(0)
	m.latencySumNs.Store(0)
	m.latencyCount.Store(0)
	m.activeConnections.Store(0)
}
