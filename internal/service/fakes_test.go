package service

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"

	"fx_hedge/internal/domain"
)

type fakeFetcher struct {
	mu    sync.Mutex
	pair  domain.RatePair
	err   error
	calls int
	creds []string
}

func (f *fakeFetcher) FetchRates(_ context.Context, credential string) (domain.RatePair, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.creds = append(f.creds, credential)
	return f.pair, f.err
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeHistory struct {
	mu      sync.Mutex
	series  domain.HistoricalSeries
	err     error
	calls   int
	release chan struct{}
	started chan struct{}
}

func (f *fakeHistory) FetchHistorical(_ context.Context, _ string) (domain.HistoricalSeries, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		<-f.release
	}
	return f.series, f.err
}

func (f *fakeHistory) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type memStore struct {
	key string
	err error
}

func (m *memStore) GetCredential() (string, error) { return m.key, m.err }

func (m *memStore) SaveCredential(key string) error {
	if m.err != nil {
		return m.err
	}
	m.key = key
	return nil
}

// captureLogs routes the default logger into a buffer for the rest of the test.
// Services must be constructed after calling it.
func captureLogs(t *testing.T) *syncBuffer {
	t.Helper()
	buf := &syncBuffer{}
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return buf
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
