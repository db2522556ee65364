package domain

import "context"

// RateFetcher calls one upstream and normalizes its answer.
type RateFetcher interface {
	FetchRates(ctx context.Context, credential string) (RatePair, error)
}

// HistoryFetcher pulls the daily closing series for both crosses.
type HistoryFetcher interface {
	FetchHistorical(ctx context.Context, credential string) (HistoricalSeries, error)
}

// CredentialStore persists the API key between runs.
type CredentialStore interface {
	GetCredential() (string, error)
	SaveCredential(key string) error
}

// Renderer receives every computed view.
type Renderer interface {
	RenderTick(view TickView)
	RenderHistorical(view HistoricalView)
}
