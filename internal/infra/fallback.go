package infra

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"fx_hedge/internal/domain"
)

// openERResponse represents the open.er-api.com latest-rates payload
type openERResponse struct {
	Result   string             `json:"result"`
	BaseCode string             `json:"base_code"`
	Rates    map[string]float64 `json:"rates"`
}

// FallbackClient reads the unkeyed daily snapshot.
type FallbackClient struct {
	apiURL     string
	httpClient *http.Client
}

// NewFallbackClient creates a client for the daily snapshot endpoint.
func NewFallbackClient(apiURL string, httpClient *http.Client) *FallbackClient {
	if apiURL == "" {
		apiURL = DefaultFallbackURL
	}
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	return &FallbackClient{apiURL: apiURL, httpClient: httpClient}
}

// FetchRates ignores the credential; the endpoint is public.
func (c *FallbackClient) FetchRates(ctx context.Context, _ string) (domain.RatePair, error) {
	body, err := getJSON(ctx, c.httpClient, "latest", c.apiURL)
	if err != nil {
		return domain.RatePair{}, domain.NewFetchError(domain.SourceFallback, err)
	}

	var data openERResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return domain.RatePair{}, domain.NewFetchError(domain.SourceFallback, fmt.Errorf("%w: %v", domain.ErrMalformedResponse, err))
	}
	if data.Result == "error" {
		return domain.RatePair{}, domain.NewFetchError(domain.SourceFallback, fmt.Errorf("%w: result=error", domain.ErrMalformedResponse))
	}

	aed, okA := data.Rates["AED"]
	sar, okS := data.Rates["SAR"]
	if !okA || !okS {
		return domain.RatePair{}, domain.NewFetchError(domain.SourceFallback, fmt.Errorf("%w: AED/SAR missing", domain.ErrMalformedResponse))
	}

	pair := domain.RatePair{USDAED: aed, USDSAR: sar}
	if err := pair.Validate(); err != nil {
		return domain.RatePair{}, domain.NewFetchError(domain.SourceFallback, err)
	}
	return pair, nil
}
