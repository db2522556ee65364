package infra

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"fx_hedge/internal/domain"

	"github.com/tidwall/gjson"
)

var pairSymbols = strings.Join([]string{domain.SymbolUSDAED, domain.SymbolUSDSAR}, ",")

// TwelveDataClient is the keyed real-time and historical gateway.
type TwelveDataClient struct {
	priceURL   string
	seriesURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewTwelveDataClient creates a client; empty URLs fall back to the public endpoints.
func NewTwelveDataClient(priceURL, seriesURL string, httpClient *http.Client) *TwelveDataClient {
	if priceURL == "" {
		priceURL = DefaultPriceURL
	}
	if seriesURL == "" {
		seriesURL = DefaultSeriesURL
	}
	if httpClient == nil {
		httpClient = NewHTTPClient()
	}
	return &TwelveDataClient{
		priceURL:   priceURL,
		seriesURL:  seriesURL,
		httpClient: httpClient,
		logger:     slog.Default().With("module", "twelvedata"),
	}
}

// FetchRates quotes both crosses in one request.
// Both symbols must be present with a finite positive price.
func (c *TwelveDataClient) FetchRates(ctx context.Context, credential string) (domain.RatePair, error) {
	if credential == "" {
		return domain.RatePair{}, domain.NewFetchError(domain.SourceKeyed, domain.ErrNoCredential)
	}

	q := url.Values{}
	q.Set("symbol", pairSymbols)
	q.Set("apikey", credential)

	body, err := getJSON(ctx, c.httpClient, "price", c.priceURL+"?"+q.Encode())
	if err != nil {
		return domain.RatePair{}, domain.NewFetchError(domain.SourceKeyed, err)
	}

	root := gjson.ParseBytes(body)
	if err := apiError(root); err != nil {
		return domain.RatePair{}, domain.NewFetchError(domain.SourceKeyed, err)
	}

	aed, err := priceOf(root, domain.SymbolUSDAED)
	if err != nil {
		return domain.RatePair{}, domain.NewFetchError(domain.SourceKeyed, err)
	}
	sar, err := priceOf(root, domain.SymbolUSDSAR)
	if err != nil {
		return domain.RatePair{}, domain.NewFetchError(domain.SourceKeyed, err)
	}

	pair := domain.RatePair{USDAED: aed, USDSAR: sar}
	if err := pair.Validate(); err != nil {
		return domain.RatePair{}, domain.NewFetchError(domain.SourceKeyed, err)
	}
	return pair, nil
}

// FetchHistorical pulls up to domain.HistoryDays daily closes per cross, most recent first.
func (c *TwelveDataClient) FetchHistorical(ctx context.Context, credential string) (domain.HistoricalSeries, error) {
	if credential == "" {
		return domain.HistoricalSeries{}, domain.NewFetchError(domain.SourceKeyed, domain.ErrNoCredential)
	}

	q := url.Values{}
	q.Set("symbol", pairSymbols)
	q.Set("interval", "1day")
	q.Set("outputsize", strconv.Itoa(domain.HistoryDays))
	q.Set("apikey", credential)

	body, err := getJSON(ctx, c.httpClient, "time_series", c.seriesURL+"?"+q.Encode())
	if err != nil {
		return domain.HistoricalSeries{}, domain.NewFetchError(domain.SourceKeyed, err)
	}

	root := gjson.ParseBytes(body)
	if err := apiError(root); err != nil {
		return domain.HistoricalSeries{}, domain.NewFetchError(domain.SourceKeyed, err)
	}

	aed, err := c.closesOf(root, domain.SymbolUSDAED)
	if err != nil {
		return domain.HistoricalSeries{}, domain.NewFetchError(domain.SourceKeyed, err)
	}
	sar, err := c.closesOf(root, domain.SymbolUSDSAR)
	if err != nil {
		return domain.HistoricalSeries{}, domain.NewFetchError(domain.SourceKeyed, err)
	}

	return domain.HistoricalSeries{USDAED: aed, USDSAR: sar}, nil
}

// apiError detects the {"code":429,"message":...} error object.
func apiError(root gjson.Result) error {
	code := root.Get("code")
	if !code.Exists() || code.Type != gjson.Number || code.Int() == http.StatusOK {
		return nil
	}
	return fmt.Errorf("%w: code %d: %s", domain.ErrRateLimited, code.Int(), root.Get("message").String())
}

// symbolPath escapes the symbol so gjson treats it as a single key.
func symbolPath(symbol string) string {
	return gjson.Escape(symbol)
}

func priceOf(root gjson.Result, symbol string) (float64, error) {
	res := root.Get(symbolPath(symbol) + ".price")
	if !res.Exists() {
		return 0, fmt.Errorf("%w: %s missing", domain.ErrMalformedResponse, symbol)
	}
	v, err := strconv.ParseFloat(res.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s price %q", domain.ErrMalformedResponse, symbol, res.String())
	}
	if !domain.IsValidRate(v) {
		return 0, fmt.Errorf("%w: %s price %v", domain.ErrMalformedResponse, symbol, v)
	}
	return v, nil
}

func (c *TwelveDataClient) closesOf(root gjson.Result, symbol string) ([]float64, error) {
	node := root.Get(symbolPath(symbol))
	if !node.Exists() {
		return nil, fmt.Errorf("%w: %s missing", domain.ErrMissingHistory, symbol)
	}
	if status := node.Get("status").String(); status != "ok" {
		return nil, fmt.Errorf("%w: %s status %q", domain.ErrMissingHistory, symbol, status)
	}

	var closes []float64
	node.Get("values").ForEach(func(_, bar gjson.Result) bool {
		v, err := strconv.ParseFloat(bar.Get("close").String(), 64)
		if err != nil || !domain.IsValidRate(v) {
			c.logger.Debug("Skipping invalid bar", slog.String("symbol", symbol), slog.String("datetime", bar.Get("datetime").String()))
			return true
		}
		closes = append(closes, v)
		return true
	})

	if len(closes) == 0 {
		return nil, errors.Join(domain.ErrMissingHistory, fmt.Errorf("%s has no valid close", symbol))
	}
	return closes, nil
}
