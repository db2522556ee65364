package infra

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"fx_hedge/internal/domain"
)

// NewHTTPClient returns the client shared by the upstream gateways.
// The timeout is the only bound on an in-flight fetch.
func NewHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.MaxIdleConns = 10
	transport.IdleConnTimeout = 30 * time.Second

	return &http.Client{
		Timeout:   10 * time.Second,
		Transport: transport,
	}
}

// getJSON performs a GET and returns the body of a 200 response.
// Quota and auth rejections map to domain.ErrRateLimited.
func getJSON(ctx context.Context, client *http.Client, op, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, domain.NewFatalNetworkError(op, err)
	}

	// Add browser-like User-Agent to avoid bot detection
	req.Header.Set("User-Agent", DefaultUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, domain.NewNetworkError(op, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusTooManyRequests,
		resp.StatusCode == http.StatusUnauthorized,
		resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%s: %w: status %d", op, domain.ErrRateLimited, resp.StatusCode)
	case resp.StatusCode >= 500:
		return nil, domain.NewNetworkError(op, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	default:
		return nil, domain.NewFatalNetworkError(op, fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, domain.NewNetworkError(op, err)
	}
	return body, nil
}
