package facades

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sbilibin2017/gw-currency-converter/internal/logger"
	"github.com/sbilibin2017/gw-currency-converter/internal/metrics"
	"github.com/tidwall/gjson"
)

var (
	// ErrUnexpectedStatus is returned when a provider answers with a non-2xx status.
	ErrUnexpectedStatus = errors.New("unexpected provider status")
	// ErrMalformedResponse is returned when a provider body does not match its contract.
	ErrMalformedResponse = errors.New("malformed provider response")
)

const maxResponseBytes = 4 << 20

// NewHTTPClient returns the client shared by all provider facades.
// A zero timeout leaves requests unbounded.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// getJSON performs a GET and returns the validated JSON body.
func getJSON(ctx context.Context, client *http.Client, provider, endpoint string, query url.Values) (body []byte, err error) {
	defer func() {
		metrics.RecordProviderRequest(provider, err)
	}()

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid %s endpoint: %w", provider, err)
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", provider, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s request failed: %w", provider, err)
	}
	defer resp.Body.Close()

	body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", provider, err)
	}

	logger.Log.Debugw("provider response",
		"provider", provider,
		"endpoint", u.Host+u.Path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"size", len(body),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %d: %s", ErrUnexpectedStatus, provider, resp.StatusCode, truncate(body, 256))
	}
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: %s body is not valid JSON", ErrMalformedResponse, provider)
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
