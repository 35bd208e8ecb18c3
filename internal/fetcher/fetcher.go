// Package fetcher performs single upstream HTTP attempts. It never retries:
// sequencing and fallback belong to the callers.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"codetrack/internal/providers"
)

const (
	userAgent    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15"
	maxBodyBytes = 8 << 20
)

type FetcherInterface interface {
	Fetch(ctx context.Context, target string, timeout time.Duration) ([]byte, error)
}

type Fetcher struct {
	client  *http.Client
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
}

func NewFetcher(logger providers.Logger, metrics providers.MetricsProviderInterface) FetcherInterface {
	return &Fetcher{
		client:  &http.Client{},
		logger:  logger,
		metrics: metrics,
	}
}

// Fetch issues one GET with its own timeout and returns the raw body of a
// 2xx response.
func (f *Fetcher) Fetch(ctx context.Context, target string, timeout time.Duration) ([]byte, error) {
	start := time.Now()
	host := hostOf(target)

	body, err := f.do(ctx, target, timeout)

	outcome := outcomeOf(err)
	f.metrics.ObserveFetch(host, outcome, time.Since(start))
	if err != nil {
		f.logger.Debugf(providers.TypeFetch, "GET %s failed after %s: %s", target, time.Since(start), err)
		return nil, err
	}
	f.logger.Debugf(providers.TypeFetch, "GET %s ok (%d bytes, %s)", target, len(body), time.Since(start))
	return body, nil
}

func (f *Fetcher) do(ctx context.Context, target string, timeout time.Duration) ([]byte, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &NetworkError{URL: target, Err: err}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9, */*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, classify(attemptCtx, target, timeout, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, classify(attemptCtx, target, timeout, fmt.Errorf("read body: %w", err))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{URL: target, Status: resp.StatusCode, BodyPrefix: bodyPrefix(body)}
	}
	return body, nil
}

// classify tells a timeout of this attempt apart from other transport errors.
// A cancellation of the parent context is reported as a network error.
func classify(attemptCtx context.Context, target string, timeout time.Duration, err error) error {
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{URL: target, Timeout: timeout}
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &TimeoutError{URL: target, Timeout: timeout}
	}
	return &NetworkError{URL: target, Err: err}
}

func outcomeOf(err error) string {
	var (
		httpErr    *HTTPError
		timeoutErr *TimeoutError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &httpErr):
		if httpErr.Status == http.StatusTooManyRequests {
			return "rate_limited"
		}
		return "http_error"
	case errors.As(err, &timeoutErr):
		return "timeout"
	default:
		return "network_error"
	}
}

func hostOf(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
