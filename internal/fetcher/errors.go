package fetcher

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

const bodyPrefixLen = 120

// HTTPError is returned for any non-2xx upstream response.
type HTTPError struct {
	URL        string
	Status     int
	BodyPrefix string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d from %s: %s", e.Status, e.URL, e.BodyPrefix)
}

// TimeoutError is returned when an attempt did not finish within its own timeout.
type TimeoutError struct {
	URL     string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timeout after %s fetching %s", e.Timeout, e.URL)
}

// NetworkError wraps transport failures (DNS, refused connections, resets).
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error fetching %s: %s", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsRateLimited reports whether err is, or wraps, an HTTP 429.
func IsRateLimited(err error) bool {
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.Status == http.StatusTooManyRequests
}

func bodyPrefix(body []byte) string {
	if len(body) > bodyPrefixLen {
		body = body[:bodyPrefixLen]
	}
	return string(body)
}
