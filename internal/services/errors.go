package services

import (
	"errors"
	"fmt"
	"strings"

	"codetrack/internal/fetcher"
	"codetrack/internal/models"
)

var ErrNoUsername = errors.New("username is not configured")

// SourceExhaustedError means every source of a platform failed and no
// unexpired cache entry was left to fall back on.
type SourceExhaustedError struct {
	Platform models.Platform
	Attempts []error
}

func (e *SourceExhaustedError) Error() string {
	if len(e.Attempts) == 0 {
		return fmt.Sprintf("%s: all sources failed", e.Platform)
	}
	msgs := make([]string, 0, len(e.Attempts))
	for _, a := range e.Attempts {
		msgs = append(msgs, a.Error())
	}
	return fmt.Sprintf("%s: all sources failed: %s", e.Platform, strings.Join(msgs, "; "))
}

func (e *SourceExhaustedError) Unwrap() []error {
	return e.Attempts
}

// IsRateLimited reports whether any attempt behind err was answered with 429.
func IsRateLimited(err error) bool {
	return fetcher.IsRateLimited(err)
}

func displayName(p models.Platform) string {
	switch p {
	case models.PlatformLeetCode:
		return "LeetCode"
	case models.PlatformGfg:
		return "GFG"
	default:
		return string(p)
	}
}

// FailureOf maps an acquisition error to what the user is shown.
func FailureOf(p models.Platform, err error) *models.PlatformFailure {
	if err == nil {
		return nil
	}
	if IsRateLimited(err) {
		return &models.PlatformFailure{
			Kind:    models.FailureRateLimited,
			Message: "API rate-limited (429). Try again in ~1 hour.",
		}
	}
	return &models.PlatformFailure{
		Kind:    models.FailureUnavailable,
		Message: fmt.Sprintf("Could not fetch %s data. API may be down.", displayName(p)),
	}
}
