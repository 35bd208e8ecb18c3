package models

import "time"

// CachedEntry is the last live record of a platform. One entry per platform,
// the latest write wins. User is the handle the record was fetched for.
type CachedEntry[T any] struct {
	Timestamp time.Time `json:"ts"`
	User      string    `json:"user,omitempty"`
	Data      T         `json:"data"`
}

func (c *CachedEntry[T]) Valid(now time.Time, ttl time.Duration) bool {
	return now.Sub(c.Timestamp) < ttl
}
