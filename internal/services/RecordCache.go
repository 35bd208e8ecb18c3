package services

import (
	"time"

	"codetrack/internal/models"
	"codetrack/internal/providers"
	"codetrack/internal/store"
)

// RecordCache keeps the last live record of one platform in the store.
type RecordCache[T any] struct {
	store  store.Store
	key    string
	ttl    time.Duration
	now    func() time.Time
	logger providers.Logger
}

func NewRecordCache[T any](s store.Store, key string, ttl time.Duration, logger providers.Logger) *RecordCache[T] {
	return &RecordCache[T]{store: s, key: key, ttl: ttl, now: time.Now, logger: logger}
}

func (c *RecordCache[T]) Save(user string, rec T) {
	entry := models.CachedEntry[T]{Timestamp: c.now(), User: user, Data: rec}
	if err := c.store.Put(c.key, entry); err != nil {
		c.logger.Warnf(providers.TypeFetch, "Cache write %s failed: %s", c.key, err)
	}
}

// Load returns the entry of user if it has not expired yet.
func (c *RecordCache[T]) Load(user string) (T, bool) {
	var (
		entry models.CachedEntry[T]
		zero  T
	)
	found, err := c.store.Get(c.key, &entry)
	if err != nil {
		c.logger.Warnf(providers.TypeFetch, "Cache read %s failed: %s", c.key, err)
		return zero, false
	}
	if !found || entry.User != user || !entry.Valid(c.now(), c.ttl) {
		return zero, false
	}
	return entry.Data, true
}
