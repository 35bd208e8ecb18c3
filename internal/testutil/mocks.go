package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"

	"codetrack/internal/fetcher"
	"codetrack/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu            sync.Mutex
	Fetches       map[string]int // key: "host:outcome"
	SourceResults map[string]int // key: "platform:result"
	Refreshes     int
	HistorySize   int
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits()                                    {}
func (m *MockMetrics) IncCacheMisses()                                  {}

func (m *MockMetrics) ObserveFetch(host string, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fetches == nil {
		m.Fetches = make(map[string]int)
	}
	m.Fetches[host+":"+outcome]++
}

func (m *MockMetrics) IncSourceResult(platform string, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SourceResults == nil {
		m.SourceResults = make(map[string]int)
	}
	m.SourceResults[platform+":"+result]++
}

func (m *MockMetrics) ObserveRefreshDuration(_ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Refreshes++
}

func (m *MockMetrics) SetHistorySize(count int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.HistorySize = count
}

func (m *MockMetrics) SourceResult(platform, result string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.SourceResults[platform+":"+result]
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockCompressor implements store.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	// Default: return as-is (identity)
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MemoryStore implements store.Store in memory, JSON round-tripping values
// like the real drivers do.
type MemoryStore struct {
	mu     sync.Mutex
	Data   map[string][]byte
	PutErr error
	Puts   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{Data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(key string, out any) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.Data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, out)
}

func (m *MemoryStore) Put(key string, value any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.Data[key] = raw
	m.Puts++
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.Data, key)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

// Reply is one canned upstream answer.
type Reply struct {
	Body  string
	Err   error
	Delay time.Duration
}

// MockFetcher implements fetcher.FetcherInterface from a table of URL
// prefixes. Unknown URLs fail with a network error.
type MockFetcher struct {
	mu       sync.Mutex
	Replies  map[string]Reply
	Calls    []string
	Timeouts map[string]time.Duration
}

func NewMockFetcher() *MockFetcher {
	return &MockFetcher{
		Replies:  make(map[string]Reply),
		Timeouts: make(map[string]time.Duration),
	}
}

func (m *MockFetcher) On(prefix string, reply Reply) *MockFetcher {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Replies[prefix] = reply
	return m
}

func (m *MockFetcher) Fetch(ctx context.Context, target string, timeout time.Duration) ([]byte, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, target)
	m.Timeouts[target] = timeout
	reply, ok := m.match(target)
	m.mu.Unlock()

	if !ok {
		return nil, &fetcher.NetworkError{URL: target, Err: fmt.Errorf("no route")}
	}
	if reply.Delay > 0 {
		select {
		case <-time.After(reply.Delay):
		case <-ctx.Done():
			return nil, &fetcher.NetworkError{URL: target, Err: ctx.Err()}
		}
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return []byte(reply.Body), nil
}

// match picks the longest registered prefix; must be called under m.mu.
func (m *MockFetcher) match(target string) (Reply, bool) {
	best := -1
	var reply Reply
	for prefix, r := range m.Replies {
		if strings.HasPrefix(target, prefix) && len(prefix) > best {
			best = len(prefix)
			reply = r
		}
	}
	return reply, best >= 0
}

func (m *MockFetcher) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

func (m *MockFetcher) Called(prefix string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.Calls {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}
