package services

import (
	"fmt"
	"net/url"
	"time"

	"codetrack/internal/structures"
	"codetrack/internal/testutil"
)

var testNow = time.Date(2026, time.October, 21, 15, 30, 0, 0, time.UTC)

func testConfig() *structures.Config {
	return &structures.Config{
		Profile: structures.ProfileConfig{LeetCode: "alice", Gfg: "Bob"},
		Sources: structures.SourcesConfig{
			LeetCode: structures.LeetCodeSource{
				PrimaryBase:      "https://lc.primary",
				AlternateBase:    "https://lc.alt",
				PrimaryTimeout:   12 * time.Second,
				AlternateTimeout: 15 * time.Second,
			},
			Gfg: structures.GfgSource{
				AuthApi:       "https://gfg.api/info?handle=%s",
				ProfileUrl:    "https://gfg.site/profile/%s",
				DirectTimeout: 6 * time.Second,
				ProxyTimeout:  15 * time.Second,
				Proxies: []structures.ProxyConfig{
					{Name: "codetabs", Url: "https://p1.test/?quest=%s", Envelope: "direct"},
					{Name: "allorigins", Url: "https://p2.test/get?url=%s", Envelope: "wrapped"},
					{Name: "corsproxy", Url: "https://p3.test/?%s", Envelope: "direct"},
				},
			},
			CacheTTL: time.Hour,
		},
		Ledger: structures.LedgerConfig{MaxEntries: 90, DailyGoal: 3, WeeklyGoal: 21},
	}
}

type fixture struct {
	conf    *structures.Config
	fetcher *testutil.MockFetcher
	store   *testutil.MemoryStore
	logger  *testutil.MockLogger
	metrics *testutil.MockMetrics
}

func newFixture() *fixture {
	return &fixture{
		conf:    testConfig(),
		fetcher: testutil.NewMockFetcher(),
		store:   testutil.NewMemoryStore(),
		logger:  &testutil.MockLogger{},
		metrics: &testutil.MockMetrics{},
	}
}

func (f *fixture) leetcode() *LeetCodeService {
	svc := NewLeetCodeService(f.conf, f.fetcher, f.store, f.logger, f.metrics).(*LeetCodeService)
	svc.now = func() time.Time { return testNow }
	svc.cache.now = svc.now
	return svc
}

func (f *fixture) gfg() *GfgService {
	svc := NewGfgService(f.conf, f.fetcher, f.store, f.logger, f.metrics).(*GfgService)
	svc.cache.now = func() time.Time { return testNow }
	return svc
}

func proxied(template, target string) string {
	return fmt.Sprintf(template, url.QueryEscape(target))
}

func todayKey() int64 {
	return time.Date(testNow.Year(), testNow.Month(), testNow.Day(), 0, 0, 0, 0, time.UTC).Unix()
}
