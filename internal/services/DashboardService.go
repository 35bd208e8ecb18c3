package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/atomic"

	"codetrack/internal/ledger"
	"codetrack/internal/models"
	"codetrack/internal/normalizer"
	"codetrack/internal/providers"
	"codetrack/internal/store"
	"codetrack/internal/structures"
)

type DashboardServiceInterface interface {
	Refresh(ctx context.Context) (*models.RefreshResult, error)
	Config() (models.UserConfig, error)
	SetConfig(cfg models.UserConfig) (models.UserConfig, error)
	History() ([]models.LedgerSnapshot, error)
	Summary() (models.LedgerSummary, error)
	DailyDeltas() ([]models.DailyDelta, error)
	ClearHistory() error
	// Generation changes whenever stored state changes.
	Generation() uint64
}

// DashboardService is the single session behind every surface. Refresh
// cycles never overlap; the platforms of one cycle are fetched concurrently.
type DashboardService struct {
	mu         sync.Mutex
	conf       *structures.Config
	store      store.Store
	leetcode   LeetCodeServiceInterface
	gfg        GfgServiceInterface
	ledger     ledger.LedgerInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	now        func() time.Time
	calendar   atomic.Pointer[calendarCount]
	generation atomic.Uint64
}

// calendarCount is the LC calendar's submission count of one local day.
type calendarCount struct {
	date  string
	count int
}

func NewDashboardService(conf *structures.Config, s store.Store, lc LeetCodeServiceInterface, gfg GfgServiceInterface, l ledger.LedgerInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) DashboardServiceInterface {
	return &DashboardService{
		conf:     conf,
		store:    s,
		leetcode: lc,
		gfg:      gfg,
		ledger:   l,
		logger:   logger,
		metrics:  metrics,
		now:      time.Now,
	}
}

func (d *DashboardService) Generation() uint64 {
	return d.generation.Load()
}

// Config returns the stored usernames, or the configured profile when none
// were stored yet.
func (d *DashboardService) Config() (models.UserConfig, error) {
	cfg := models.UserConfig{LC: d.conf.Profile.LeetCode, GFG: d.conf.Profile.Gfg}
	if _, err := d.store.Get(store.KeyConfig, &cfg); err != nil {
		return models.UserConfig{}, fmt.Errorf("read config: %w", err)
	}
	return normalizeConfig(cfg), nil
}

func (d *DashboardService) SetConfig(cfg models.UserConfig) (models.UserConfig, error) {
	cfg = normalizeConfig(cfg)
	if err := d.store.Put(store.KeyConfig, cfg); err != nil {
		return models.UserConfig{}, fmt.Errorf("save config: %w", err)
	}
	d.generation.Inc()
	d.logger.Infof(providers.TypeApp, "Config saved: lc=%q gfg=%q", cfg.LC, cfg.GFG)
	return cfg, nil
}

func normalizeConfig(cfg models.UserConfig) models.UserConfig {
	return models.UserConfig{LC: strings.TrimSpace(cfg.LC), GFG: NormalizeHandle(cfg.GFG)}
}

// Refresh runs one acquisition cycle and records its totals. A platform that
// failed keeps its last recorded total in the ledger.
func (d *DashboardService) Refresh(ctx context.Context) (*models.RefreshResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	start := time.Now()
	defer func() { d.metrics.ObserveRefreshDuration(time.Since(start)) }()

	cfg, err := d.Config()
	if err != nil {
		return nil, err
	}
	result := &models.RefreshResult{CycleID: uuid.NewString()}
	d.logger.Infof(providers.TypeApp, "Refresh %s started: lc=%q gfg=%q", result.CycleID, cfg.LC, cfg.GFG)

	var wg sync.WaitGroup
	if cfg.LC != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := d.leetcode.Fetch(ctx, cfg.LC)
			result.LC = rec
			result.LCError = FailureOf(models.PlatformLeetCode, err)
		}()
	}
	if cfg.GFG != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			rec, err := d.gfg.Fetch(ctx, cfg.GFG)
			result.GFG = rec
			result.GFGError = FailureOf(models.PlatformGfg, err)
		}()
	}
	wg.Wait()

	now := d.now()
	if result.LC != nil {
		d.calendar.Store(&calendarCount{
			date:  ledger.DateOf(now),
			count: normalizer.TodayCount(result.LC.SubmissionCalendar, now),
		})
	}
	calendarToday := d.calendarToday(now)

	if result.LC == nil && result.GFG == nil {
		d.logger.Warnf(providers.TypeApp, "Refresh %s: no platform data, ledger untouched", result.CycleID)
		result.Summary, err = d.ledger.Summary(now, calendarToday)
		if err != nil {
			return nil, err
		}
		return result, nil
	}

	obs := ledger.Observation{
		Now:           now,
		LCMissing:     result.LC == nil,
		GFGMissing:    result.GFG == nil,
		CalendarToday: calendarToday,
	}
	if result.LC != nil {
		obs.LC = result.LC.TotalSolved
	}
	if result.GFG != nil {
		obs.GFG = result.GFG.TotalProblemsSolved
	}

	result.Summary, err = d.ledger.Record(obs)
	if err != nil {
		return nil, fmt.Errorf("refresh %s: %w", result.CycleID, err)
	}
	d.generation.Inc()
	d.logger.Infof(providers.TypeApp, "Refresh %s done: total=%d today=%d/%d week=%d",
		result.CycleID, result.Summary.TotalSolved, result.Summary.LCToday.Done, result.Summary.GFGToday.Done, result.Summary.Week.Done)
	return result, nil
}

func (d *DashboardService) History() ([]models.LedgerSnapshot, error) {
	return d.ledger.History()
}

func (d *DashboardService) Summary() (models.LedgerSummary, error) {
	now := d.now()
	return d.ledger.Summary(now, d.calendarToday(now))
}

func (d *DashboardService) DailyDeltas() ([]models.DailyDelta, error) {
	now := d.now()
	return d.ledger.DailyDeltas(now, d.calendarToday(now))
}

// calendarToday is the last LC calendar count, as long as it was taken today.
func (d *DashboardService) calendarToday(now time.Time) int {
	c := d.calendar.Load()
	if c == nil || c.date != ledger.DateOf(now) {
		return 0
	}
	return c.count
}

func (d *DashboardService) ClearHistory() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err := d.ledger.Clear(); err != nil {
		return err
	}
	d.generation.Inc()
	return nil
}
