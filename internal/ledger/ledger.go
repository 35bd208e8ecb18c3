package ledger

import (
	"fmt"
	"sync"
	"time"

	"codetrack/internal/models"
	"codetrack/internal/providers"
	"codetrack/internal/store"
	"codetrack/internal/structures"
)

// averageWindow is the number of trailing rows behind AveragePerDay.
const averageWindow = 7

type LedgerInterface interface {
	History() ([]models.LedgerSnapshot, error)
	AppendSnapshot(date string, lc, gfg int) ([]models.LedgerSnapshot, error)
	SeedBaseline(date string, lc, gfg int) (bool, error)
	Record(obs Observation) (models.LedgerSummary, error)
	Summary(now time.Time, calendarToday int) (models.LedgerSummary, error)
	DailyDeltas(now time.Time, calendarToday int) ([]models.DailyDelta, error)
	Clear() error
}

// Observation is what one refresh cycle saw. LC and GFG are cumulative
// totals. A missing platform keeps its last recorded total.
type Observation struct {
	Now           time.Time
	LC            int
	GFG           int
	LCMissing     bool
	GFGMissing    bool
	CalendarToday int
}

type Ledger struct {
	mu         sync.Mutex
	store      store.Store
	maxEntries int
	dailyGoal  int
	weeklyGoal int
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
}

func NewLedger(conf *structures.Config, s store.Store, logger providers.Logger, metrics providers.MetricsProviderInterface) *Ledger {
	maxEntries := conf.Ledger.MaxEntries
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Ledger{
		store:      s,
		maxEntries: maxEntries,
		dailyGoal:  conf.Ledger.DailyGoal,
		weeklyGoal: conf.Ledger.WeeklyGoal,
		logger:     logger,
		metrics:    metrics,
	}
}

// load treats an unreadable history as empty.
func (l *Ledger) load() []models.LedgerSnapshot {
	var history []models.LedgerSnapshot
	if _, err := l.store.Get(store.KeyHistory, &history); err != nil {
		l.logger.Warnf(providers.TypeLedger, "History unreadable, starting empty: %s", err)
		return nil
	}
	return history
}

func (l *Ledger) save(history []models.LedgerSnapshot) error {
	if err := l.store.Put(store.KeyHistory, history); err != nil {
		return fmt.Errorf("save history: %w", err)
	}
	l.metrics.SetHistorySize(len(history))
	return nil
}

func (l *Ledger) History() ([]models.LedgerSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.load(), nil
}

// AppendSnapshot stores the totals of date, replacing an existing entry of the
// same date. Beyond the entry limit the oldest entries are dropped.
func (l *Ledger) AppendSnapshot(date string, lc, gfg int) ([]models.LedgerSnapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	history := l.appendLocked(l.load(), models.NewLedgerSnapshot(date, lc, gfg))
	if err := l.save(history); err != nil {
		return nil, err
	}
	return history, nil
}

// SeedBaseline inserts a synthetic entry for date unless one already exists.
func (l *Ledger) SeedBaseline(date string, lc, gfg int) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	history, seeded := l.seedLocked(l.load(), models.NewLedgerSnapshot(date, lc, gfg))
	if !seeded {
		return false, nil
	}
	return true, l.save(history)
}

// Record writes today's snapshot and evaluates progress against it. Without
// any earlier snapshot, the LC calendar count is today's best estimate and a
// baseline for yesterday is synthesized from it so tomorrow has something to
// diff against. A platform seen for the first time turns its placeholders
// into that same baseline.
func (l *Ledger) Record(obs Observation) (models.LedgerSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	history := l.load()
	today := DateOf(obs.Now)
	snap := observed(history, today, obs)
	history = l.appendLocked(history, snap)

	lcBaseline := max(0, snap.LC-obs.CalendarToday)
	if _, ok := Previous(history, today); !ok {
		seed := snap
		seed.Date = DateOf(daysBefore(obs.Now, 1))
		seed.LC = lcBaseline
		seed.Total = seed.LC + seed.GFG
		history, _ = l.seedLocked(history, seed)
	}
	if !obs.LCMissing {
		history = ResolvePending(history, models.PlatformLeetCode, lcBaseline)
	}
	if !obs.GFGMissing {
		history = ResolvePending(history, models.PlatformGfg, snap.GFG)
	}

	if err := l.save(history); err != nil {
		return models.LedgerSummary{}, err
	}
	l.logger.Debugf(providers.TypeLedger, "Snapshot %s: lc=%d gfg=%d pending=%v entries=%d", today, snap.LC, snap.GFG, snap.Pending, len(history))
	return l.summarize(history, obs.Now, obs.CalendarToday, snap.LC, snap.GFG), nil
}

// observed builds today's snapshot, carrying forward missing platforms. A
// platform with nothing to carry is marked pending.
func observed(history []models.LedgerSnapshot, today string, obs Observation) models.LedgerSnapshot {
	snap := models.NewLedgerSnapshot(today, obs.LC, obs.GFG)
	carry := func(p models.Platform) {
		n, ok := CarryForward(history, p)
		snap = snap.WithValue(p, n)
		if !ok {
			snap.Pending = append(snap.Pending, p)
		}
	}
	if obs.LCMissing {
		carry(models.PlatformLeetCode)
	}
	if obs.GFGMissing {
		carry(models.PlatformGfg)
	}
	return snap
}

func (l *Ledger) appendLocked(history []models.LedgerSnapshot, snap models.LedgerSnapshot) []models.LedgerSnapshot {
	return Upsert(history, snap, l.maxEntries)
}

// seedLocked never overwrites an existing entry.
func (l *Ledger) seedLocked(history []models.LedgerSnapshot, snap models.LedgerSnapshot) ([]models.LedgerSnapshot, bool) {
	if _, ok := Find(history, snap.Date); ok {
		return history, false
	}
	l.logger.Infof(providers.TypeLedger, "Seeded baseline %s: lc=%d gfg=%d", snap.Date, snap.LC, snap.GFG)
	return l.appendLocked(history, snap), true
}

// Summary evaluates the stored history without writing to it.
func (l *Ledger) Summary(now time.Time, calendarToday int) (models.LedgerSummary, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	history := l.load()
	lc, _ := CarryForward(history, models.PlatformLeetCode)
	gfg, _ := CarryForward(history, models.PlatformGfg)
	return l.summarize(history, now, calendarToday, lc, gfg), nil
}

func (l *Ledger) summarize(history []models.LedgerSnapshot, now time.Time, calendarToday, lcNow, gfgNow int) models.LedgerSummary {
	today := DateOf(now)

	lcToday, ok := TodayDelta(history, today, models.PlatformLeetCode, lcNow)
	if !ok {
		lcToday = calendarToday
	}
	lcToday = max(lcToday, calendarToday)
	gfgToday, _ := TodayDelta(history, today, models.PlatformGfg, gfgNow)

	deltas := DailyDeltas(history, today, calendarToday)
	return models.LedgerSummary{
		Date:           today,
		LCToday:        Progress(lcToday, l.dailyGoal),
		GFGToday:       Progress(gfgToday, l.dailyGoal),
		Week:           Progress(WeekTotal(history, now), l.weeklyGoal),
		TrackingStreak: TrackingStreak(history, now),
		BestDay:        BestDay(deltas),
		AveragePerDay:  AveragePerDay(deltas, averageWindow),
		TotalSolved:    lcNow + gfgNow,
		Entries:        len(history),
	}
}

func (l *Ledger) DailyDeltas(now time.Time, calendarToday int) ([]models.DailyDelta, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	history := l.load()
	return DailyDeltas(history, DateOf(now), calendarToday), nil
}

func (l *Ledger) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.store.Delete(store.KeyHistory); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	l.metrics.SetHistorySize(0)
	l.logger.Infof(providers.TypeLedger, "History cleared")
	return nil
}
