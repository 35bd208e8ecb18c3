package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codetrack/internal/models"
	"codetrack/internal/store"
	"codetrack/internal/structures"
	"codetrack/internal/testutil"
)

func newTestLedger(t *testing.T) (*Ledger, *testutil.MemoryStore, *testutil.MockMetrics) {
	t.Helper()
	conf := &structures.Config{Ledger: structures.LedgerConfig{MaxEntries: 90, DailyGoal: 3, WeeklyGoal: 21}}
	s := testutil.NewMemoryStore()
	metrics := &testutil.MockMetrics{}
	return NewLedger(conf, s, &testutil.MockLogger{}, metrics), s, metrics
}

func TestLedger_AppendSnapshotIsIdempotentPerDay(t *testing.T) {
	l, _, metrics := newTestLedger(t)

	_, err := l.AppendSnapshot("2026-10-19", 10, 4)
	require.NoError(t, err)
	history, err := l.AppendSnapshot("2026-10-19", 10, 4)
	require.NoError(t, err)

	require.Len(t, history, 1)
	assert.Equal(t, 1, metrics.HistorySize)
}

func TestLedger_SeedBaselineNeverOverwrites(t *testing.T) {
	l, _, _ := newTestLedger(t)
	_, err := l.AppendSnapshot("2026-10-18", 50, 5)
	require.NoError(t, err)

	seeded, err := l.SeedBaseline("2026-10-18", 1, 1)
	require.NoError(t, err)
	assert.False(t, seeded)

	seeded, err = l.SeedBaseline("2026-10-17", 45, 5)
	require.NoError(t, err)
	assert.True(t, seeded)

	history, err := l.History()
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "2026-10-17", history[0].Date)
	assert.Equal(t, 50, history[1].LC)
}

func TestLedger_RecordFirstRunSeedsYesterday(t *testing.T) {
	l, _, _ := newTestLedger(t)

	summary, err := l.Record(Observation{Now: day(21), LC: 100, GFG: 50, CalendarToday: 3})
	require.NoError(t, err)

	history, _ := l.History()
	require.Len(t, history, 2)
	assert.Equal(t, snap("2026-10-20", 97, 50), history[0])
	assert.Equal(t, snap("2026-10-21", 100, 50), history[1])

	assert.Equal(t, 3, summary.LCToday.Done)
	assert.Equal(t, 100.0, summary.LCToday.Percent)
	assert.Equal(t, 0, summary.GFGToday.Done)
	assert.Equal(t, 2, summary.TrackingStreak)
	assert.Equal(t, 150, summary.TotalSolved)
	assert.Equal(t, 2, summary.Entries)
}

func TestLedger_RecordDiffsAgainstPreviousDay(t *testing.T) {
	l, _, _ := newTestLedger(t)
	_, err := l.AppendSnapshot("2026-10-18", 88, 40)
	require.NoError(t, err)
	_, err = l.AppendSnapshot("2026-10-20", 90, 40)
	require.NoError(t, err)

	summary, err := l.Record(Observation{Now: day(21), LC: 95, GFG: 42, CalendarToday: 2})
	require.NoError(t, err)

	assert.Equal(t, 5, summary.LCToday.Done)
	assert.Equal(t, 2, summary.GFGToday.Done)
	assert.Equal(t, 9, summary.Week.Done)
	assert.Equal(t, 21, summary.Week.Goal)

	history, _ := l.History()
	assert.Len(t, history, 3, "no seed when a baseline exists")
}

func TestLedger_RecordCalendarWinsWhenTotalLags(t *testing.T) {
	l, _, _ := newTestLedger(t)
	_, err := l.AppendSnapshot("2026-10-20", 95, 40)
	require.NoError(t, err)

	summary, err := l.Record(Observation{Now: day(21), LC: 95, GFG: 40, CalendarToday: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.LCToday.Done)
}

func TestLedger_RecordTwiceSameDay(t *testing.T) {
	l, _, _ := newTestLedger(t)
	_, err := l.Record(Observation{Now: day(21), LC: 10, GFG: 1})
	require.NoError(t, err)
	summary, err := l.Record(Observation{Now: day(21), LC: 12, GFG: 1})
	require.NoError(t, err)

	history, _ := l.History()
	require.Len(t, history, 2)
	assert.Equal(t, 12, history[1].LC)
	assert.Equal(t, 2, summary.LCToday.Done)
}

func TestLedger_SaveFailure(t *testing.T) {
	l, s, _ := newTestLedger(t)
	s.PutErr = errors.New("disk full")

	_, err := l.Record(Observation{Now: day(21), LC: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestLedger_CorruptHistoryIsEmpty(t *testing.T) {
	l, s, _ := newTestLedger(t)
	s.Data[store.KeyHistory] = []byte("{not json")

	history, err := l.History()
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestLedger_SummaryUsesStoredTotals(t *testing.T) {
	l, _, _ := newTestLedger(t)
	_, _ = l.AppendSnapshot("2026-10-20", 30, 10)
	_, _ = l.AppendSnapshot("2026-10-21", 32, 10)

	summary, err := l.Summary(day(21), 0)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.LCToday.Done)
	assert.Equal(t, 42, summary.TotalSolved)

	deltas, err := l.DailyDeltas(day(21), 0)
	require.NoError(t, err)
	require.Len(t, deltas, 2)
	assert.Equal(t, 2, deltas[1].DayTotal)
}

func TestLedger_Clear(t *testing.T) {
	l, s, metrics := newTestLedger(t)
	_, _ = l.AppendSnapshot("2026-10-21", 1, 1)

	require.NoError(t, l.Clear())
	_, ok := s.Data[store.KeyHistory]
	assert.False(t, ok)
	assert.Equal(t, 0, metrics.HistorySize)

	history, _ := l.History()
	assert.Empty(t, history)
}

var _ LedgerInterface = (*Ledger)(nil)

func TestLedger_RecordSeedsThroughSharedPath(t *testing.T) {
	l, _, _ := newTestLedger(t)
	_, err := l.Record(Observation{Now: day(21), LC: 100, GFG: 50, CalendarToday: 3})
	require.NoError(t, err)

	// the seeded day is an ordinary entry: seeding it again is a no-op
	seeded, err := l.SeedBaseline("2026-10-20", 1, 1)
	require.NoError(t, err)
	assert.False(t, seeded)

	history, err := l.AppendSnapshot("2026-10-21", 101, 50)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, snap("2026-10-20", 97, 50), history[0])
}

func TestLedger_RecordUnseenPlatformWaitsForBaseline(t *testing.T) {
	l, _, _ := newTestLedger(t)

	summary, err := l.Record(Observation{Now: day(21), LCMissing: true, GFG: 50})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.LCToday.Done)

	history, _ := l.History()
	require.Len(t, history, 2)
	for _, h := range history {
		assert.True(t, h.IsPending(models.PlatformLeetCode), h.Date)
		assert.False(t, h.IsPending(models.PlatformGfg), h.Date)
	}

	summary, err = l.Record(Observation{Now: day(22), LC: 300, GFG: 51, CalendarToday: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.LCToday.Done, "lifetime total is not a day's work")
	assert.Equal(t, 1, summary.GFGToday.Done)

	history, _ = l.History()
	assert.Equal(t, []models.LedgerSnapshot{
		snap("2026-10-20", 298, 50),
		snap("2026-10-21", 298, 50),
		snap("2026-10-22", 300, 51),
	}, history)
}

func TestLedger_RecordMissingPlatformCarriesForward(t *testing.T) {
	l, _, _ := newTestLedger(t)
	_, err := l.AppendSnapshot("2026-10-20", 90, 40)
	require.NoError(t, err)

	summary, err := l.Record(Observation{Now: day(21), LCMissing: true, GFG: 42})
	require.NoError(t, err)

	history, _ := l.History()
	assert.Equal(t, snap("2026-10-21", 90, 42), history[1])
	assert.Equal(t, 0, summary.LCToday.Done)
	assert.Equal(t, 2, summary.GFGToday.Done)
}
