package ledger

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"codetrack/internal/models"
)

func snap(date string, lc, gfg int) models.LedgerSnapshot {
	return models.NewLedgerSnapshot(date, lc, gfg)
}

func day(d int) time.Time {
	return time.Date(2026, time.October, d, 15, 30, 0, 0, time.UTC)
}

func TestUpsert_SameDayReplaces(t *testing.T) {
	history := []models.LedgerSnapshot{snap("2026-10-18", 10, 5)}
	history = Upsert(history, snap("2026-10-19", 12, 5), 90)
	history = Upsert(history, snap("2026-10-19", 14, 6), 90)

	require.Len(t, history, 2)
	assert.Equal(t, snap("2026-10-19", 14, 6), history[1])
	assert.Equal(t, 20, history[1].Total)
}

func TestUpsert_EvictsOldestBeyondLimit(t *testing.T) {
	var history []models.LedgerSnapshot
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 91; i++ {
		history = Upsert(history, snap(DateOf(start.AddDate(0, 0, i)), i, 0), 90)
	}

	require.Len(t, history, 90)
	assert.Equal(t, "2026-01-02", history[0].Date)
	assert.Equal(t, DateOf(start.AddDate(0, 0, 90)), history[89].Date)
}

func TestUpsert_KeepsDateOrder(t *testing.T) {
	history := []models.LedgerSnapshot{snap("2026-10-19", 10, 0)}
	history = Upsert(history, snap("2026-10-18", 8, 0), 90)

	require.Len(t, history, 2)
	assert.Equal(t, "2026-10-18", history[0].Date)
	assert.Equal(t, "2026-10-19", history[1].Date)
}

func TestUpsert_DoesNotMutateInput(t *testing.T) {
	history := []models.LedgerSnapshot{snap("2026-10-19", 10, 0)}
	_ = Upsert(history, snap("2026-10-19", 99, 0), 90)
	assert.Equal(t, 10, history[0].LC)
}

func TestPreviousAndLatest(t *testing.T) {
	history := []models.LedgerSnapshot{snap("2026-10-17", 1, 0), snap("2026-10-18", 2, 0), snap("2026-10-19", 3, 0)}

	prev, ok := Previous(history, "2026-10-19")
	require.True(t, ok)
	assert.Equal(t, "2026-10-18", prev.Date)

	_, ok = Previous(history, "2026-10-17")
	assert.False(t, ok)

	latest, ok := Latest(history)
	require.True(t, ok)
	assert.Equal(t, "2026-10-19", latest.Date)

	_, ok = Latest(nil)
	assert.False(t, ok)
}

func TestCarryForward(t *testing.T) {
	history := []models.LedgerSnapshot{snap("2026-10-18", 40, 7), snap("2026-10-19", 42, 9)}

	lc, ok := CarryForward(history, models.PlatformLeetCode)
	assert.True(t, ok)
	assert.Equal(t, 42, lc)

	gfg, ok := CarryForward(history, models.PlatformGfg)
	assert.True(t, ok)
	assert.Equal(t, 9, gfg)

	_, ok = CarryForward(nil, models.PlatformGfg)
	assert.False(t, ok)
}

func TestCarryForward_PendingIsUnknown(t *testing.T) {
	pending := snap("2026-10-19", 0, 9)
	pending.Pending = []models.Platform{models.PlatformLeetCode}

	_, ok := CarryForward([]models.LedgerSnapshot{pending}, models.PlatformLeetCode)
	assert.False(t, ok)
	gfg, ok := CarryForward([]models.LedgerSnapshot{pending}, models.PlatformGfg)
	assert.True(t, ok)
	assert.Equal(t, 9, gfg)
}

func TestResolvePending(t *testing.T) {
	a := snap("2026-10-18", 0, 7)
	a.Pending = []models.Platform{models.PlatformLeetCode}
	b := snap("2026-10-19", 0, 9)
	b.Pending = []models.Platform{models.PlatformLeetCode}
	history := []models.LedgerSnapshot{a, b, snap("2026-10-20", 120, 9)}

	got := ResolvePending(history, models.PlatformLeetCode, 117)

	assert.Equal(t, []models.LedgerSnapshot{
		snap("2026-10-18", 117, 7),
		snap("2026-10-19", 117, 9),
		snap("2026-10-20", 120, 9),
	}, got)
	assert.True(t, history[0].IsPending(models.PlatformLeetCode), "input is not mutated")
}

func TestTodayDelta(t *testing.T) {
	history := []models.LedgerSnapshot{snap("2026-10-18", 100, 50), snap("2026-10-19", 103, 50)}

	d, ok := TodayDelta(history, "2026-10-19", models.PlatformLeetCode, 103)
	require.True(t, ok)
	assert.Equal(t, 3, d)

	d, ok = TodayDelta(history, "2026-10-19", models.PlatformGfg, 48)
	require.True(t, ok)
	assert.Equal(t, 0, d, "a shrinking total never yields a negative delta")

	_, ok = TodayDelta(history, "2026-10-18", models.PlatformLeetCode, 100)
	assert.False(t, ok)
}

func TestWeekStart(t *testing.T) {
	for _, d := range []int{19, 20, 21, 22, 23, 24, 25} {
		assert.Equal(t, "2026-10-19", DateOf(WeekStart(day(d))), "day %d", d)
	}
	assert.Equal(t, "2026-10-26", DateOf(WeekStart(day(26))))
}

func TestWeekTotal(t *testing.T) {
	history := []models.LedgerSnapshot{
		snap("2026-10-17", 90, 5),
		snap("2026-10-18", 95, 5),
		snap("2026-10-20", 100, 7),
		snap("2026-10-21", 101, 11),
	}
	assert.Equal(t, 12, WeekTotal(history, day(21)))
}

func TestWeekTotal_NoBaselineBeforeMonday(t *testing.T) {
	history := []models.LedgerSnapshot{snap("2026-10-20", 10, 2), snap("2026-10-21", 12, 2)}
	assert.Equal(t, 14, WeekTotal(history, day(21)))
	assert.Equal(t, 0, WeekTotal(nil, day(21)))
}

func TestTrackingStreak(t *testing.T) {
	consecutive := []models.LedgerSnapshot{snap("2026-10-19", 1, 0), snap("2026-10-20", 2, 0), snap("2026-10-21", 3, 0)}
	assert.Equal(t, 3, TrackingStreak(consecutive, day(21)))

	gap := []models.LedgerSnapshot{snap("2026-10-18", 1, 0), snap("2026-10-20", 2, 0), snap("2026-10-21", 3, 0)}
	assert.Equal(t, 2, TrackingStreak(gap, day(21)))

	assert.Equal(t, 0, TrackingStreak(consecutive, day(23)))
	assert.Equal(t, 0, TrackingStreak(nil, day(21)))
}

func TestDailyDeltas(t *testing.T) {
	history := []models.LedgerSnapshot{
		snap("2026-10-19", 100, 50),
		snap("2026-10-20", 104, 51),
		snap("2026-10-21", 104, 49),
	}
	deltas := DailyDeltas(history, "2026-10-21", 2)

	require.Len(t, deltas, 3)
	assert.Equal(t, 0, deltas[0].DayTotal)
	assert.Equal(t, 4, deltas[1].LCDelta)
	assert.Equal(t, 1, deltas[1].GFGDelta)
	assert.Equal(t, 5, deltas[1].DayTotal)
	assert.Equal(t, 2, deltas[2].LCDelta, "calendar count lifts today's delta")
	assert.Equal(t, 0, deltas[2].GFGDelta)
	assert.Equal(t, 2, deltas[2].DayTotal)

	assert.Equal(t, 5, BestDay(deltas))
	assert.Equal(t, 2.3, AveragePerDay(deltas, 7))
}

func TestAveragePerDay_Window(t *testing.T) {
	var deltas []models.DailyDelta
	for i := 0; i < 10; i++ {
		deltas = append(deltas, models.DailyDelta{Date: fmt.Sprintf("d%d", i), DayTotal: i})
	}
	// last seven: 3..9
	assert.Equal(t, 6.0, AveragePerDay(deltas, 7))
	assert.Equal(t, 0.0, AveragePerDay(nil, 7))
}

func TestGoalPercent(t *testing.T) {
	assert.Equal(t, 0.0, GoalPercent(5, 0))
	assert.InDelta(t, 66.67, GoalPercent(2, 3), 0.01)
	assert.Equal(t, 100.0, GoalPercent(9, 3))

	p := Progress(7, 21)
	assert.Equal(t, 7, p.Done)
	assert.Equal(t, 21, p.Goal)
	assert.InDelta(t, 33.33, p.Percent, 0.01)
}
