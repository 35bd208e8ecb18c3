// Package ledger keeps the bounded daily history of cumulative solved counts
// and derives per-day and per-week progress from it.
package ledger

import (
	"math"
	"sort"
	"time"

	"codetrack/internal/models"
)

// DateLayout is the local calendar-day key of a snapshot.
const DateLayout = "2006-01-02"

// DefaultMaxEntries bounds the history; the oldest entries go first.
const DefaultMaxEntries = 90

// DateOf formats t as a calendar day in t's own location.
func DateOf(t time.Time) string {
	return t.Format(DateLayout)
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func daysBefore(t time.Time, n int) time.Time {
	d := dayStart(t)
	return time.Date(d.Year(), d.Month(), d.Day()-n, 0, 0, 0, 0, d.Location())
}

// Upsert returns a new history with snap stored under its date: replaced in
// place if the date exists, inserted otherwise. The result is sorted by date
// and trimmed to limit entries.
func Upsert(history []models.LedgerSnapshot, snap models.LedgerSnapshot, limit int) []models.LedgerSnapshot {
	out := make([]models.LedgerSnapshot, 0, len(history)+1)
	replaced := false
	for _, h := range history {
		if h.Date == snap.Date {
			out = append(out, snap)
			replaced = true
			continue
		}
		out = append(out, h)
	}
	if !replaced {
		out = append(out, snap)
		sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

func Find(history []models.LedgerSnapshot, date string) (models.LedgerSnapshot, bool) {
	for _, h := range history {
		if h.Date == date {
			return h, true
		}
	}
	return models.LedgerSnapshot{}, false
}

// Previous is the most recent snapshot strictly before date.
func Previous(history []models.LedgerSnapshot, date string) (models.LedgerSnapshot, bool) {
	var (
		prev  models.LedgerSnapshot
		found bool
	)
	for _, h := range history {
		if h.Date < date && (!found || h.Date > prev.Date) {
			prev = h
			found = true
		}
	}
	return prev, found
}

func Latest(history []models.LedgerSnapshot) (models.LedgerSnapshot, bool) {
	if len(history) == 0 {
		return models.LedgerSnapshot{}, false
	}
	latest := history[0]
	for _, h := range history[1:] {
		if h.Date > latest.Date {
			latest = h
		}
	}
	return latest, true
}

// CarryForward is the last known total of a platform, used when the platform
// could not be fetched this cycle. The bool is false when the platform was
// never observed.
func CarryForward(history []models.LedgerSnapshot, p models.Platform) (int, bool) {
	latest, ok := Latest(history)
	if !ok || latest.IsPending(p) {
		return 0, false
	}
	return latest.Value(p), true
}

// ResolvePending replaces every placeholder of p with baseline, so the first
// real observation of p diffs against baseline instead of against zero.
func ResolvePending(history []models.LedgerSnapshot, p models.Platform, baseline int) []models.LedgerSnapshot {
	out := make([]models.LedgerSnapshot, len(history))
	for i, h := range history {
		if h.IsPending(p) {
			h = h.WithValue(p, baseline)
		}
		out[i] = h
	}
	return out
}

// TodayDelta diffs totalNow against the latest snapshot before today. Totals
// only grow upstream, so a negative difference is reported as 0. The bool is
// false when there is no baseline at all.
func TodayDelta(history []models.LedgerSnapshot, today string, p models.Platform, totalNow int) (int, bool) {
	prev, ok := Previous(history, today)
	if !ok {
		return 0, false
	}
	return max(0, totalNow-prev.Value(p)), true
}

// WeekStart is Monday 00:00 of the week containing now, in now's location.
func WeekStart(now time.Time) time.Time {
	offset := (int(now.Weekday()) + 6) % 7
	return daysBefore(now, offset)
}

// WeekTotal is the combined growth since the last snapshot before Monday.
func WeekTotal(history []models.LedgerSnapshot, now time.Time) int {
	latest, ok := Latest(history)
	if !ok {
		return 0
	}
	baseline := 0
	if before, ok := Previous(history, DateOf(WeekStart(now))); ok {
		baseline = before.Total
	}
	return max(0, latest.Total-baseline)
}

// TrackingStreak counts the days, from today backwards, that each have a
// snapshot. The first missing day ends the count.
func TrackingStreak(history []models.LedgerSnapshot, now time.Time) int {
	dates := make(map[string]struct{}, len(history))
	for _, h := range history {
		dates[h.Date] = struct{}{}
	}
	streak := 0
	for {
		if _, ok := dates[DateOf(daysBefore(now, streak))]; !ok {
			return streak
		}
		streak++
	}
}

// DailyDeltas derives one row per snapshot. The LC delta of today is lifted
// to the calendar count when the calendar shows more, since the cumulative
// total can lag behind it.
func DailyDeltas(history []models.LedgerSnapshot, today string, calendarToday int) []models.DailyDelta {
	deltas := make([]models.DailyDelta, 0, len(history))
	for i, h := range history {
		d := models.DailyDelta{Date: h.Date, LC: h.LC, GFG: h.GFG, Total: h.Total}
		if i > 0 {
			prev := history[i-1]
			d.LCDelta = max(0, h.LC-prev.LC)
			d.GFGDelta = max(0, h.GFG-prev.GFG)
		}
		if h.Date == today && calendarToday > d.LCDelta {
			d.LCDelta = calendarToday
		}
		d.DayTotal = d.LCDelta + d.GFGDelta
		deltas = append(deltas, d)
	}
	return deltas
}

func BestDay(deltas []models.DailyDelta) int {
	best := 0
	for _, d := range deltas {
		best = max(best, d.DayTotal)
	}
	return best
}

// AveragePerDay is the mean day total of the last window rows, rounded to
// one decimal.
func AveragePerDay(deltas []models.DailyDelta, window int) float64 {
	if len(deltas) == 0 || window <= 0 {
		return 0
	}
	if len(deltas) > window {
		deltas = deltas[len(deltas)-window:]
	}
	sum := 0
	for _, d := range deltas {
		sum += d.DayTotal
	}
	return math.Round(float64(sum)/float64(len(deltas))*10) / 10
}

func GoalPercent(done, goal int) float64 {
	if goal <= 0 {
		return 0
	}
	return math.Min(100, float64(done)/float64(goal)*100)
}

func Progress(done, goal int) models.GoalProgress {
	return models.GoalProgress{Done: done, Goal: goal, Percent: GoalPercent(done, goal)}
}
