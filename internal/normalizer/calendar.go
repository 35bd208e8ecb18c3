package normalizer

import (
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"codetrack/internal/models"
)

const dayLayout = "2006-01-02"

var pythonLiterals = strings.NewReplacer(
	"'", `"`,
	"None", "null",
	"True", "true",
	"False", "false",
)

// ParseCalendar accepts a calendar that is already an object, or a string
// holding JSON or a python-style dict. Anything unreadable yields an empty
// calendar; it never fails.
func ParseCalendar(raw gjson.Result) models.Calendar {
	switch {
	case raw.IsObject():
		return calendarFromObject(raw)
	case raw.Type == gjson.String:
		return ParseCalendarString(raw.Str)
	default:
		return models.Calendar{}
	}
}

func ParseCalendarString(s string) models.Calendar {
	s = strings.TrimSpace(s)
	if s == "" {
		return models.Calendar{}
	}
	if gjson.Valid(s) {
		if r := gjson.Parse(s); r.IsObject() {
			return calendarFromObject(r)
		}
	}
	rewritten := pythonLiterals.Replace(s)
	if gjson.Valid(rewritten) {
		if r := gjson.Parse(rewritten); r.IsObject() {
			return calendarFromObject(r)
		}
	}
	return models.Calendar{}
}

func calendarFromObject(obj gjson.Result) models.Calendar {
	cal := models.Calendar{}
	obj.ForEach(func(key, value gjson.Result) bool {
		ts, err := strconv.ParseInt(strings.TrimSpace(key.String()), 10, 64)
		if err != nil {
			return true
		}
		cal[ts] = countOf(value)
		return true
	})
	return cal
}

func utcDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ComputeStreak counts consecutive active UTC days ending today, or ending
// yesterday when nothing was submitted yet today.
func ComputeStreak(cal models.Calendar, now time.Time) int {
	active := make(map[string]struct{}, len(cal))
	for ts, count := range cal {
		if count > 0 {
			active[time.Unix(ts, 0).UTC().Format(dayLayout)] = struct{}{}
		}
	}
	if len(active) == 0 {
		return 0
	}

	day := utcDay(now)
	if _, ok := active[day.Format(dayLayout)]; !ok {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for {
		if _, ok := active[day.Format(dayLayout)]; !ok {
			return streak
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
}

// ActiveDays is the number of calendar entries with at least one submission.
func ActiveDays(cal models.Calendar) int {
	n := 0
	for _, count := range cal {
		if count > 0 {
			n++
		}
	}
	return n
}

// TodayCount reads today's submissions from the calendar. Keys are UTC
// midnights; a local-midnight key is accepted as well.
func TodayCount(cal models.Calendar, now time.Time) int {
	if n := cal[utcDay(now).Unix()]; n > 0 {
		return n
	}
	localMidnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if n := cal[localMidnight.Unix()]; n > 0 {
		return n
	}
	return 0
}
