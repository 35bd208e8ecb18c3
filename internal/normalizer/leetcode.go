// Package normalizer turns the heterogeneous upstream responses of both
// platforms into the canonical records in package models. Nothing in here
// returns a parse error: unreadable input degrades to zero or Unknown.
package normalizer

import (
	"fmt"
	"sort"
	"time"

	"github.com/tidwall/gjson"

	"codetrack/internal/models"
)

// Variant tags which LeetCode response a body came from.
type Variant int

const (
	VariantProfile Variant = iota
	VariantSolved
	VariantSkills
	VariantCalendar
)

func (v Variant) String() string {
	switch v {
	case VariantProfile:
		return "profile"
	case VariantSolved:
		return "solved"
	case VariantSkills:
		return "skills"
	case VariantCalendar:
		return "calendar"
	default:
		return "unknown"
	}
}

// Shape is one upstream body tagged with its variant.
type Shape struct {
	Variant Variant
	Raw     gjson.Result
}

// NewShape accepts only JSON object bodies.
func NewShape(v Variant, body []byte) (Shape, error) {
	if !gjson.ValidBytes(body) {
		return Shape{}, fmt.Errorf("%s response is not valid JSON", v)
	}
	r := gjson.ParseBytes(body)
	if !r.IsObject() {
		return Shape{}, fmt.Errorf("%s response is not a JSON object", v)
	}
	return Shape{Variant: v, Raw: r}, nil
}

// AlternateShapes reads the all-in-one response as a profile, a solved-count
// and a calendar body at once.
func AlternateShapes(body []byte) ([]Shape, error) {
	profile, err := NewShape(VariantProfile, body)
	if err != nil {
		return nil, err
	}
	return []Shape{
		profile,
		{Variant: VariantSolved, Raw: profile.Raw},
		{Variant: VariantCalendar, Raw: profile.Raw},
	}, nil
}

type fieldSource struct {
	variant Variant
	path    string
}

// lookup returns the first non-null value along sources, in order.
func lookup(shapes []Shape, sources ...fieldSource) gjson.Result {
	for _, src := range sources {
		for _, s := range shapes {
			if s.Variant != src.variant {
				continue
			}
			if r := s.Raw.Get(src.path); present(r) {
				return r
			}
		}
	}
	return gjson.Result{}
}

type countField struct {
	set     func(*models.LeetCodeRecord, int)
	sources []fieldSource
}

// countFields is the precedence table for every plain counter.
var countFields = []countField{
	{func(r *models.LeetCodeRecord, n int) { r.TotalSolved = n }, []fieldSource{{VariantProfile, "totalSolved"}, {VariantSolved, "solvedProblem"}}},
	{func(r *models.LeetCodeRecord, n int) { r.EasySolved = n }, []fieldSource{{VariantProfile, "easySolved"}, {VariantSolved, "easySolved"}}},
	{func(r *models.LeetCodeRecord, n int) { r.MediumSolved = n }, []fieldSource{{VariantProfile, "mediumSolved"}, {VariantSolved, "mediumSolved"}}},
	{func(r *models.LeetCodeRecord, n int) { r.HardSolved = n }, []fieldSource{{VariantProfile, "hardSolved"}, {VariantSolved, "hardSolved"}}},
	{func(r *models.LeetCodeRecord, n int) { r.TotalQuestions = n }, []fieldSource{{VariantProfile, "totalQuestions"}}},
	{func(r *models.LeetCodeRecord, n int) { r.EasyTotal = n }, []fieldSource{{VariantProfile, "totalEasy"}}},
	{func(r *models.LeetCodeRecord, n int) { r.MediumTotal = n }, []fieldSource{{VariantProfile, "totalMedium"}}},
	{func(r *models.LeetCodeRecord, n int) { r.HardTotal = n }, []fieldSource{{VariantProfile, "totalHard"}}},
	{func(r *models.LeetCodeRecord, n int) { r.ContributionPoints = n }, []fieldSource{{VariantProfile, "contributionPoint"}, {VariantProfile, "contributionPoints"}}},
	{func(r *models.LeetCodeRecord, n int) { r.Reputation = n }, []fieldSource{{VariantProfile, "reputation"}}},
}

var calendarSources = []fieldSource{
	{VariantCalendar, "submissionCalendar"},
	{VariantProfile, "submissionCalendar"},
}

var tagSources = []fieldSource{
	{VariantSkills, "matchedUser.tagProblemCounts"},
	{VariantSkills, "data.matchedUser.tagProblemCounts"},
}

// TagLevels are the proficiency tiers in the order they are flattened.
var TagLevels = []string{"fundamental", "intermediate", "advanced"}

// HasSolvedCount reports whether any shape carries an authoritative solved
// count, which is what makes an acquisition attempt usable.
func HasSolvedCount(shapes []Shape) bool {
	return present(lookup(shapes,
		fieldSource{VariantProfile, "totalSolved"},
		fieldSource{VariantSolved, "solvedProblem"},
	))
}

// MergeLeetCode builds the canonical record from whatever shapes arrived.
func MergeLeetCode(shapes []Shape, now time.Time) models.LeetCodeRecord {
	var rec models.LeetCodeRecord

	for _, f := range countFields {
		f.set(&rec, countOf(lookup(shapes, f.sources...)))
	}

	rec.AcceptanceRate = acceptanceRate(shapes)
	if rank := intOf(lookup(shapes, fieldSource{VariantProfile, "ranking"})); rank > 0 {
		rec.Ranking = models.Rank(rank)
	}

	rec.SubmissionCalendar = ParseCalendar(lookup(shapes, calendarSources...))
	rec.Streak = ComputeStreak(rec.SubmissionCalendar, now)
	rec.TotalActiveDays = ActiveDays(rec.SubmissionCalendar)

	rec.TopicTags = TopicTags(lookup(shapes, tagSources...))
	rec.RecentSubmissions = recentSubmissions(lookup(shapes, fieldSource{VariantProfile, "recentSubmissions"}))

	return rec
}

func acceptanceRate(shapes []Shape) string {
	if rate, ok := floatOf(lookup(shapes, fieldSource{VariantProfile, "acceptanceRate"})); ok {
		return fmt.Sprintf("%.1f%%", rate)
	}

	first := lookup(shapes, fieldSource{VariantProfile, "totalSubmissions.0"})
	if first.IsObject() {
		submissions := intOf(first.Get("submissions"))
		if submissions > 0 {
			accepted := intOf(first.Get("count"))
			return fmt.Sprintf("%.1f%%", float64(accepted)/float64(submissions)*100)
		}
	}
	return models.Unknown
}

// TopicTags flattens the three tiers and orders them by solved count,
// keeping encounter order between equal counts.
func TopicTags(counts gjson.Result) []models.TopicTag {
	tags := []models.TopicTag{}
	if !counts.IsObject() {
		return tags
	}
	for _, level := range TagLevels {
		counts.Get(level).ForEach(func(_, t gjson.Result) bool {
			tags = append(tags, models.TopicTag{
				Name:  t.Get("tagName").String(),
				Count: countOf(t.Get("problemsSolved")),
				Level: level,
			})
			return true
		})
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Count > tags[j].Count
	})
	return tags
}

func recentSubmissions(list gjson.Result) []models.Submission {
	subs := []models.Submission{}
	if !list.IsArray() {
		return subs
	}
	list.ForEach(func(_, s gjson.Result) bool {
		if !s.IsObject() {
			return true
		}
		subs = append(subs, models.Submission{
			Title:         s.Get("title").String(),
			TitleSlug:     s.Get("titleSlug").String(),
			Timestamp:     int64(intOf(s.Get("timestamp"))),
			StatusDisplay: s.Get("statusDisplay").String(),
			Lang:          s.Get("lang").String(),
		})
		return true
	})
	return subs
}
