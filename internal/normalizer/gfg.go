package normalizer

import (
	"sort"
	"strings"

	"github.com/tidwall/gjson"

	"codetrack/internal/models"
)

// GfgSuccessMessage is the message the authoritative API sends with real data.
const GfgSuccessMessage = "data retrieved successfully"

// ParseGfgAPI reads the profile-info API envelope. When strict is set the
// envelope must also carry the success message, as the direct API does.
func ParseGfgAPI(body []byte, strict bool) (models.GFGRecord, bool) {
	if !gjson.ValidBytes(body) {
		return models.GFGRecord{}, false
	}
	env := gjson.ParseBytes(body)
	data := env.Get("data")
	if !data.IsObject() {
		return models.GFGRecord{}, false
	}
	if strict && env.Get("message").String() != GfgSuccessMessage {
		return models.GFGRecord{}, false
	}
	return GfgFromData(data), true
}

// UnwrapContents extracts the proxied body from a {"contents": "..."} envelope.
func UnwrapContents(body []byte) ([]byte, bool) {
	if !gjson.ValidBytes(body) {
		return nil, false
	}
	contents := gjson.GetBytes(body, "contents")
	if contents.Type != gjson.String || contents.Str == "" {
		return nil, false
	}
	return []byte(contents.Str), true
}

func GfgFromData(d gjson.Result) models.GFGRecord {
	return models.GFGRecord{
		TotalProblemsSolved: countOf(d.Get("total_problems_solved")),
		CodingScore:         textOf(d.Get("score"), models.Unknown),
		MonthlyScore:        countOf(d.Get("monthly_score")),
		CurrentStreak:       countOf(d.Get("pod_solved_current_streak")),
		MaxStreak:           countOf(d.Get("pod_solved_longest_streak")),
		InstituteRank:       textOf(d.Get("institute_rank"), models.Unknown),
		InstituteName:       textOf(d.Get("institute_name"), ""),
		Languages:           languages(d.Get("languages_used")),
	}
}

// languages accepts an object keyed by language, an array, or a
// comma-separated string. The result is a sorted set.
func languages(r gjson.Result) []string {
	seen := map[string]struct{}{}
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			seen[s] = struct{}{}
		}
	}

	switch {
	case r.IsObject():
		r.ForEach(func(k, _ gjson.Result) bool {
			add(k.String())
			return true
		})
	case r.IsArray():
		r.ForEach(func(_, v gjson.Result) bool {
			add(v.String())
			return true
		})
	case r.Type == gjson.String:
		for _, s := range strings.Split(r.Str, ",") {
			add(s)
		}
	}

	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
