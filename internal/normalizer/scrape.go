package normalizer

import (
	"regexp"
	"strconv"
	"strings"

	"codetrack/internal/models"
)

// SolvedMarker is the substring that tells a non-JSON body still carries
// profile data worth scraping.
const SolvedMarker = "total_problems_solved"

var (
	solvedRe        = regexp.MustCompile(`"total_problems_solved"\s*:\s*(\d+)`)
	scoreRe         = regexp.MustCompile(`"score"\s*:\s*(\d+)`)
	instituteRankRe = regexp.MustCompile(`"institute_rank"\s*:\s*(\d+)`)
	currentStreakRe = regexp.MustCompile(`"pod_solved_current_streak"\s*:\s*(\d+)`)
	longestStreakRe = regexp.MustCompile(`"pod_solved_longest_streak"\s*:\s*(\d+)`)
	instituteNameRe = regexp.MustCompile(`"institute_name"\s*:\s*"([^"]+)"`)
)

func HasSolvedMarker(text string) bool {
	return strings.Contains(text, SolvedMarker)
}

// ScrapeGFG is the last-resort extractor for HTML pages (or any text) that
// embed the profile JSON. Every field it cannot find falls back to its
// default, so a partial page still yields a record.
func ScrapeGFG(text string) models.GFGRecord {
	return models.GFGRecord{
		TotalProblemsSolved: scrapeInt(solvedRe, text),
		CodingScore:         scrapeText(scoreRe, text, models.Unknown),
		CurrentStreak:       scrapeInt(currentStreakRe, text),
		MaxStreak:           scrapeInt(longestStreakRe, text),
		InstituteRank:       scrapeText(instituteRankRe, text, models.Unknown),
		InstituteName:       scrapeText(instituteNameRe, text, ""),
		Languages:           []string{},
	}
}

func scrapeText(re *regexp.Regexp, text, fallback string) string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return fallback
	}
	return m[1]
}

func scrapeInt(re *regexp.Regexp, text string) int {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
