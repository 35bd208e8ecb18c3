package models

import (
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Unknown marks a value the platform did not report, as opposed to zero.
const Unknown = "—"

type Platform string

const (
	PlatformLeetCode Platform = "leetcode"
	PlatformGfg      Platform = "gfg"
)

// Rank is a positive global ranking; zero means unknown.
type Rank int

func (r Rank) Known() bool {
	return r > 0
}

func (r Rank) String() string {
	if !r.Known() {
		return Unknown
	}
	return strconv.Itoa(int(r))
}

func (r Rank) MarshalJSON() ([]byte, error) {
	if !r.Known() {
		return json.Marshal(Unknown)
	}
	return []byte(strconv.Itoa(int(r))), nil
}

func (r *Rank) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		*r = 0
		return nil
	}
	*r = Rank(n)
	return nil
}

// Calendar maps a UTC day-start epoch (seconds) to the submissions of that day.
type Calendar map[int64]int

type TopicTag struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Level string `json:"level"`
}

type Submission struct {
	Title         string `json:"title"`
	TitleSlug     string `json:"titleSlug"`
	Timestamp     int64  `json:"timestamp"`
	StatusDisplay string `json:"statusDisplay"`
	Lang          string `json:"lang"`
}

// LeetCodeRecord is the canonical statistics record of the numeric platform.
// It is built once per refresh and never mutated afterwards.
type LeetCodeRecord struct {
	TotalSolved        int          `json:"totalSolved"`
	EasySolved         int          `json:"easySolved"`
	MediumSolved       int          `json:"mediumSolved"`
	HardSolved         int          `json:"hardSolved"`
	TotalQuestions     int          `json:"totalQuestions"`
	EasyTotal          int          `json:"easyTotal"`
	MediumTotal        int          `json:"mediumTotal"`
	HardTotal          int          `json:"hardTotal"`
	AcceptanceRate     string       `json:"acceptanceRate"`
	Ranking            Rank         `json:"ranking"`
	ContributionPoints int          `json:"contributionPoints"`
	Reputation         int          `json:"reputation"`
	Streak             int          `json:"streak"`
	TotalActiveDays    int          `json:"totalActiveDays"`
	SubmissionCalendar Calendar     `json:"submissionCalendar"`
	TopicTags          []TopicTag   `json:"topicTags"`
	RecentSubmissions  []Submission `json:"recentSubmissions"`
	FromCache          bool         `json:"fromCache"`
}

// GFGRecord is the canonical statistics record of the text platform.
type GFGRecord struct {
	TotalProblemsSolved int      `json:"totalProblemsSolved"`
	CodingScore         string   `json:"codingScore"`
	MonthlyScore        int      `json:"monthlyScore"`
	CurrentStreak       int      `json:"currentStreak"`
	MaxStreak           int      `json:"maxStreak"`
	InstituteRank       string   `json:"instituteRank"`
	InstituteName       string   `json:"instituteName"`
	Languages           []string `json:"languages"`
	FromCache           bool     `json:"fromCache"`
}
