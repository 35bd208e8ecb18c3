package models

// LedgerSnapshot is the cumulative solved count of one local calendar day.
type LedgerSnapshot struct {
	Date  string `json:"date"`
	LC    int    `json:"lc"`
	GFG   int    `json:"gfg"`
	Total int    `json:"total"`
	// Pending lists platforms that were never observed when this entry was
	// written; their value is a placeholder until a baseline replaces it.
	Pending []Platform `json:"pending,omitempty"`
}

func NewLedgerSnapshot(date string, lc, gfg int) LedgerSnapshot {
	return LedgerSnapshot{Date: date, LC: lc, GFG: gfg, Total: lc + gfg}
}

func (s LedgerSnapshot) IsPending(p Platform) bool {
	for _, q := range s.Pending {
		if q == p {
			return true
		}
	}
	return false
}

// WithValue returns a copy with p set to n and p no longer pending.
func (s LedgerSnapshot) WithValue(p Platform, n int) LedgerSnapshot {
	switch p {
	case PlatformLeetCode:
		s.LC = n
	case PlatformGfg:
		s.GFG = n
	}
	s.Total = s.LC + s.GFG

	var pending []Platform
	for _, q := range s.Pending {
		if q != p {
			pending = append(pending, q)
		}
	}
	s.Pending = pending
	return s
}

func (s LedgerSnapshot) Value(p Platform) int {
	switch p {
	case PlatformLeetCode:
		return s.LC
	case PlatformGfg:
		return s.GFG
	default:
		return s.Total
	}
}

type DailyDelta struct {
	Date     string `json:"date"`
	LC       int    `json:"lc"`
	GFG      int    `json:"gfg"`
	Total    int    `json:"total"`
	LCDelta  int    `json:"lcDelta"`
	GFGDelta int    `json:"gfgDelta"`
	DayTotal int    `json:"dayTotal"`
}

type GoalProgress struct {
	Done    int     `json:"done"`
	Goal    int     `json:"goal"`
	Percent float64 `json:"percent"`
}

type LedgerSummary struct {
	Date           string       `json:"date"`
	LCToday        GoalProgress `json:"lcToday"`
	GFGToday       GoalProgress `json:"gfgToday"`
	Week           GoalProgress `json:"week"`
	TrackingStreak int          `json:"trackingStreak"`
	BestDay        int          `json:"bestDay"`
	AveragePerDay  float64      `json:"averagePerDay"`
	TotalSolved    int          `json:"totalSolved"`
	Entries        int          `json:"entries"`
}
