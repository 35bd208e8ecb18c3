package models

type FailureKind string

const (
	FailureRateLimited FailureKind = "rate_limited"
	FailureUnavailable FailureKind = "unavailable"
)

// PlatformFailure is what the presentation layer shows instead of a record.
type PlatformFailure struct {
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

type RefreshResult struct {
	CycleID  string           `json:"cycleId"`
	LC       *LeetCodeRecord  `json:"lc,omitempty"`
	GFG      *GFGRecord       `json:"gfg,omitempty"`
	LCError  *PlatformFailure `json:"lcError,omitempty"`
	GFGError *PlatformFailure `json:"gfgError,omitempty"`
	Summary  LedgerSummary    `json:"summary"`
}
