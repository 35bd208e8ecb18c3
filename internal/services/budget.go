package services

import (
	"time"

	"codetrack/internal/structures"
)

// RefreshBudget is the longest a refresh cycle can take when every attempt
// runs into its timeout. Platforms are fetched concurrently, so the slower
// chain bounds the cycle.
func RefreshBudget(conf *structures.Config) time.Duration {
	lc := conf.Sources.LeetCode
	leetcode := lc.PrimaryTimeout + lc.AlternateTimeout

	gfg := conf.Sources.Gfg
	geeks := gfg.DirectTimeout
	if n := len(gfg.Proxies); n > 0 {
		// every proxy, then the profile page through the first one
		geeks += time.Duration(n+1) * gfg.ProxyTimeout
	}
	return max(leetcode, geeks)
}
