package normalizer

import (
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// present reports whether a value exists and is not JSON null.
func present(r gjson.Result) bool {
	return r.Exists() && r.Type != gjson.Null
}

// leadingInt parses the integer prefix of s the way a lenient parseInt does:
// "12abc" is 12, "abc" is not a number.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// intOf normalizes any upstream value to an int. Missing or non-numeric
// values become 0.
func intOf(r gjson.Result) int {
	switch r.Type {
	case gjson.Number:
		f := r.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return 0
		}
		return int(f)
	case gjson.String:
		n, _ := leadingInt(r.Str)
		return n
	default:
		return 0
	}
}

// countOf is intOf clamped at zero.
func countOf(r gjson.Result) int {
	return max(intOf(r), 0)
}

func floatOf(r gjson.Result) (float64, bool) {
	switch r.Type {
	case gjson.Number:
		return r.Float(), true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(r.Str), "%"), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// textOf renders a scalar as the upstream showed it, or Unknown.
func textOf(r gjson.Result, fallback string) string {
	switch r.Type {
	case gjson.String:
		if r.Str == "" {
			return fallback
		}
		return r.Str
	case gjson.Number:
		return r.Raw
	default:
		return fallback
	}
}
