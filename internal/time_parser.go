// internal/time_parser.go
// ------------------------
// Helpers for turning loosely typed JSON values into whole seconds. The API documents
// retry_after as a number, but clients see it as float64, as a numeric string, or with a
// trailing unit ("30s") depending on the gateway in front of it.
//
// Functions:
// - Seconds: coerce a decoded JSON value to an integer number of seconds.
// - LeadingInt: parse the integer prefix of a string.
package internal

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Seconds converts v to whole seconds. A nil v yields def. Strings contribute their integer
// prefix ("30s" is 30, "abc" is 0), floats are truncated toward zero and booleans are 0.
func Seconds(v any, def int) int {
	switch t := v.(type) {
	case nil:
		return def
	case float64:
		return truncate(t)
	case float32:
		return truncate(float64(t))
	case int:
		return t
	case int64:
		return int(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return int(i)
		}
		if f, err := t.Float64(); err == nil {
			return truncate(f)
		}
		return LeadingInt(string(t))
	case string:
		return LeadingInt(t)
	default:
		return 0
	}
}

// LeadingInt parses the optionally signed integer at the start of s, ignoring leading
// whitespace. It returns 0 when there is none.
func LeadingInt(s string) int {
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
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}
