package style

import (
	"strconv"
	"strings"
)

// Kind selects which section of a style backend is consulted.
type Kind string

// Style kinds
const (
	KindEdge Kind = "edge"
	KindPath Kind = "path"
	KindCell Kind = "cell"
)

// Record is a flat property record as returned by a backend. A missing or
// blank value means the property is unset.
type Record map[string]string

// String returns the trimmed value of key, or def when unset.
func (r Record) String(key, def string) string {
	v := strings.TrimSpace(r[key])
	if v == "" {
		return def
	}
	return v
}

// Float returns the leading number of the value at key. Unset, unparsable
// and zero values all yield def.
func (r Record) Float(key string, def float64) float64 {
	v, ok := leadingFloat(r[key])
	if !ok || v == 0 {
		return def
	}
	return v
}

// Flag interprets the value at key as "1"/"0" style switch.
func (r Record) Flag(key string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(r[key])) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return def
	}
}

// merge copies every set property of src over r.
func (r Record) merge(src Record) {
	for k, v := range src {
		if strings.TrimSpace(v) != "" {
			r[k] = v
		}
	}
}

// leadingFloat parses the numeric prefix of s, so "12px" reads as 12.
func leadingFloat(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) {
		c := s[end]
		if (c >= '0' && c <= '9') || c == '.' || ((c == '-' || c == '+') && end == 0) ||
			((c == 'e' || c == 'E') && end > 0 && end+1 < len(s) && isExpTail(s[end+1])) {
			end++
			continue
		}
		break
	}
	for end > 0 {
		if v, err := strconv.ParseFloat(s[:end], 64); err == nil {
			return v, true
		}
		end--
	}
	return 0, false
}

func isExpTail(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+'
}
