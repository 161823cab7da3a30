package component

import (
	"encoding/json"
	"math"
	"strings"
)

const (
	DefaultPadding = 16
	DefaultMargin  = 0
)

// DefaultSpacing is the value shown for an edge that has never been set.
func DefaultSpacing(box SpacingBox) int {
	if box == SpacingPadding {
		return DefaultPadding
	}
	return DefaultMargin
}

// ParseSpacing reads the leading integer of raw the way a browser's
// parseInt does ("12px" is 12, "3.9" is 3). Anything without a leading
// integer yields 0.
func ParseSpacing(raw string) int {
	s := strings.TrimLeft(raw, " \t\n\r")
	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}
	n := 0
	digits := 0
	for digits < len(s) && s[digits] >= '0' && s[digits] <= '9' {
		if n > (math.MaxInt32-int(s[digits]-'0'))/10 {
			n = math.MaxInt32
		} else {
			n = n*10 + int(s[digits]-'0')
		}
		digits++
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -n
	}
	return n
}

// SpacingValue returns styles[box][edge], or the box default when absent.
func SpacingValue(c *Component, box SpacingBox, edge Edge) int {
	sub, ok := asMap(c.Styles[string(box)])
	if !ok {
		return DefaultSpacing(box)
	}
	v, ok := sub[string(edge)]
	if !ok || v == nil {
		return DefaultSpacing(box)
	}
	return toInt(v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case int32:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
		if f, err := n.Float64(); err == nil {
			return int(f)
		}
	case string:
		return ParseSpacing(n)
	}
	return 0
}
