// Package timeutil parses and prints the compact durations used for dataset
// retention, such as "2w" or "1d12h".
package timeutil

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

type unit struct {
	label   string
	value   time.Duration
	aliases []string
}

// units is ordered largest first.
var units = []unit{
	{"w", 7 * 24 * time.Hour, []string{"wk", "wks", "week", "weeks"}},
	{"d", 24 * time.Hour, []string{"day", "days"}},
	{"h", time.Hour, []string{"hr", "hrs", "hour", "hours"}},
	{"m", time.Minute, []string{"min", "mins", "minute", "minutes"}},
	{"s", time.Second, []string{"sec", "secs", "second", "seconds"}},
}

var segment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)

func lookup(label string) (time.Duration, bool) {
	for _, u := range units {
		if u.label == label {
			return u.value, true
		}
		for _, a := range u.aliases {
			if a == label {
				return u.value, true
			}
		}
	}
	return 0, false
}

// ParseAge parses a sum of segments such as "1w2d" or "36 hours". The
// result must be positive.
func ParseAge(input string) (time.Duration, error) {
	rest := strings.ToLower(strings.TrimSpace(input))
	if rest == "" {
		return 0, fmt.Errorf("empty age")
	}
	var total time.Duration
	for len(rest) > 0 {
		m := segment.FindStringSubmatch(rest)
		if m == nil {
			return 0, fmt.Errorf("invalid age segment %q", strings.TrimSpace(rest))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid age value %q: %w", m[1], err)
		}
		base, ok := lookup(m[2])
		if !ok {
			return 0, fmt.Errorf("unsupported age unit %q", m[2])
		}
		total += time.Duration(n) * base
		rest = rest[len(m[0]):]
	}
	if total <= 0 {
		return 0, fmt.Errorf("age must be greater than zero")
	}
	return total, nil
}

// FormatAge renders d with its two largest non-zero units, e.g. "3d4h".
// Anything under a second is "now".
func FormatAge(d time.Duration) string {
	var parts []string
	for _, u := range units {
		if len(parts) == 2 {
			break
		}
		if d < u.value {
			if len(parts) > 0 {
				break
			}
			continue
		}
		n := d / u.value
		d -= n * u.value
		parts = append(parts, fmt.Sprintf("%d%s", n, u.label))
	}
	if len(parts) == 0 {
		return "now"
	}
	return strings.Join(parts, "")
}
