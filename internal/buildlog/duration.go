package buildlog

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrBadDuration is returned for elapsed-time strings that are neither "<N>ms" nor "<N>s".
var ErrBadDuration = errors.New("unparseable duration")

var durationPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)(ms|s)$`)

// ParseDuration converts "120ms" or "2.5s" to seconds.
func ParseDuration(s string) (float64, error) {
	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDuration, s)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrBadDuration, s, err)
	}
	if m[2] == "ms" {
		return n / 1000, nil
	}
	return n, nil
}
