package metrics

import (
	"regexp"
	"strconv"
	"strings"
)

var suffixPattern = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?)([A-Za-z]+|%)?$`)

// Infer converts a free-form value such as "120ms", "97%" or "3files" into a tagged
// Value. It never fails:
//
//	"<N>ms"      -> N/1000 seconds
//	"<N>s"       -> N seconds
//	"<N>%"       -> N percent
//	"<N><alpha>" -> N with the letters as an ad hoc unit
//	"<N>"        -> N with no unit
//
// Anything else is kept as an opaque string with no unit.
func Infer(raw string) Value {
	s := strings.TrimSpace(raw)
	m := suffixPattern.FindStringSubmatch(s)
	if m == nil {
		return Text(raw)
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return Text(raw)
	}
	switch suffix := m[2]; suffix {
	case "ms":
		return Seconds(n / 1000)
	case "s":
		return Seconds(n)
	case "%":
		return Percent(n)
	case "":
		return Count(n)
	default:
		return Number(n, Unit(suffix))
	}
}
