package buildlog

import (
	"regexp"
)

// Kind is the mutually exclusive classification of one build output line.
type Kind int

const (
	KindPlain Kind = iota
	KindLeanModule
	KindNativeArtifact
	KindAnomaly
)

func (k Kind) String() string {
	switch k {
	case KindLeanModule:
		return "lean-module-built"
	case KindNativeArtifact:
		return "native-artifact-built"
	case KindAnomaly:
		return "unrecognized-built-marker"
	default:
		return "plain"
	}
}

// Classification is the result of classifying a single line.
type Classification struct {
	Kind     Kind
	Line     string
	Module   string
	Phase    string  // set for KindNativeArtifact
	Duration float64 // seconds; set for KindLeanModule and KindNativeArtifact
}

// Rule pairs a pattern with the kind it assigns. Capture groups are interpreted per
// kind: (module, duration) for KindLeanModule and (module, phase, duration) for
// KindNativeArtifact. KindAnomaly rules need no groups.
type Rule struct {
	Name    string
	Kind    Kind
	Pattern *regexp.Regexp
}

// DefaultRules returns the rules for lake's progress output, in priority order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name:    "lean-module",
			Kind:    KindLeanModule,
			Pattern: regexp.MustCompile(`^\S+\s+\[\d+/\d+\]\s+Built\s+([^\s:()]+)\s+\(([^)]+)\)\s*$`),
		},
		{
			Name:    "native-artifact",
			Kind:    KindNativeArtifact,
			Pattern: regexp.MustCompile(`^\S+\s+\[\d+/\d+\]\s+Built\s+([^\s:()]+):([^\s()]+)\s+\(([^)]+)\)\s*$`),
		},
		{
			Name:    "built-marker",
			Kind:    KindAnomaly,
			Pattern: regexp.MustCompile(`\] Built`),
		},
	}
}

// classify applies rules in order. The returned error is a duration error for a line
// that otherwise matched a strict rule; the classification still names its kind.
func classify(rules []Rule, line string) (Classification, error) {
	for _, rule := range rules {
		m := rule.Pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		c := Classification{Kind: rule.Kind, Line: line}
		var raw string
		switch rule.Kind {
		case KindLeanModule:
			c.Module, raw = m[1], m[2]
		case KindNativeArtifact:
			c.Module, c.Phase, raw = m[1], m[2], m[3]
		default:
			return c, nil
		}
		d, err := ParseDuration(raw)
		if err != nil {
			return c, err
		}
		c.Duration = d
		return c, nil
	}
	return Classification{Kind: KindPlain, Line: line}, nil
}
