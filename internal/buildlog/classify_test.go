package buildlog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	p := NewParser()

	tests := []struct {
		name     string
		line     string
		kind     Kind
		module   string
		phase    string
		duration float64
	}{
		{"lean module ms", "✔ [3/10] Built Foo.Bar (120ms)", KindLeanModule, "Foo.Bar", "", 0.12},
		{"lean module s", "⚠ [7/10] Built Manual.Intro (1.5s)", KindLeanModule, "Manual.Intro", "", 1.5},
		{"native ir", "✔ [4/10] Built Foo.Bar:ir (2.5s)", KindNativeArtifact, "Foo.Bar", "ir", 2.5},
		{"native dotted phase", "✔ [5/10] Built Foo.Bar:c.o (300ms)", KindNativeArtifact, "Foo.Bar", "c.o", 0.3},
		{"anomaly no duration", "✔ [6/10] Built Foo.Bar", KindAnomaly, "", "", 0},
		{"anomaly extra words", "✔ [6/10] Built Foo Bar (1s)", KindAnomaly, "", "", 0},
		{"plain", "info: compiling", KindPlain, "", "", 0},
		{"plain built without bracket", "Built Foo (1s)", KindPlain, "", "", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := p.Classify(tt.line)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, c.Kind, c.Kind.String())
			assert.Equal(t, tt.module, c.Module)
			assert.Equal(t, tt.phase, c.Phase)
			assert.InDelta(t, tt.duration, c.Duration, 1e-12)
			assert.Equal(t, tt.line, c.Line)
		})
	}
}

func TestClassify_BadDuration(t *testing.T) {
	c, err := NewParser().Classify("✔ [3/10] Built Foo.Bar (12min)")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadDuration))
	assert.Equal(t, KindLeanModule, c.Kind)
}

func TestClassify_FirstRuleWins(t *testing.T) {
	catchAll := Rule{Name: "all-built", Kind: KindAnomaly, Pattern: DefaultRules()[2].Pattern}
	p := NewParser(WithRules(append([]Rule{catchAll}, DefaultRules()...)))

	c, err := p.Classify("✔ [3/10] Built Foo.Bar (120ms)")
	require.NoError(t, err)
	assert.Equal(t, KindAnomaly, c.Kind)
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "plain", KindPlain.String())
	assert.Equal(t, "lean-module-built", KindLeanModule.String())
	assert.Equal(t, "native-artifact-built", KindNativeArtifact.String())
	assert.Equal(t, "unrecognized-built-marker", KindAnomaly.String())
}
