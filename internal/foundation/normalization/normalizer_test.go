package normalization

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type level string

const (
	levelLow  level = "low"
	levelHigh level = "high"
)

func newLevels() *Normalizer[level] {
	return NewNormalizer(map[string]level{
		"low":  levelLow,
		"HIGH": levelHigh,
	}, levelLow)
}

func TestNormalize(t *testing.T) {
	n := newLevels()
	tests := []struct {
		in   string
		want level
	}{
		{"low", levelLow},
		{"  High ", levelHigh},
		{"high", levelHigh},
		{"bogus", levelLow},
		{"", levelLow},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestParse(t *testing.T) {
	n := newLevels()

	got, err := n.Parse("HIGH")
	require.NoError(t, err)
	assert.Equal(t, levelHigh, got)

	_, err = n.Parse("medium")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"medium"`)
	assert.Contains(t, err.Error(), "[high low]")
}

func TestKeys_SortedCopy(t *testing.T) {
	n := newLevels()
	keys := n.Keys()
	assert.Equal(t, []string{"high", "low"}, keys)

	keys[0] = "mutated"
	assert.Equal(t, []string{"high", "low"}, n.Keys())
}
