package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder_Observe(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.Observe(NewRecord("verso", "build/Foo.Bar", "eval time", Seconds(0.12), false))
	pr.Observe(NewRecord("verso", "build/Foo.Bar", "eval time", Seconds(0.5), false))
	pr.Observe(NewRecord("verso", "run", "note", Text("n/a"), true))

	assert.InDelta(t, 0.5, testutil.ToFloat64(pr.values.WithLabelValues("build/Foo.Bar", "eval time", "s")), 1e-12)
	assert.Equal(t, 2.0, testutil.ToFloat64(pr.records.WithLabelValues("s")))
	assert.Equal(t, 1.0, testutil.ToFloat64(pr.records.WithLabelValues("")))
	assert.Equal(t, 1, testutil.CollectAndCount(pr.values))
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.Observe(NewRecord("", "build/.total", "generated olean", Bytes(100), false))

	path := filepath.Join(t.TempDir(), "versobench.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, "versobench_metric_value"), text)
	assert.True(t, strings.Contains(text, `submetric="generated olean"`), text)
}

func TestNoopRecorder(t *testing.T) {
	assert.NotPanics(t, func() { NoopRecorder{}.Observe(Record{}) })
}
