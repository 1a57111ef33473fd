package metrics

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	ferrors "git.home.luguber.info/inful/versobench/internal/foundation/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLines(t *testing.T, path string) []map[string]any {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var out []map[string]any
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var m map[string]any
		require.NoError(t, json.Unmarshal(sc.Bytes(), &m))
		out = append(out, m)
	}
	require.NoError(t, sc.Err())
	return out
}

func TestFileSink_AppendsInOrder(t *testing.T) {
	out := filepath.Join(t.TempDir(), "metrics.jsonl")
	require.NoError(t, os.WriteFile(out, []byte(`{"metric":"earlier//x","value":1,"unit":null,"direction":1}`+"\n"), 0o644))

	var diag bytes.Buffer
	sink := NewFileSink(out, WithRoot("verso"), WithDiagnostics(&diag))

	require.NoError(t, sink.Record("build/Foo.Bar", "eval time", Seconds(0.12), false))
	require.NoError(t, sink.Record("build/.total", "generated olean", Bytes(1234), false))
	require.NoError(t, RecordInferred(sink, "test/suspiciousness", "loc", "97%", false))

	lines := readLines(t, out)
	require.Len(t, lines, 4)
	assert.Equal(t, "earlier//x", lines[0]["metric"])
	assert.Equal(t, "verso/build/Foo.Bar//eval time", lines[1]["metric"])
	assert.Equal(t, 0.12, lines[1]["value"])
	assert.Equal(t, "s", lines[1]["unit"])
	assert.Equal(t, float64(-1), lines[1]["direction"])
	assert.Equal(t, "B", lines[2]["unit"])
	assert.Equal(t, float64(97), lines[3]["value"])
	assert.Equal(t, "%", lines[3]["unit"])

	assert.Equal(t,
		"verso/build/Foo.Bar//eval time -> 0.12 s\n"+
			"verso/build/.total//generated olean -> 1,234 B\n"+
			"verso/test/suspiciousness//loc -> 97%\n",
		diag.String())
}

func TestFileSink_NoHeldHandle(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "metrics.jsonl")
	sink := NewFileSink(out, WithDiagnostics(&bytes.Buffer{}))

	require.NoError(t, sink.Record("a", "b", Count(1), true))
	// Moving the file away between writes must not redirect later writes into it.
	require.NoError(t, os.Rename(out, filepath.Join(dir, "moved.jsonl")))
	require.NoError(t, sink.Record("a", "c", Count(2), true))

	assert.Len(t, readLines(t, out), 1)
	assert.Len(t, readLines(t, filepath.Join(dir, "moved.jsonl")), 1)
}

func TestFileSink_UnwritableDestination(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "metrics.jsonl")
	sink := NewFileSink(out, WithDiagnostics(&bytes.Buffer{}))

	err := sink.Record("a", "b", Count(1), true)
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryFileSystem))
}

type captureRecorder struct{ got []Record }

func (c *captureRecorder) Observe(r Record) { c.got = append(c.got, r) }

func TestFileSink_MirrorsToRecorder(t *testing.T) {
	rec := &captureRecorder{}
	sink := NewFileSink(filepath.Join(t.TempDir(), "m.jsonl"), WithRecorder(rec), WithDiagnostics(&bytes.Buffer{}))

	require.NoError(t, sink.Record("compile", "success", Count(1), true))
	require.Len(t, rec.got, 1)
	assert.Equal(t, "compile//success", rec.got[0].Metric)
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink("root")
	require.NoError(t, sink.Record("build/A", "eval time", Seconds(1), false))
	require.NoError(t, sink.Record("build/B", "eval time", Seconds(2), false))

	records := sink.Records()
	require.Len(t, records, 2)
	assert.Equal(t, "root/build/A//eval time", records[0].Metric)

	r, ok := sink.Find("build/B", "eval time")
	require.True(t, ok)
	assert.Equal(t, 2.0, r.Value.Float())

	_, ok = sink.Find("build/C", "eval time")
	assert.False(t, ok)
}
