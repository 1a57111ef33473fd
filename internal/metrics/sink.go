package metrics

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"sync"

	ferrors "git.home.luguber.info/inful/versobench/internal/foundation/errors"
	"git.home.luguber.info/inful/versobench/internal/logfields"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Sink receives metric records. Implementations must preserve call order.
type Sink interface {
	Record(path, submetric string, v Value, higherIsBetter bool) error
}

// RecordInferred records a free-form value, applying Infer to derive its unit.
func RecordInferred(s Sink, path, submetric, raw string, higherIsBetter bool) error {
	return s.Record(path, submetric, Infer(raw), higherIsBetter)
}

// Option configures a FileSink.
type Option func(*FileSink)

// WithRoot sets the run-specific label prefixed to every metric name.
func WithRoot(root string) Option { return func(s *FileSink) { s.root = root } }

// WithDiagnostics sets where the human-readable line for each record goes.
func WithDiagnostics(w io.Writer) Option { return func(s *FileSink) { s.diag = w } }

// WithRecorder mirrors every record into r.
func WithRecorder(r Recorder) Option { return func(s *FileSink) { s.recorder = r } }

// FileSink appends JSON lines to a file. The file is opened and closed for every
// record; no handle is held between calls.
type FileSink struct {
	path     string
	root     string
	diag     io.Writer
	recorder Recorder
	printer  *message.Printer
}

// NewFileSink creates a sink appending to path.
func NewFileSink(path string, opts ...Option) *FileSink {
	s := &FileSink{
		path:     path,
		diag:     os.Stdout,
		recorder: NoopRecorder{},
		printer:  message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the destination file.
func (s *FileSink) Path() string { return s.path }

// Root returns the metric root label.
func (s *FileSink) Root() string { return s.root }

// Record writes one record and its diagnostic line.
func (s *FileSink) Record(path, submetric string, v Value, higherIsBetter bool) error {
	rec := NewRecord(s.root, path, submetric, v, higherIsBetter)
	line, err := json.Marshal(rec)
	if err != nil {
		return ferrors.WrapError(err, ferrors.CategoryInternal, "encode metric record").
			WithContext(logfields.KeyMetric, rec.Metric).
			Fatal().
			Build()
	}
	if err := appendLine(s.path, line); err != nil {
		return ferrors.WrapError(err, ferrors.CategoryFileSystem, "append metric record").
			WithContext(logfields.KeyPath, s.path).
			Fatal().
			Build()
	}
	_, _ = fmt.Fprintf(s.diag, "%s -> %s\n", rec.Metric, s.display(v))
	s.recorder.Observe(rec)
	return nil
}

func appendLine(path string, line []byte) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.Write(append(line, '\n')); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// display renders a value for humans, grouping digits of whole numbers.
func (s *FileSink) display(v Value) string {
	if !v.IsNumeric() {
		return v.String()
	}
	var num string
	if f := v.Float(); f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		num = s.printer.Sprintf("%d", int64(f))
	} else {
		num = v.String()
	}
	switch u := v.Unit(); u {
	case UnitNone:
		return num
	case UnitPercent:
		return num + "%"
	default:
		return num + " " + string(u)
	}
}

// MemorySink collects records in memory.
type MemorySink struct {
	mu      sync.Mutex
	root    string
	records []Record
}

// NewMemorySink creates an in-memory sink using root as the metric prefix.
func NewMemorySink(root string) *MemorySink { return &MemorySink{root: root} }

// Record stores the record.
func (m *MemorySink) Record(path, submetric string, v Value, higherIsBetter bool) error {
	rec := NewRecord(m.root, path, submetric, v, higherIsBetter)
	m.mu.Lock()
	m.records = append(m.records, rec)
	m.mu.Unlock()
	slog.Debug("Recorded metric", logfields.Metric(rec.Metric), slog.String("value", v.String()))
	return nil
}

// Records returns a copy of everything recorded so far, in order.
func (m *MemorySink) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Find returns the first record with the given path and submetric.
func (m *MemorySink) Find(path, submetric string) (Record, bool) {
	for _, r := range m.Records() {
		if r.Path == path && r.Submetric == submetric {
			return r, true
		}
	}
	return Record{}, false
}
