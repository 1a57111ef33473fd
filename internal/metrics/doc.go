// Package metrics provides the append-only metric stream written by versobench.
//
// # Records
//
// Every measurement is a Record: a hierarchical path, a short submetric label, a
// tagged Value carrying its Unit, and whether a higher value is better. Records are
// serialised as one JSON object per line:
//
//	{"metric":"verso/build/Foo.Bar//eval time","value":0.12,"unit":"s","direction":-1}
//
// # Sinks
//
// Components receive a Sink through dependency injection and never reach for
// package-level state:
//
//	sink := metrics.NewFileSink(output, metrics.WithRoot("verso"))
//	_ = sink.Record("build/Foo.Bar", "eval time", metrics.Seconds(0.12), false)
//
// FileSink reopens its destination for every record so that a crash leaves every
// earlier record on disk. MemorySink collects records for tests.
//
// # Mirroring
//
// A Sink may forward numeric records to a Recorder. NoopRecorder is the default;
// PrometheusRecorder keeps a gauge per metric that can be exported in the
// node_exporter textfile format at the end of a run.
package metrics
