package metrics

// Recorder mirrors records into another metrics system. Implementations must be
// safe to call with non-numeric values and ignore what they cannot represent.
type Recorder interface {
	Observe(r Record)
}

// NoopRecorder is a Recorder that does nothing (default when no mirror is configured).
type NoopRecorder struct{}

func (NoopRecorder) Observe(Record) {}
