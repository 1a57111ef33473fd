package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyStage      = "stage"
	KeyDurationMS = "duration_ms"
	KeyPath       = "path"
	KeyFile       = "file"
	KeyURL        = "url"
	KeyRevision   = "revision"
	KeyModule     = "module"
	KeyPhase      = "phase"
	KeyCommand    = "command"
	KeyExitCode   = "exit_code"
	KeyMetric     = "metric"
	KeyLine       = "line"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func RunID(id string) slog.Attr       { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr     { return slog.String(KeyStage, name) }
func DurationMS(ms float64) slog.Attr { return slog.Float64(KeyDurationMS, ms) }
func Path(p string) slog.Attr         { return slog.String(KeyPath, p) }
func File(f string) slog.Attr         { return slog.String(KeyFile, f) }
func URL(u string) slog.Attr          { return slog.String(KeyURL, u) }
func Revision(r string) slog.Attr     { return slog.String(KeyRevision, r) }
func Module(m string) slog.Attr       { return slog.String(KeyModule, m) }
func Phase(p string) slog.Attr        { return slog.String(KeyPhase, p) }
func Command(c string) slog.Attr      { return slog.String(KeyCommand, c) }
func ExitCode(c int) slog.Attr        { return slog.Int(KeyExitCode, c) }
func Metric(m string) slog.Attr       { return slog.String(KeyMetric, m) }
func Line(l string) slog.Attr         { return slog.String(KeyLine, l) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
