package bench

import (
	"time"

	"git.home.luguber.info/inful/versobench/internal/buildlog"
)

// Request describes one benchmark run.
type Request struct {
	Target       string // Verso checkout being benchmarked
	Output       string // JSON-lines metric file, appended to
	Opt          string // optimization variant, config.OptNone leaves flags untouched
	SkipCheckout bool   // reuse the existing checkout as is
	LOC          bool   // also emit the line-of-code inventory of Target
}

// Status is the final state of a run.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// Stage names, used for logs and as the path of success metrics.
const (
	StageCheckout = "checkout"
	StageCompile  = "compile"
	StageMeasure  = "measure"
	StageRun      = "run"
	StageLOC      = "loc"
)

// Result summarizes a run. It is returned alongside any error, filled in as far as the
// run got.
type Result struct {
	Status   Status
	Root     string
	Commit   string // checked-out commit, empty when the checkout was skipped
	Log      buildlog.Result
	Stages   map[string]time.Duration
	Duration time.Duration
}
