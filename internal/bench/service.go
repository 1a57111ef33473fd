// Package bench sequences a benchmark run: check out and patch the manual, build it,
// scrape the build log and outputs, then time the generated executable. Every step
// reports into one metrics.Sink, and failures of the checkout, compile and run steps
// are recorded as success metrics before the run stops.
package bench

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/versobench/internal/artifacts"
	"git.home.luguber.info/inful/versobench/internal/buildlog"
	"git.home.luguber.info/inful/versobench/internal/checkout"
	"git.home.luguber.info/inful/versobench/internal/config"
	ferrors "git.home.luguber.info/inful/versobench/internal/foundation/errors"
	"git.home.luguber.info/inful/versobench/internal/git"
	"git.home.luguber.info/inful/versobench/internal/loc"
	"git.home.luguber.info/inful/versobench/internal/logfields"
	"git.home.luguber.info/inful/versobench/internal/metrics"
	"git.home.luguber.info/inful/versobench/internal/observability"
	"git.home.luguber.info/inful/versobench/internal/process"
	"git.home.luguber.info/inful/versobench/internal/workspace"
)

// Service runs benchmarks against one configuration.
type Service struct {
	cfg      *config.Config
	git      checkout.RevisionCheckout
	runner   process.Runner
	recorder metrics.Recorder
	stdout   io.Writer
	stderr   io.Writer
}

// NewService creates a service using go-git and real subprocesses.
func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg:      cfg,
		git:      git.NewClient(nil),
		runner:   &process.ExecRunner{},
		recorder: metrics.NoopRecorder{},
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

// WithGit replaces the checkout client (for testing).
func (s *Service) WithGit(g checkout.RevisionCheckout) *Service {
	s.git = g
	return s
}

// WithRunner replaces the subprocess runner (for testing).
func (s *Service) WithRunner(r process.Runner) *Service {
	s.runner = r
	return s
}

// WithRecorder mirrors every record into r.
func (s *Service) WithRecorder(r metrics.Recorder) *Service {
	s.recorder = r
	return s
}

// WithOutput redirects the diagnostic lines and the passthrough build output.
func (s *Service) WithOutput(stdout, stderr io.Writer) *Service {
	s.stdout = stdout
	s.stderr = stderr
	return s
}

// run carries the per-run state shared by the steps.
type run struct {
	req    Request
	ws     *workspace.Manager
	sink   metrics.Sink
	result *Result
}

type step struct {
	name string
	fn   func(context.Context, *run) error
}

// Run executes the benchmark. The returned error is classified; the result is always
// non-nil.
func (s *Service) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	result := &Result{Status: StatusFailed, Root: s.cfg.Root(req.Opt), Stages: map[string]time.Duration{}}
	defer func() { result.Duration = time.Since(start) }()

	flags, err := s.cfg.ResolveFlags(req.Opt)
	if err != nil {
		return result, err
	}
	if req.Target == "" || req.Output == "" {
		return result, ferrors.ValidationError("target and output are required").Build()
	}

	r := &run{
		req: req,
		ws:  workspace.NewManager(s.cfg.Manual.BaseDir, s.cfg.Manual.Subdir),
		sink: metrics.NewFileSink(req.Output,
			metrics.WithRoot(result.Root),
			metrics.WithDiagnostics(s.stdout),
			metrics.WithRecorder(s.recorder)),
		result: result,
	}
	ctx = observability.WithRun(ctx, result.Root, req.Opt)
	observability.InfoContext(ctx, "Starting benchmark", logfields.Path(req.Target), logfields.File(req.Output))

	steps := []step{
		{StageCheckout, func(ctx context.Context, r *run) error { return s.checkout(ctx, r, flags) }},
		{StageCompile, s.compile},
		{StageMeasure, s.measure},
		{StageRun, s.execute},
	}
	if req.LOC {
		steps = append(steps, step{StageLOC, s.countLines})
	}

	for _, st := range steps {
		stageStart := time.Now()
		stageCtx := observability.WithStage(ctx, st.name)
		err := st.fn(stageCtx, r)
		result.Stages[st.name] = time.Since(stageStart)
		if err != nil {
			if ctx.Err() != nil {
				result.Status = StatusCanceled
			}
			observability.ErrorContext(stageCtx, "Benchmark step failed", logfields.Error(err))
			return result, err
		}
		observability.DebugContext(stageCtx, "Benchmark step finished",
			logfields.DurationMS(float64(result.Stages[st.name].Microseconds())/1000))
	}

	result.Status = StatusSuccess
	observability.InfoContext(ctx, "Benchmark finished",
		slog.Int("modules", result.Log.Modules), slog.Duration("duration", time.Since(start)))
	return result, nil
}

// recordSuccess writes <stage>//success as 1 or 0.
func recordSuccess(sink metrics.Sink, stage string, ok bool) error {
	v := 0.0
	if ok {
		v = 1
	}
	return sink.Record(stage, "success", metrics.Count(v), true)
}

// failStage records the failure metric and returns cause, unless recording itself
// failed, which takes precedence.
func failStage(sink metrics.Sink, stage string, cause error) error {
	if err := recordSuccess(sink, stage, false); err != nil {
		return err
	}
	return cause
}

func (s *Service) checkout(ctx context.Context, r *run, flags []string) error {
	if r.req.SkipCheckout {
		if !r.ws.HasCheckout() {
			return failStage(r.sink, StageCheckout, ferrors.CheckoutError("no existing checkout to reuse").
				WithContext(logfields.KeyPath, r.ws.GetPath()).
				Build())
		}
		commit, err := git.HeadCommit(r.ws.GetPath())
		if err != nil {
			observability.WarnContext(ctx, "Existing checkout has no readable HEAD", logfields.Error(err))
		}
		r.result.Commit = commit
		observability.InfoContext(ctx, "Reusing existing checkout", logfields.Path(r.ws.GetPath()), logfields.Revision(commit))
		return nil
	}

	if err := r.ws.Create(); err != nil {
		return failStage(r.sink, StageCheckout, ferrors.CheckoutError("create workspace").WithCause(err).Build())
	}
	prep := checkout.NewPreparer(s.git, s.runner)
	commit, err := prep.Prepare(ctx, checkout.Request{
		Target:    r.req.Target,
		PinFile:   s.cfg.Manual.PinFile,
		URL:       s.cfg.Manual.URL,
		Dir:       r.ws.GetPath(),
		Lakefile:  s.cfg.Manual.Lakefile,
		Flags:     flags,
		UpdateCmd: s.cfg.Commands.Update,
	})
	if err != nil {
		return failStage(r.sink, StageCheckout, err)
	}
	r.result.Commit = commit
	return recordSuccess(r.sink, StageCheckout, true)
}

func (s *Service) compile(ctx context.Context, r *run) error {
	argv := s.cfg.Commands.Build
	cmd := process.Command{Name: argv[0], Args: argv[1:], Dir: r.ws.GetPath()}
	observability.InfoContext(ctx, "Building", logfields.Command(cmd.String()), logfields.Path(cmd.Dir))

	res, runErr := s.runner.Run(ctx, cmd)
	if !errors.Is(runErr, process.ErrCommandNotFound) {
		if err := r.sink.Record("build", "wall time", metrics.Seconds(res.Duration.Seconds()), false); err != nil {
			return err
		}
	}
	if runErr != nil {
		_, _ = io.WriteString(s.stderr, res.Output)
		return failStage(r.sink, StageCompile, ferrors.CompileError("build failed").
			WithCause(runErr).
			WithContext(logfields.KeyCommand, cmd.String()).
			WithContext(logfields.KeyExitCode, res.ExitCode).
			Build())
	}

	parser := buildlog.NewParser(buildlog.WithPassthrough(s.stderr))
	logResult, err := parser.ParseString(res.Output, r.sink)
	r.result.Log = logResult
	if err != nil {
		return err
	}
	if logResult.Anomalies > 0 || logResult.Skipped > 0 {
		observability.WarnContext(ctx, "Build log had unrecognized lines",
			slog.Int("anomalies", logResult.Anomalies), slog.Int("skipped", logResult.Skipped))
	}
	return recordSuccess(r.sink, StageCompile, true)
}

func (s *Service) measure(_ context.Context, r *run) error {
	if err := artifacts.Measure(r.ws.GetPath(), s.cfg.TreeSpecs(), r.sink); err != nil {
		return err
	}

	exe := r.ws.Join(s.cfg.Executable.Path)
	info, err := os.Stat(exe)
	if err != nil {
		return ferrors.FileSystemError("stat generated executable").
			WithCause(err).
			WithContext(logfields.KeyFile, exe).
			Build()
	}
	return r.sink.Record("build/.total", "executable", metrics.Bytes(info.Size()), false)
}

func (s *Service) execute(ctx context.Context, r *run) error {
	// exec resolves a relative program path against Dir, so pass it absolute.
	exe, err := filepath.Abs(r.ws.Join(s.cfg.Executable.Path))
	if err != nil {
		return ferrors.FileSystemError("resolve generated executable").WithCause(err).Build()
	}
	cmd := process.Command{
		Name: exe,
		Args: s.cfg.Executable.Args,
		Dir:  r.ws.GetPath(),
	}
	observability.InfoContext(ctx, "Running generated executable", logfields.Command(cmd.String()))

	res, runErr := s.runner.Run(ctx, cmd)
	if !errors.Is(runErr, process.ErrCommandNotFound) {
		if err := r.sink.Record(StageRun, "wall time", metrics.Seconds(res.Duration.Seconds()), false); err != nil {
			return err
		}
	}
	if runErr != nil {
		_, _ = io.WriteString(s.stderr, res.Output)
		return failStage(r.sink, StageRun, ferrors.RunError("generated executable failed").
			WithCause(runErr).
			WithContext(logfields.KeyCommand, cmd.String()).
			WithContext(logfields.KeyExitCode, res.ExitCode).
			Build())
	}
	return recordSuccess(r.sink, StageRun, true)
}

func (s *Service) countLines(_ context.Context, r *run) error {
	inv, err := loc.Count(r.req.Target)
	if err != nil {
		return ferrors.FileSystemError("count tracked lines").
			WithCause(err).
			WithContext(logfields.KeyPath, r.req.Target).
			Build()
	}
	return loc.Emit(inv, r.sink)
}
