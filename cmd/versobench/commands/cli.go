package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/versobench/internal/bench"
	"git.home.luguber.info/inful/versobench/internal/config"
	"git.home.luguber.info/inful/versobench/internal/logfields"
)

// Global is bound into kong and shared by the hooks and the command.
type Global struct {
	Stdout io.Writer
	Stderr io.Writer
	RunID  string
	Logger *slog.Logger

	// NewService builds the benchmark service; tests swap in fakes.
	NewService func(cfg *config.Config) *bench.Service

	level slog.LevelVar
}

// NewGlobal writes diagnostics to stdout and logs to stderr.
func NewGlobal(stdout, stderr io.Writer) *Global {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return &Global{
		Stdout:     stdout,
		Stderr:     stderr,
		RunID:      uuid.NewString(),
		NewService: bench.NewService,
	}
}

// SetLevel changes the level of the installed logger.
func (g *Global) SetLevel(level slog.Level) { g.level.Set(level) }

// CLI is the command line. The two positional arguments are the contract with the
// benchmarking infrastructure.
type CLI struct {
	Target string `arg:"" type:"existingdir" help:"Verso checkout to benchmark."`
	Output string `arg:"" type:"path" help:"File the JSON-lines metrics are appended to."`

	Opt          string           `enum:"O0,oct2025,none" default:"none" help:"Compiler flag variant (${enum})."`
	SkipCheckout bool             `help:"Reuse the existing reference manual checkout as is."`
	LOC          bool             `name:"loc" help:"Also emit line counts of the target's tracked files."`
	Config       string           `short:"c" type:"path" help:"Optional YAML configuration file."`
	PromTextfile string           `name:"prom-textfile" type:"path" help:"Also write the metrics in Prometheus textfile format."`
	Verbose      bool             `short:"v" help:"Enable verbose logging"`
	Version      kong.VersionFlag `name:"version" help:"Show version and exit"`
}

// AfterApply runs after flag parsing; install the run logger once.
func (c *CLI) AfterApply(g *Global) error {
	g.SetLevel(config.ResolveLogLevel("", c.Verbose))
	handler := slog.NewTextHandler(g.Stderr, &slog.HandlerOptions{Level: &g.level})
	g.Logger = slog.New(handler).With(logfields.RunID(g.RunID))
	slog.SetDefault(g.Logger)
	return nil
}
