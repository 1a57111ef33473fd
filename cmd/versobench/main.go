package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/versobench/cmd/versobench/commands"
	ferrors "git.home.luguber.info/inful/versobench/internal/foundation/errors"
	"git.home.luguber.info/inful/versobench/internal/version"
)

func main() {
	os.Exit(run(os.Args[1:], commands.NewGlobal(os.Stdout, os.Stderr)))
}

// run parses args, runs the benchmark and returns the process exit code.
func run(args []string, g *commands.Global) int {
	var cli commands.CLI
	parser, err := kong.New(&cli,
		kong.Name("versobench"),
		kong.Description("Build the Lean reference manual against a Verso checkout and record build metrics."),
		kong.Vars{"version": version.String()},
		kong.Writers(g.Stdout, g.Stderr),
		kong.Bind(g),
	)
	if err != nil {
		return ferrors.NewCLIErrorAdapter(false, nil).WithWriter(g.Stderr).
			HandleError(ferrors.InternalError("build command line parser").WithCause(err).Build())
	}
	if _, err := parser.Parse(args); err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = cli.Run(ctx, g)
	return ferrors.NewCLIErrorAdapter(cli.Verbose, g.Logger).WithWriter(g.Stderr).HandleError(err)
}
