package commands

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/versobench/internal/bench"
	"git.home.luguber.info/inful/versobench/internal/config"
	ferrors "git.home.luguber.info/inful/versobench/internal/foundation/errors"
	"git.home.luguber.info/inful/versobench/internal/logfields"
	"git.home.luguber.info/inful/versobench/internal/metrics"
)

// Run loads the configuration and runs one benchmark.
func (c *CLI) Run(ctx context.Context, g *Global) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	g.SetLevel(config.ResolveLogLevel(cfg.Logging.Level, c.Verbose))

	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if c.PromTextfile != "" {
		prom = metrics.NewPrometheusRecorder(prometheus.NewRegistry())
		recorder = prom
	}

	svc := g.NewService(cfg).
		WithRecorder(recorder).
		WithOutput(g.Stdout, g.Stderr)
	res, runErr := svc.Run(ctx, bench.Request{
		Target:       c.Target,
		Output:       c.Output,
		Opt:          c.Opt,
		SkipCheckout: c.SkipCheckout,
		LOC:          c.LOC,
	})

	if prom != nil {
		if err := prom.WriteTextfile(c.PromTextfile); err != nil {
			werr := ferrors.FileSystemError("write prometheus textfile").
				WithCause(err).
				WithContext(logfields.KeyFile, c.PromTextfile).
				Build()
			if runErr == nil {
				return werr
			}
			slog.Warn("Prometheus textfile not written", logfields.File(c.PromTextfile), logfields.Error(err))
		}
	}

	if runErr != nil {
		return runErr
	}
	slog.Info("Metrics written",
		logfields.File(c.Output),
		slog.String("root", res.Root),
		slog.String("status", string(res.Status)),
		slog.Duration("duration", res.Duration))
	return nil
}
