package buildlog

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"git.home.luguber.info/inful/versobench/internal/logfields"
	"git.home.luguber.info/inful/versobench/internal/metrics"
)

// Result summarises one parsing pass.
type Result struct {
	Totals    Totals
	Lines     int
	Modules   int // lines that produced a metric
	Anomalies int // built markers that matched no strict rule
	Skipped   int // strict matches with an unparseable duration
}

// Parser classifies build output and records per-module timings.
type Parser struct {
	rules       []Rule
	passthrough io.Writer
	logger      *slog.Logger
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithRules replaces the default rule list.
func WithRules(rules []Rule) ParserOption { return func(p *Parser) { p.rules = rules } }

// WithPassthrough sets where unclassified lines are copied.
func WithPassthrough(w io.Writer) ParserOption { return func(p *Parser) { p.passthrough = w } }

// WithLogger sets the logger used for anomalies.
func WithLogger(l *slog.Logger) ParserOption { return func(p *Parser) { p.logger = l } }

// NewParser returns a parser using DefaultRules.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{rules: DefaultRules(), passthrough: os.Stderr}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Classify returns the classification of a single line.
func (p *Parser) Classify(line string) (Classification, error) {
	return classify(p.rules, line)
}

// ParseString parses a captured log.
func (p *Parser) ParseString(text string, sink metrics.Sink) (Result, error) {
	return p.Parse(strings.NewReader(text), sink)
}

// Parse reads r line by line, records a metric for every built module and, at the
// end, one build/.total metric per accumulated label. Sink errors abort the pass.
func (p *Parser) Parse(r io.Reader, sink metrics.Sink) (Result, error) {
	logger := p.logger
	if logger == nil {
		logger = slog.Default()
	}
	res := Result{Totals: Totals{}}

	br := bufio.NewReader(r)
	for {
		raw, readErr := br.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return res, fmt.Errorf("read build log: %w", readErr)
		}
		if raw == "" && readErr == io.EOF {
			break
		}
		line := strings.TrimRight(raw, "\r\n")
		res.Lines++

		if err := p.handle(line, sink, logger, &res); err != nil {
			return res, err
		}
		if readErr == io.EOF {
			break
		}
	}

	for _, label := range res.Totals.Labels() {
		if err := sink.Record("build/.total", label+" time", metrics.Seconds(res.Totals[label]), false); err != nil {
			return res, err
		}
	}
	logger.Debug("Parsed build log",
		slog.Int("lines", res.Lines),
		slog.Int("modules", res.Modules),
		slog.Int("anomalies", res.Anomalies),
		slog.Int("skipped", res.Skipped))
	return res, nil
}

// handle classifies one line and records its metric. Only sink errors are returned.
func (p *Parser) handle(line string, sink metrics.Sink, logger *slog.Logger, res *Result) error {
	c, err := p.Classify(line)
	if err != nil {
		attrs := []any{logfields.Module(c.Module), logfields.Line(line), logfields.Error(err)}
		if c.Phase != "" {
			attrs = append(attrs, logfields.Phase(c.Phase))
		}
		logger.Warn("Skipping build line with unparseable duration", attrs...)
		res.Skipped++
		return nil
	}

	switch c.Kind {
	case KindLeanModule:
		if err := sink.Record("build/"+c.Module, "eval time", metrics.Seconds(c.Duration), false); err != nil {
			return err
		}
		res.Totals.Add(LeanLabel, c.Duration)
		res.Modules++
	case KindNativeArtifact:
		if err := sink.Record("build/"+c.Module, c.Phase+" time", metrics.Seconds(c.Duration), false); err != nil {
			return err
		}
		res.Totals.Add(c.Phase, c.Duration)
		res.Modules++
	case KindAnomaly:
		logger.Warn("Unrecognized build line", logfields.Line(line))
		res.Anomalies++
	default:
		_, _ = fmt.Fprintln(p.passthrough, line)
	}
	return nil
}
