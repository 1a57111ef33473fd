// Package process runs the external tools the benchmark drives (lake and the
// generated executable) and captures their output.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
	"time"

	"git.home.luguber.info/inful/versobench/internal/logfields"
)

var (
	// ErrCommandNotFound indicates the executable was not found.
	ErrCommandNotFound = errors.New("command not found")
	// ErrCommandFailed indicates the command ran and exited non-zero.
	ErrCommandFailed = errors.New("command failed")
)

// Command describes one subprocess invocation.
type Command struct {
	Name string
	Args []string
	Dir  string
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result is what a finished command left behind. It is populated even when Run
// returns an error, as far as the command got.
type Result struct {
	Output   string // combined stdout and stderr
	ExitCode int
	Duration time.Duration
}

// Runner abstracts subprocess execution so the orchestrator can be tested without
// lake installed.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// ExecRunner runs commands with os/exec and blocks until they exit.
type ExecRunner struct{}

func (*ExecRunner) Run(ctx context.Context, c Command) (Result, error) {
	path := c.Name
	if !strings.ContainsRune(path, '/') {
		p, err := exec.LookPath(c.Name)
		if err != nil {
			return Result{ExitCode: -1}, fmt.Errorf("%w: %s: %w", ErrCommandNotFound, c.Name, err)
		}
		path = p
	}

	cmd := exec.CommandContext(ctx, path, c.Args...)
	cmd.Dir = c.Dir
	var buf bytes.Buffer
	cmd.Stdout = &buf
	cmd.Stderr = &buf

	slog.Debug("Running command", logfields.Command(c.String()), logfields.Path(c.Dir))
	start := time.Now()
	err := cmd.Run()
	res := Result{Output: buf.String(), Duration: time.Since(start)}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	slog.Debug("Command finished", logfields.Command(c.String()), logfields.ExitCode(res.ExitCode),
		logfields.DurationMS(float64(res.Duration.Microseconds())/1000))

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return res, fmt.Errorf("%w: %s exited with status %d", ErrCommandFailed, c, res.ExitCode)
		}
		if errors.Is(err, exec.ErrNotFound) {
			return res, fmt.Errorf("%w: %s: %w", ErrCommandNotFound, c.Name, err)
		}
		return res, fmt.Errorf("%w: %s: %w", ErrCommandFailed, c, err)
	}
	return res, nil
}
