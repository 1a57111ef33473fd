// Package checkout prepares the benchmarked project: it reads the revision pinned in
// the target, checks the project out at that revision, patches its lakefile and
// refreshes its dependencies.
package checkout

import (
	"context"
	"log/slog"
	"path/filepath"

	ferrors "git.home.luguber.info/inful/versobench/internal/foundation/errors"
	"git.home.luguber.info/inful/versobench/internal/logfields"
	"git.home.luguber.info/inful/versobench/internal/process"
)

// RevisionCheckout checks out a repository at a revision.
type RevisionCheckout interface {
	CheckoutRevision(ctx context.Context, url, dir, revision string) (string, error)
}

// Request describes one preparation.
type Request struct {
	Target    string   // Verso checkout holding the pin file
	PinFile   string   // relative to Target
	URL       string   // project to check out
	Dir       string   // where the project lives
	Lakefile  string   // relative to Dir
	Flags     []string // nil leaves the compiler flags untouched
	UpdateCmd []string // dependency update command, run in Dir
}

// Preparer runs the checkout steps in order.
type Preparer struct {
	git    RevisionCheckout
	runner process.Runner
}

// NewPreparer wires a preparer.
func NewPreparer(git RevisionCheckout, runner process.Runner) *Preparer {
	return &Preparer{git: git, runner: runner}
}

// Prepare returns the checked-out commit. Every failure is a checkout error.
func (p *Preparer) Prepare(ctx context.Context, req Request) (string, error) {
	pinPath := filepath.Join(req.Target, req.PinFile)
	revision, err := ReadPin(pinPath)
	if err != nil {
		return "", ferrors.CheckoutError("read revision pin").
			WithCause(err).
			WithContext(logfields.KeyPath, pinPath).
			Build()
	}
	slog.Info("Using pinned revision", logfields.Revision(revision), logfields.URL(req.URL))

	commit, err := p.git.CheckoutRevision(ctx, req.URL, req.Dir, revision)
	if err != nil {
		return "", ferrors.CheckoutError("check out pinned revision").
			WithCause(err).
			WithContext(logfields.KeyRevision, revision).
			Build()
	}

	versoDir, err := filepath.Abs(req.Target)
	if err != nil {
		return "", ferrors.CheckoutError("resolve target path").WithCause(err).Build()
	}
	lakefile := filepath.Join(req.Dir, req.Lakefile)
	if err := PatchFile(lakefile, LakefileSubstitutions(versoDir, req.Flags)); err != nil {
		return "", ferrors.CheckoutError("patch lakefile").
			WithCause(err).
			WithContext(logfields.KeyFile, lakefile).
			Build()
	}
	slog.Info("Patched lakefile", logfields.File(lakefile), slog.Any("flags", req.Flags))

	if len(req.UpdateCmd) > 0 {
		cmd := process.Command{Name: req.UpdateCmd[0], Args: req.UpdateCmd[1:], Dir: req.Dir}
		if res, err := p.runner.Run(ctx, cmd); err != nil {
			return "", ferrors.CheckoutError("update dependencies").
				WithCause(err).
				WithContext(logfields.KeyCommand, cmd.String()).
				WithContext("output", res.Output).
				Build()
		}
	}
	return commit, nil
}
