package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/versobench/internal/logfields"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// Client checks out repositories with go-git.
type Client struct {
	progress io.Writer
}

// NewClient creates a client. Clone progress goes to progress when non-nil.
func NewClient(progress io.Writer) *Client { return &Client{progress: progress} }

// CheckoutRevision makes dir a worktree of url at revision and returns the resolved
// commit hash. An existing clone in dir is fetched and reused; local modifications
// (such as an earlier patch) are discarded.
func (c *Client) CheckoutRevision(ctx context.Context, url, dir, revision string) (string, error) {
	repo, err := c.openOrClone(ctx, url, dir)
	if err != nil {
		return "", err
	}

	hash, err := repo.ResolveRevision(plumbing.Revision(revision))
	if err != nil {
		return "", ClassifyGitError(fmt.Errorf("resolve %s: %w", revision, err), "checkout", url)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return "", ClassifyGitError(fmt.Errorf("worktree: %w", err), "checkout", url)
	}
	if err := wt.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return "", ClassifyGitError(fmt.Errorf("checkout %s: %w", hash, err), "checkout", url)
	}

	slog.Info("Checked out revision", logfields.URL(url), logfields.Path(dir), logfields.Revision(hash.String()[:12]))
	return hash.String(), nil
}

func (c *Client) openOrClone(ctx context.Context, url, dir string) (*git.Repository, error) {
	if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
		repo, err := git.PlainOpen(dir)
		if err != nil {
			return nil, ClassifyGitError(fmt.Errorf("open %s: %w", dir, err), "open", url)
		}
		slog.Debug("Fetching existing clone", logfields.Path(dir))
		err = repo.FetchContext(ctx, &git.FetchOptions{RemoteName: "origin", Tags: git.AllTags, Progress: c.progress})
		if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
			return nil, ClassifyGitError(fmt.Errorf("fetch: %w", err), "fetch", url)
		}
		return repo, nil
	}

	if err := os.RemoveAll(dir); err != nil {
		return nil, ClassifyGitError(fmt.Errorf("remove stale directory: %w", err), "clone", url)
	}
	slog.Info("Cloning repository", logfields.URL(url), logfields.Path(dir))
	repo, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:        url,
		NoCheckout: true,
		Progress:   c.progress,
	})
	if err != nil {
		return nil, ClassifyGitError(err, "clone", url)
	}
	return repo, nil
}

// HeadCommit returns the commit HEAD points at in the repository at dir.
func HeadCommit(dir string) (string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("open repository: %w", err)
	}
	ref, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}

// TrackedFiles lists the paths recorded in the index of the repository at dir,
// slash-separated and relative to the worktree root.
func TrackedFiles(dir string) ([]string, error) {
	repo, err := git.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	files := make([]string, 0, len(idx.Entries))
	for _, e := range idx.Entries {
		files = append(files, e.Name)
	}
	return files, nil
}
