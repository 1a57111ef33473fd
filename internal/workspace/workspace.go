package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"git.home.luguber.info/inful/versobench/internal/logfields"
)

// DefaultSubdir is the checkout directory name used when none is configured.
const DefaultSubdir = "reference-manual"

// Manager handles the fixed checkout directory baseDir/subdirName.
type Manager struct {
	baseDir string
	dir     string
}

// NewManager creates a workspace manager. An empty baseDir means the current
// directory and an empty subdirName means DefaultSubdir.
func NewManager(baseDir, subdirName string) *Manager {
	if baseDir == "" {
		baseDir = "."
	}
	if subdirName == "" {
		subdirName = DefaultSubdir
	}
	return &Manager{
		baseDir: baseDir,
		dir:     filepath.Join(baseDir, subdirName),
	}
}

// Create ensures the base directory exists. The checkout directory itself is left
// for the clone to create.
func (m *Manager) Create() error {
	if err := os.MkdirAll(m.baseDir, 0o750); err != nil {
		return fmt.Errorf("failed to create workspace directory: %w", err)
	}
	slog.Debug("Using workspace", logfields.Path(m.dir))
	return nil
}

// GetPath returns the checkout directory.
func (m *Manager) GetPath() string {
	return m.dir
}

// HasCheckout reports whether the checkout directory holds a git repository.
func (m *Manager) HasCheckout() bool {
	info, err := os.Stat(filepath.Join(m.dir, ".git"))
	return err == nil && info.IsDir()
}

// Join returns a path inside the checkout directory.
func (m *Manager) Join(elem ...string) string {
	return filepath.Join(append([]string{m.dir}, elem...)...)
}
