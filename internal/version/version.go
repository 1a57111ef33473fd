// Package version carries build metadata injected with -ldflags, e.g.
// go build -ldflags "-X git.home.luguber.info/inful/versobench/internal/version.Version=v0.3.0".
package version

import "fmt"

var Version = "unknown"

var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String is the text printed by --version.
func String() string {
	return fmt.Sprintf("versobench %s (commit %s, built %s)", Version, GitCommit, BuildTime)
}
