package config

import (
	"path/filepath"

	"git.home.luguber.info/inful/versobench/internal/artifacts"
	"git.home.luguber.info/inful/versobench/internal/workspace"
)

const (
	DefaultRootLabel = "verso"
	DefaultManualURL = "https://github.com/leanprover/reference-manual.git"
	DefaultPinFile   = "reference-manual-rev"
	DefaultLakefile  = "lakefile.lean"
)

// Optimization variants selectable on the command line.
const (
	OptO0      = "O0"
	OptOct2025 = "oct2025"
	OptNone    = "none"
)

// Default returns the built-in configuration.
func Default() *Config {
	trees := make([]TreeConfig, 0, 2)
	for _, t := range artifacts.DefaultTrees() {
		trees = append(trees, TreeConfig{Dir: t.Dir, Extensions: t.Extensions, Kind: t.Kind})
	}
	return &Config{
		Manual: ManualConfig{
			URL:      DefaultManualURL,
			BaseDir:  ".",
			Subdir:   workspace.DefaultSubdir,
			PinFile:  DefaultPinFile,
			Lakefile: DefaultLakefile,
		},
		Commands: CommandsConfig{
			Update: []string{"lake", "update", "verso"},
			Build:  []string{"lake", "build"},
		},
		Executable: ExecutableConfig{
			Path: filepath.Join(".lake", "build", "bin", "generate-manual"),
			Args: []string{"--depth", "2"},
		},
		Optimizations: map[string][]string{
			OptO0:      {"-O0"},
			OptOct2025: {"-O3", "-DNDEBUG"},
		},
		Trees:   trees,
		Logging: LoggingConfig{Level: string(LogLevelInfo)},
	}
}
