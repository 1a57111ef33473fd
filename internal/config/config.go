// Package config loads the benchmark configuration: where the manual comes from, which
// commands build and run it, the compiler-flag variants and the measured output trees.
// Every field has a default, so the configuration file is optional.
package config

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/versobench/internal/artifacts"
	ferrors "git.home.luguber.info/inful/versobench/internal/foundation/errors"
	"git.home.luguber.info/inful/versobench/internal/logfields"
)

// Config is the complete benchmark configuration.
type Config struct {
	// RootLabel replaces the "verso" prefix of every metric name.
	RootLabel     string              `yaml:"root_label,omitempty"`
	Manual        ManualConfig        `yaml:"manual"`
	Commands      CommandsConfig      `yaml:"commands"`
	Executable    ExecutableConfig    `yaml:"executable"`
	Optimizations map[string][]string `yaml:"optimizations"`
	Trees         []TreeConfig        `yaml:"trees"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// ManualConfig locates the benchmarked project and the files touched before building.
type ManualConfig struct {
	URL      string `yaml:"url"`
	BaseDir  string `yaml:"base_dir"`
	Subdir   string `yaml:"subdir"`
	PinFile  string `yaml:"pin_file"` // relative to the target
	Lakefile string `yaml:"lakefile"` // relative to the checkout
}

// CommandsConfig holds argv lists run inside the checkout.
type CommandsConfig struct {
	Update []string `yaml:"update"`
	Build  []string `yaml:"build"`
}

// ExecutableConfig is the program produced by the build and timed afterwards.
type ExecutableConfig struct {
	Path string   `yaml:"path"` // relative to the checkout
	Args []string `yaml:"args"`
}

// TreeConfig is one output tree measured after a successful build.
type TreeConfig struct {
	Dir        string   `yaml:"dir"`
	Extensions []string `yaml:"extensions"`
	Kind       string   `yaml:"kind"`
}

// LoggingConfig selects the default log level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads .env files, then the YAML file at path on top of Default. An empty path
// skips the file. The result is validated.
func Load(path string) (*Config, error) {
	if loaded, err := loadEnvFiles(); err != nil {
		return nil, ferrors.ConfigError("load environment file").WithCause(err).Build()
	} else if len(loaded) > 0 {
		slog.Debug("Loaded environment files", slog.Any("files", loaded))
	}

	cfg := Default()
	if path != "" {
		if err := cfg.readFile(path); err != nil {
			return nil, err
		}
		slog.Debug("Loaded configuration", logfields.File(path))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ferrors.ConfigError("configuration file not found").
				WithCause(err).
				WithContext(logfields.KeyFile, path).
				Build()
		}
		return ferrors.ConfigError("read configuration file").
			WithCause(err).
			WithContext(logfields.KeyFile, path).
			Build()
	}

	dec := yaml.NewDecoder(strings.NewReader(os.ExpandEnv(string(data))))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return ferrors.ConfigError("parse configuration file").
			WithCause(err).
			WithContext(logfields.KeyFile, path).
			Build()
	}
	return nil
}

// Root is the metric root label for an optimization variant.
func (c *Config) Root(opt string) string {
	root := c.RootLabel
	if root == "" {
		root = DefaultRootLabel
	}
	if opt == "" || opt == OptNone {
		return root
	}
	return root + "-" + opt
}

// ResolveFlags returns the compiler flags of an optimization variant. OptNone yields
// nil, which leaves the lakefile flags untouched.
func (c *Config) ResolveFlags(opt string) ([]string, error) {
	if opt == "" || opt == OptNone {
		return nil, nil
	}
	flags, ok := c.Optimizations[opt]
	if !ok {
		return nil, ferrors.ValidationError("unknown optimization variant").
			WithContext("opt", opt).
			WithContext("known", c.Variants()).
			Build()
	}
	if flags == nil {
		return []string{}, nil
	}
	return slices.Clone(flags), nil
}

// Variants lists the configured optimization variants in sorted order.
func (c *Config) Variants() []string {
	out := make([]string, 0, len(c.Optimizations))
	for k := range c.Optimizations {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// TreeSpecs converts the configured trees for the artifact walker.
func (c *Config) TreeSpecs() []artifacts.TreeSpec {
	out := make([]artifacts.TreeSpec, 0, len(c.Trees))
	for _, t := range c.Trees {
		out = append(out, artifacts.TreeSpec{
			Dir:        t.Dir,
			Extensions: slices.Clone(t.Extensions),
			Kind:       t.Kind,
		})
	}
	return out
}
