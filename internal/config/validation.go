package config

import (
	"fmt"
	"slices"
	"strings"

	"git.home.luguber.info/inful/versobench/internal/foundation"
)

var knownVariants = []string{OptO0, OptOct2025}

// Validate reports every problem in one validation error.
func (c *Config) Validate() error {
	var p foundation.Problems

	p.Require("manual.url", c.Manual.URL)
	p.Require("manual.subdir", c.Manual.Subdir)
	p.Require("manual.pin_file", c.Manual.PinFile)
	p.Require("manual.lakefile", c.Manual.Lakefile)
	if len(c.Commands.Build) == 0 || strings.TrimSpace(c.Commands.Build[0]) == "" {
		p.Add("commands.build", "must name a program")
	}
	if len(c.Commands.Update) > 0 && strings.TrimSpace(c.Commands.Update[0]) == "" {
		p.Add("commands.update", "must name a program when set")
	}
	p.Require("executable.path", c.Executable.Path)

	for name := range c.Optimizations {
		if !slices.Contains(knownVariants, name) {
			p.Add("optimizations."+name, "unknown variant, expected one of %v", knownVariants)
		}
	}

	if len(c.Trees) == 0 {
		p.Add("trees", "at least one output tree is required")
	}
	for i, t := range c.Trees {
		field := fmt.Sprintf("trees[%d]", i)
		p.Require(field+".dir", t.Dir)
		p.Require(field+".kind", t.Kind)
		if len(t.Extensions) == 0 {
			p.Add(field+".extensions", "at least one extension is required")
		}
		for _, ext := range t.Extensions {
			if !strings.HasPrefix(ext, ".") {
				p.Add(field+".extensions", "extension %q must start with a dot", ext)
			}
		}
	}

	if c.Logging.Level != "" {
		if _, err := logLevelNormalizer.Parse(c.Logging.Level); err != nil {
			p.Add("logging.level", "%v", err)
		}
	}
	return p.Err()
}
