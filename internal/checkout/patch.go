package checkout

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// ErrPatternNotFound indicates a line the patcher must rewrite is missing.
var ErrPatternNotFound = errors.New("expected line not found")

var (
	dependencyLine = regexp.MustCompile(`(?m)^([ \t]*)require\s+verso\s+from\s+git\b.*$`)
	leancArgsLine  = regexp.MustCompile(`(?m)^([ \t]*)moreLeancArgs\s*:=.*$`)
)

// Substitution rewrites every line matching Pattern. Group 1 of the pattern must
// capture the indentation, which is kept.
type Substitution struct {
	Name    string
	Pattern *regexp.Regexp
	Line    string // replacement without indentation
}

func (s Substitution) apply(content string) (string, error) {
	if !s.Pattern.MatchString(content) {
		return "", fmt.Errorf("%w: %s", ErrPatternNotFound, s.Name)
	}
	return s.Pattern.ReplaceAllString(content, "${1}"+strings.ReplaceAll(s.Line, "$", "$$")), nil
}

// LakefileSubstitutions returns the rewrites that point the manual at a local Verso
// tree and, when flags is non-nil, replace its extra compiler flags.
func LakefileSubstitutions(versoDir string, flags []string) []Substitution {
	subs := []Substitution{{
		Name:    "verso dependency",
		Pattern: dependencyLine,
		Line:    "require verso from " + strconv.Quote(versoDir),
	}}
	if flags != nil {
		quoted := make([]string, len(flags))
		for i, f := range flags {
			quoted[i] = strconv.Quote(f)
		}
		subs = append(subs, Substitution{
			Name:    "compiler flags",
			Pattern: leancArgsLine,
			Line:    "moreLeancArgs := #[" + strings.Join(quoted, ", ") + "]",
		})
	}
	return subs
}

// PatchFile applies subs to the file at path in place. Nothing is written unless
// every substitution found its line.
func PatchFile(path string, subs []Substitution) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	content := string(data)
	for _, s := range subs {
		if content, err = s.apply(content); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, []byte(content), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
