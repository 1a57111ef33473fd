package checkout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleLakefile = `import Lake
open Lake DSL

require verso from git "https://github.com/leanprover/verso.git"@"main"

package "verso-manual" where
  moreLeancArgs := #["-O3"]
  leanOptions := #[⟨` + "`" + `weak.linter.verso.manual.headerTags, true⟩]
`

func writeLakefile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lakefile.lean")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestPatchFile_DependencyAndFlags(t *testing.T) {
	path := writeLakefile(t, sampleLakefile)

	require.NoError(t, PatchFile(path, LakefileSubstitutions("/work/verso", []string{"-O0"})))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	got := string(data)
	assert.Contains(t, got, "\nrequire verso from \"/work/verso\"\n")
	assert.Contains(t, got, "\n  moreLeancArgs := #[\"-O0\"]\n")
	assert.NotContains(t, got, "github.com/leanprover/verso")
	assert.Contains(t, got, "leanOptions")

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())
}

func TestPatchFile_NilFlagsLeavesFlagLine(t *testing.T) {
	path := writeLakefile(t, "require verso from git \"x\"@\"main\"\n")

	require.NoError(t, PatchFile(path, LakefileSubstitutions("/v", nil)))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "require verso from \"/v\"\n", string(data))
}

func TestPatchFile_EmptyFlagList(t *testing.T) {
	path := writeLakefile(t, sampleLakefile)
	require.NoError(t, PatchFile(path, LakefileSubstitutions("/v", []string{})))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "  moreLeancArgs := #[]\n")
}

func TestPatchFile_MissingLineLeavesFileUntouched(t *testing.T) {
	original := "require verso from git \"x\"@\"main\"\npackage foo where\n"
	path := writeLakefile(t, original)

	err := PatchFile(path, LakefileSubstitutions("/v", []string{"-O0"}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPatternNotFound))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}

func TestPatchFile_DollarInPathIsLiteral(t *testing.T) {
	path := writeLakefile(t, "require verso from git \"x\"\n")
	require.NoError(t, PatchFile(path, LakefileSubstitutions("/tmp/$1dir", nil)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "require verso from \"/tmp/$1dir\"\n", string(data))
}

func TestPatchFile_MissingFile(t *testing.T) {
	err := PatchFile(filepath.Join(t.TempDir(), "lakefile.lean"), nil)
	require.Error(t, err)
}
