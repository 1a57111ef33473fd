package process

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}
}

func TestExecRunner_CapturesCombinedOutput(t *testing.T) {
	requireShell(t)
	res, err := (&ExecRunner{}).Run(context.Background(), Command{
		Name: "sh",
		Args: []string{"-c", "echo out; echo err 1>&2"},
		Dir:  t.TempDir(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Output, "out\n")
	assert.Contains(t, res.Output, "err\n")
	assert.Positive(t, int64(res.Duration))
}

func TestExecRunner_NonZeroExit(t *testing.T) {
	requireShell(t)
	res, err := (&ExecRunner{}).Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo partial; exit 3"}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCommandFailed))
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "partial\n", res.Output)
}

func TestExecRunner_NotFound(t *testing.T) {
	_, err := (&ExecRunner{}).Run(context.Background(), Command{Name: "versobench-definitely-missing"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrCommandNotFound))
}

func TestExecRunner_Canceled(t *testing.T) {
	requireShell(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := (&ExecRunner{}).Run(ctx, Command{Name: "sh", Args: []string{"-c", "sleep 5"}})
	require.Error(t, err)
}

func TestCommandString(t *testing.T) {
	c := Command{Name: "lake", Args: []string{"build"}}
	assert.Equal(t, "lake build", c.String())
	assert.True(t, strings.HasPrefix(Command{Name: "lake"}.String(), "lake"))
}
