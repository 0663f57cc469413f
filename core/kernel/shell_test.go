package kernel

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireShell(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath(DefaultShell); err != nil {
		t.Skipf("no %s: %v", DefaultShell, err)
	}
}

func TestKernel_Shell(t *testing.T) {
	requireShell(t)
	k, out := newTestKernel(t)

	require.NoError(t, k.CallString("!  echo hello; echo world"))
	assert.Equal(t, "\n1. Shell command: echo hello; echo world\nhello\nworld\n", out.String())
}

func TestKernel_ShellExitCode(t *testing.T) {
	requireShell(t)
	k, _ := newTestKernel(t)

	assert.EqualError(t, k.CallString("!exit 3"), "Shell command returned error code 3.")
}

func TestKernel_ShellDisabled(t *testing.T) {
	k, out := newTestKernel(t)
	k.disableShell = true

	assert.EqualError(t, k.CallString("!echo hello"), "Shell commands are disabled in this session.")
	assert.NotContains(t, out.String(), "\nhello\n")
}
