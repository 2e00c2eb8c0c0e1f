//go:build !windows

package probe

import (
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlive_ExitedProcess(t *testing.T) {
	cmd := exec.Command("true")
	require.NoError(t, cmd.Start())

	pid := cmd.Process.Pid
	require.NoError(t, cmd.Wait())

	// The child has been reaped; its pid must not probe as alive.
	assert.False(t, System().Alive(pid))
}
