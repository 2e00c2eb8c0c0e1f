//go:build !windows

package player

import (
	"os/exec"
	"syscall"
)

// detach puts the player in its own session so it keeps running after
// the CLI exits and never receives the terminal's signals. Stdio stays
// unset, which connects the player to the null device.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
}
