//go:build windows

package player

import (
	"os/exec"
	"syscall"

	"golang.org/x/sys/windows"
)

// detach starts the player outside the console's process group so it
// keeps running after the CLI exits and ignores console control events.
func detach(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: windows.DETACHED_PROCESS | windows.CREATE_NEW_PROCESS_GROUP,
	}
}
