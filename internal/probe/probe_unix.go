//go:build !windows

package probe

import (
	"errors"
	"syscall"
)

type systemProbe struct{}

// Alive sends signal 0, which runs the kernel's existence and permission
// checks without delivering anything. EPERM means the process exists but
// belongs to another user, so it counts as alive.
func (systemProbe) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}

	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}
