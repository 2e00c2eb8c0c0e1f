//go:build windows

package probe

import (
	"golang.org/x/sys/windows"
)

type systemProbe struct{}

// Alive opens the process with the narrowest query right and checks its
// exit code. A pid that cannot be opened either never existed or is
// already gone.
func (systemProbe) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}

	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}
	defer windows.CloseHandle(handle)

	var code uint32
	if err := windows.GetExitCodeProcess(handle, &code); err != nil {
		return false
	}
	return code == windows.STILL_ACTIVE
}
